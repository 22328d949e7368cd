// Package golden judges a rendered buffer against a stored reference while
// tolerating benign timing shifts.
//
// The comparator first aligns candidate and reference by searching a
// bounded symmetric lag window for the cross-correlation maximum on
// channel 0, then compares sample-for-sample across all channels over the
// aligned overlap. The result is always a quantitative breakdown (max
// absolute difference, RMS difference, SNR, detected lag), never a bare
// boolean, so a failure can be diagnosed as timing drift versus an
// algorithmic regression.
//
// References are persisted as raw interleaved float64 samples together
// with the tolerances used to judge them; see [Reference.WriteFile] and
// [LoadFile].
package golden
