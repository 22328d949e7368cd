// Package metrics computes scalar and spectral statistics of rendered audio.
//
// The scalar pass is a single linear accumulation over the interleaved
// buffer using float64 accumulators: RMS, peak, DC offset, exact counts of
// non-finite samples, clipped-sample count, total energy, and
// zero-crossings per second on channel 0. The spectral pass applies a Hann
// window to channel 0 over the largest power-of-two length not exceeding
// min(65536, frameCount) and reports the strongest non-DC bin.
//
// Nothing is clamped or sanitized before reporting: a buffer full of NaN
// samples yields NaN statistics and an exact NaN count, never a cleaned-up
// result. Degenerate inputs (empty, all-zero, all non-finite) still produce
// a fully populated Result.
package metrics
