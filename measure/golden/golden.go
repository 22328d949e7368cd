package golden

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-verify/dsp/core"
)

const (
	defaultMaxLag     = 2048
	defaultMinOverlap = 256

	// snrCeilingDB caps the reported SNR when the residual is negligible.
	snrCeilingDB = 300.0
)

// Tolerances defines the pass criteria for one comparison.
type Tolerances struct {
	MaxAbsDiff float64
	RMSDiff    float64
	MinSNRdB   float64
}

// DefaultTolerances returns criteria suitable for near-bit-exact paths.
func DefaultTolerances() Tolerances {
	return Tolerances{
		MaxAbsDiff: 1e-6,
		RMSDiff:    1e-7,
		MinSNRdB:   90,
	}
}

// Config holds alignment parameters.
type Config struct {
	MaxLagSamples int // symmetric search window, [-MaxLagSamples, +MaxLagSamples]
	MinOverlap    int // minimum aligned frames required for a meaningful verdict
}

// Reference is a stored golden render: raw interleaved samples plus the
// tolerances they were accepted under.
type Reference struct {
	Samples    []float64
	Channels   int
	SampleRate float64
	Tol        Tolerances
}

// Frames returns the reference frame count.
func (r Reference) Frames() int {
	if r.Channels <= 0 {
		return 0
	}
	return len(r.Samples) / r.Channels
}

// Result is the structured outcome of one comparison.
type Result struct {
	Pass       bool
	MaxAbsDiff float64
	RMSDiff    float64
	SNRdB      float64
	Lag        int // samples; positive means the candidate arrives late
	Detail     string
}

// Compare judges an interleaved candidate buffer against a reference.
// Channel count and frame count must match the reference; mismatches are
// configuration errors reported through the result, never panics.
func Compare(candidate []float64, channels int, ref Reference, cfg Config) Result {
	cfg = normalizeConfig(cfg)

	if channels <= 0 || ref.Channels <= 0 {
		return failResult(0, "invalid channel count: candidate %d, reference %d", channels, ref.Channels)
	}
	if channels != ref.Channels {
		return failResult(0, "channel count mismatch: candidate %d, reference %d", channels, ref.Channels)
	}

	frames := len(candidate) / channels
	if frames != ref.Frames() {
		return failResult(0, "frame count mismatch: candidate %d, reference %d", frames, ref.Frames())
	}
	if frames == 0 {
		return failResult(0, "empty buffers")
	}

	lag := bestLag(candidate, ref.Samples, channels, frames, cfg.MaxLagSamples)

	overlap := frames - abs(lag)
	if overlap < cfg.MinOverlap {
		return failResult(lag, "insufficient aligned data: %d frames overlap at lag %d, need %d",
			overlap, lag, cfg.MinOverlap)
	}

	// Signed differences across all channels over the aligned overlap.
	candStart, refStart := 0, 0
	if lag >= 0 {
		candStart = lag
	} else {
		refStart = -lag
	}

	var (
		maxAbs   float64
		sumSq    float64
		refPower float64
	)
	for i := 0; i < overlap; i++ {
		cOff := (candStart + i) * channels
		rOff := (refStart + i) * channels
		for c := 0; c < channels; c++ {
			r := ref.Samples[rOff+c]
			d := candidate[cOff+c] - r
			if a := math.Abs(d); a > maxAbs {
				maxAbs = a
			}
			sumSq += d * d
			refPower += r * r
		}
	}

	rmsDiff := math.Sqrt(sumSq / float64(overlap*channels))

	var snr float64
	switch {
	case sumSq == 0:
		snr = snrCeilingDB
	case refPower == 0:
		snr = math.Inf(-1)
	default:
		snr = core.LinearPowerToDB(refPower / sumSq)
		if snr > snrCeilingDB {
			snr = snrCeilingDB
		}
	}

	tol := ref.Tol
	pass := maxAbs <= tol.MaxAbsDiff && rmsDiff <= tol.RMSDiff && snr >= tol.MinSNRdB

	detail := fmt.Sprintf(
		"lag=%d samples, overlap=%d frames: maxAbsDiff=%.6g (tol %.6g), rmsDiff=%.6g (tol %.6g), snr=%.2f dB (min %.2f)",
		lag, overlap, maxAbs, tol.MaxAbsDiff, rmsDiff, tol.RMSDiff, snr, tol.MinSNRdB)
	switch {
	case pass && lag != 0:
		detail += "; content matches, timing shifted"
	case !pass && lag != 0:
		detail += "; timing drift plus content mismatch"
	case !pass:
		detail += "; aligned content mismatch"
	}

	return Result{
		Pass:       pass,
		MaxAbsDiff: maxAbs,
		RMSDiff:    rmsDiff,
		SNRdB:      snr,
		Lag:        lag,
		Detail:     detail,
	}
}

// bestLag searches [-maxLag, +maxLag] for the normalized cross-correlation
// maximum between candidate and reference channel 0. Direct summation: the
// window is bounded, and determinism matters more than speed here.
func bestLag(candidate, reference []float64, channels, frames, maxLag int) int {
	if maxLag > frames-1 {
		maxLag = frames - 1
	}
	if maxLag < 0 {
		maxLag = 0
	}

	cand := channelView(candidate, channels, frames)
	ref := channelView(reference, channels, frames)

	bestLag := 0
	bestCorr := math.Inf(-1)
	for lag := -maxLag; lag <= maxLag; lag++ {
		var candSeg, refSeg []float64
		if lag >= 0 {
			candSeg = cand[lag:]
			refSeg = ref[:frames-lag]
		} else {
			candSeg = cand[:frames+lag]
			refSeg = ref[-lag:]
		}

		num := dot(candSeg, refSeg)
		denom := math.Sqrt(dot(candSeg, candSeg) * dot(refSeg, refSeg))
		if denom == 0 {
			continue
		}
		corr := num / denom
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}

	if math.IsInf(bestCorr, -1) || bestCorr <= 0 {
		// No meaningful correlation anywhere (e.g. silence): assume aligned.
		return 0
	}
	return bestLag
}

// channelView extracts channel 0 as a contiguous slice. For mono input the
// original slice is returned without copying.
func channelView(buf []float64, channels, frames int) []float64 {
	if channels == 1 {
		return buf[:frames]
	}
	out := make([]float64, frames)
	for i := range out {
		out[i] = buf[i*channels]
	}
	return out
}

func failResult(lag int, format string, args ...any) Result {
	return Result{Lag: lag, SNRdB: math.Inf(-1), Detail: fmt.Sprintf(format, args...)}
}

func normalizeConfig(cfg Config) Config {
	if cfg.MaxLagSamples <= 0 {
		cfg.MaxLagSamples = defaultMaxLag
	}
	if cfg.MinOverlap <= 0 {
		cfg.MinOverlap = defaultMinOverlap
	}
	return cfg
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
