package metrics

import (
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-verify/dsp/core"
	"github.com/cwbudde/algo-verify/dsp/window"
)

const (
	defaultMaxFFTSize    = 65536
	defaultClipThreshold = 0.999999
)

// Config holds analysis parameters.
type Config struct {
	SampleRate    float64
	MaxFFTSize    int
	ClipThreshold float64
	// WindowType selects the spectral analysis window. The zero value maps
	// to Hann; window.TypeRectangular shares the zero value, so a
	// rectangular analysis window cannot be requested here.
	WindowType window.Type
}

// Result holds the full metric set for one rendered buffer. Every field is
// populated for any input, including pathological ones.
type Result struct {
	RMS                 float64
	Peak                float64
	DCOffset            float64
	NaNCount            int
	InfCount            int
	ClippedSamples      int
	ZeroCrossingsPerSec float64
	BlockEdgeMaxJump    float64 // filled in by the renderer, not the analyzer
	SpectralPeakHz      float64
	SpectralPeakDB      float64
	Energy              float64
}

// Calculator performs metric analysis with a fixed configuration. The
// spectral scratch buffer is reused across calls, so a Calculator must not
// be shared between goroutines.
type Calculator struct {
	cfg     Config
	scratch []float64
}

// NewCalculator creates a metrics calculator.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: normalizeConfig(cfg)}
}

// Analyze is a one-shot analysis of an interleaved buffer.
func Analyze(buffer []float64, channels int, cfg Config) Result {
	return NewCalculator(cfg).Analyze(buffer, channels)
}

// Analyze computes all metrics for an interleaved buffer.
func (c *Calculator) Analyze(buffer []float64, channels int) Result {
	res := Result{SpectralPeakDB: math.Inf(-1)}
	if channels <= 0 || len(buffer) == 0 {
		return res
	}

	frames := len(buffer) / channels

	// Scalar pass: one linear walk, float64 accumulators so long renders do
	// not accumulate bias from block-wise summation.
	var (
		sum   float64
		sumSq float64
		peak  float64
	)
	for _, x := range buffer {
		switch {
		case math.IsNaN(x):
			res.NaNCount++
		case math.IsInf(x, 0):
			res.InfCount++
		}

		sum += x
		sumSq += x * x

		if a := math.Abs(x); a > peak {
			peak = a
		}
		if math.Abs(x) >= c.cfg.ClipThreshold {
			res.ClippedSamples++
		}
	}

	n := float64(len(buffer))
	res.RMS = math.Sqrt(sumSq / n)
	res.Peak = peak
	res.DCOffset = sum / n
	res.Energy = sumSq

	// Zero crossings on channel 0 only.
	if frames > 1 && c.cfg.SampleRate > 0 {
		crossings := 0
		prev := buffer[0]
		for i := 1; i < frames; i++ {
			x := buffer[i*channels]
			if prev*x < 0 {
				crossings++
			}
			prev = x
		}
		res.ZeroCrossingsPerSec = float64(crossings) * c.cfg.SampleRate / float64(frames)
	}

	c.spectralPeak(buffer, channels, frames, &res)
	return res
}

// spectralPeak windows channel 0, transforms it, and records the strongest
// non-DC bin in Hz and in dB relative to the transform length.
func (c *Calculator) spectralPeak(buffer []float64, channels, frames int, res *Result) {
	if c.cfg.SampleRate <= 0 {
		return
	}

	fftSize := core.PrevPowerOf2(min(c.cfg.MaxFFTSize, frames))
	if fftSize < 2 {
		return
	}

	c.scratch = core.EnsureLen(c.scratch, fftSize)
	for i := 0; i < fftSize; i++ {
		c.scratch[i] = buffer[i*channels]
	}
	window.ApplyCoefficients(c.scratch, window.Generate(c.cfg.WindowType, fftSize))

	in := make([]complex128, fftSize)
	for i, s := range c.scratch {
		in[i] = complex(s, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := 0; i < bins; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	mags := make([]float64, bins)
	vecmath.Magnitude(mags, re, im)

	bestBin := 0
	bestMag := -1.0
	for k := 1; k < bins; k++ {
		if mags[k] > bestMag {
			bestMag = mags[k]
			bestBin = k
		}
	}
	if bestBin == 0 {
		return
	}

	res.SpectralPeakHz = float64(bestBin) * c.cfg.SampleRate / float64(fftSize)
	res.SpectralPeakDB = core.LinearToDB(2 * bestMag / float64(fftSize))
}

func normalizeConfig(cfg Config) Config {
	if cfg.MaxFFTSize <= 0 {
		cfg.MaxFFTSize = defaultMaxFFTSize
	}
	if cfg.ClipThreshold <= 0 {
		cfg.ClipThreshold = defaultClipThreshold
	}
	if cfg.WindowType == 0 {
		cfg.WindowType = window.TypeHann
	}
	return cfg
}
