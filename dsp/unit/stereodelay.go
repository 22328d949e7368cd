package unit

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-verify/dsp/core"
)

const (
	defaultDelayTime     = 0.25
	defaultDelayFeedback = 0.35
	defaultDelayMix      = 0.25
	minDelayTime         = 0.001
	maxDelayTime         = 2.0
	maxDelayFeedback     = 0.99
)

// delayLine is a fixed-size circular buffer with integer-sample reads.
type delayLine struct {
	buffer   []float64
	writePos int
}

func (d *delayLine) write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

func (d *delayLine) read(delay int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	return d.buffer[(d.writePos-delay+size)%size]
}

func (d *delayLine) reset() {
	core.Zero(d.buffer)
	d.writePos = 0
}

// StereoDelay is a feedback delay with dry/wet mix, applied independently
// to both channels. Parameters: "time" (seconds), "feedback" [0, 0.99],
// "mix" [0, 1]. Delay storage is allocated in Prepare; parameter changes
// between blocks never reallocate, so renders stay deterministic.
type StereoDelay struct {
	sampleRate   float64
	delaySeconds float64
	feedback     float64
	mix          float64

	delaySamples int
	left, right  delayLine
}

// NewStereoDelay creates a delay with practical defaults.
func NewStereoDelay() *StereoDelay {
	return &StereoDelay{
		delaySeconds: defaultDelayTime,
		feedback:     defaultDelayFeedback,
		mix:          defaultDelayMix,
	}
}

// Prepare allocates delay storage for the full supported delay range.
func (d *StereoDelay) Prepare(sampleRate float64, blockSize int) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("delay sample rate must be > 0: %g", sampleRate)
	}
	d.sampleRate = sampleRate
	size := int(math.Ceil(maxDelayTime*sampleRate)) + 1
	d.left = delayLine{buffer: make([]float64, size)}
	d.right = delayLine{buffer: make([]float64, size)}
	d.delaySamples = d.samplesFor(d.delaySeconds)
	return nil
}

// Reset clears delay history and restores default parameters.
func (d *StereoDelay) Reset() {
	d.delaySeconds = defaultDelayTime
	d.feedback = defaultDelayFeedback
	d.mix = defaultDelayMix
	if d.sampleRate > 0 {
		d.delaySamples = d.samplesFor(d.delaySeconds)
	}
	d.left.reset()
	d.right.reset()
}

// SetParameter implements [ParameterSetter].
func (d *StereoDelay) SetParameter(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("delay parameter %q must be finite: %g", name, value)
	}
	switch name {
	case "time":
		if value < minDelayTime || value > maxDelayTime {
			return fmt.Errorf("delay time must be in [%g, %g]: %g", minDelayTime, maxDelayTime, value)
		}
		d.delaySeconds = value
		if d.sampleRate > 0 {
			d.delaySamples = d.samplesFor(value)
		}
	case "feedback":
		if value < 0 || value > maxDelayFeedback {
			return fmt.Errorf("delay feedback must be in [0, %g]: %g", maxDelayFeedback, value)
		}
		d.feedback = value
	case "mix":
		if value < 0 || value > 1 {
			return fmt.Errorf("delay mix must be in [0, 1]: %g", value)
		}
		d.mix = value
	default:
		return fmt.Errorf("delay effect has no parameter %q", name)
	}
	return nil
}

// ProcessStereo applies the delay to both channels in place.
func (d *StereoDelay) ProcessStereo(left, right []float64, frames int) {
	for i := 0; i < frames; i++ {
		left[i] = d.processSample(&d.left, left[i])
		right[i] = d.processSample(&d.right, right[i])
	}
}

func (d *StereoDelay) processSample(line *delayLine, input float64) float64 {
	delayed := line.read(d.delaySamples)
	line.write(input + delayed*d.feedback)
	return input*(1-d.mix) + delayed*d.mix
}

func (d *StereoDelay) samplesFor(seconds float64) int {
	n := int(math.Round(seconds * d.sampleRate))
	if n < 1 {
		n = 1
	}
	return n
}

// Name implements [Effect].
func (d *StereoDelay) Name() string { return "stereodelay" }

// Version implements [Effect].
func (d *StereoDelay) Version() string { return "1.0.0" }
