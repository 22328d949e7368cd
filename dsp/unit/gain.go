package unit

import (
	"fmt"
	"math"
)

const defaultGain = 1.0

// Gain is a stereo effect that scales both channels by a named "gain"
// parameter. It is the minimal parameterized effect used to exercise
// parameter events and golden comparisons against a known scaling.
type Gain struct {
	gain float64
}

// NewGain creates a gain effect with unity gain.
func NewGain() *Gain {
	return &Gain{gain: defaultGain}
}

// Prepare implements [Effect].
func (g *Gain) Prepare(sampleRate float64, blockSize int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("gain sample rate must be > 0: %g", sampleRate)
	}
	return nil
}

// Reset restores unity gain.
func (g *Gain) Reset() {
	g.gain = defaultGain
}

// SetParameter implements [ParameterSetter]. The only parameter is "gain",
// a linear factor.
func (g *Gain) SetParameter(name string, value float64) error {
	if name != "gain" {
		return fmt.Errorf("gain effect has no parameter %q", name)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("gain value must be finite: %g", value)
	}
	g.gain = value
	return nil
}

// ProcessStereo scales both channels in place.
func (g *Gain) ProcessStereo(left, right []float64, frames int) {
	for i := 0; i < frames; i++ {
		left[i] *= g.gain
		right[i] *= g.gain
	}
}

// Name implements [Effect].
func (g *Gain) Name() string { return "gain" }

// Version implements [Effect].
func (g *Gain) Version() string { return "1.0.0" }
