package unit

// Passthrough is a bit-transparent stereo effect. It exists so the harness
// can be verified against a path that is known to change nothing.
type Passthrough struct{}

// NewPassthrough creates a passthrough effect.
func NewPassthrough() *Passthrough {
	return &Passthrough{}
}

// Prepare implements [Effect].
func (p *Passthrough) Prepare(sampleRate float64, blockSize int) error {
	return nil
}

// Reset implements [Effect].
func (p *Passthrough) Reset() {}

// ProcessStereo leaves both channels untouched.
func (p *Passthrough) ProcessStereo(left, right []float64, frames int) {}

// Name implements [Effect].
func (p *Passthrough) Name() string { return "passthrough" }

// Version implements [Effect].
func (p *Passthrough) Version() string { return "1.0.0" }
