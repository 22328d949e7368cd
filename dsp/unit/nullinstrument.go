package unit

// NullInstrument is an instrument that accepts the full note lifecycle but
// adds no signal of its own. It provides the transparent instrument path
// for silence and continuity checks.
type NullInstrument struct {
	voices int
}

// NewNullInstrument creates a null instrument.
func NewNullInstrument() *NullInstrument {
	return &NullInstrument{}
}

// Prepare implements [Instrument].
func (n *NullInstrument) Prepare(sampleRate float64, blockSize int) error {
	return nil
}

// Reset implements [Instrument].
func (n *NullInstrument) Reset() {
	n.voices = 0
}

// SetParameter accepts and ignores any parameter.
func (n *NullInstrument) SetParameter(name string, value float64) error {
	return nil
}

// NoteOn implements [Instrument].
func (n *NullInstrument) NoteOn(note, velocity int) {
	n.voices++
}

// NoteOff implements [Instrument].
func (n *NullInstrument) NoteOff(note int) {
	if n.voices > 0 {
		n.voices--
	}
}

// Panic implements [Instrument].
func (n *NullInstrument) Panic() {
	n.voices = 0
}

// Process adds nothing.
func (n *NullInstrument) Process(buffers [][]float64, frames int) {}

// Name implements [Instrument].
func (n *NullInstrument) Name() string { return "null" }

// Version implements [Instrument].
func (n *NullInstrument) Version() string { return "1.0.0" }

// ActiveVoices implements [Instrument].
func (n *NullInstrument) ActiveVoices() int { return n.voices }
