// Package unit defines the processing contracts for DSP units under test.
//
// Two capability variants exist: note-driven multi-channel instruments and
// stereo-only effects. Units are externally owned; the harness borrows an
// instance for the duration of one render call and never manages its
// lifetime.
package unit

// Instrument is the contract for a note-driven multi-channel synthesizer.
// Process adds into the provided planar buffers rather than overwriting
// them, so an input signal routed through an instrument path survives.
type Instrument interface {
	Prepare(sampleRate float64, blockSize int) error
	Reset()
	SetParameter(name string, value float64) error
	NoteOn(note, velocity int)
	NoteOff(note int)
	Panic()
	Process(buffers [][]float64, frames int)
	Name() string
	Version() string
	ActiveVoices() int
}

// Effect is the contract for a stereo in-place effect. Effects have no note
// concept; parameter support is optional via [ParameterSetter].
type Effect interface {
	Prepare(sampleRate float64, blockSize int) error
	Reset()
	ProcessStereo(left, right []float64, frames int)
	Name() string
	Version() string
}

// ParameterSetter is an optional interface for effects that accept named
// parameters. Effects without it treat parameter events as no-ops.
type ParameterSetter interface {
	SetParameter(name string, value float64) error
}
