package render

import (
	"fmt"

	"github.com/cwbudde/algo-verify/dsp/unit"
)

// Default note used when translating gate events for note-driven units.
const (
	gateNote     = 60
	gateVelocity = 100
)

// Adapter is the uniform processing contract the renderer drives. Exactly
// two implementations exist: [InstrumentAdapter] and [EffectAdapter]. An
// adapter borrows its wrapped unit for the duration of one render call; it
// never owns it.
type Adapter interface {
	// Prepare validates the channel layout and prepares the wrapped unit.
	Prepare(sampleRate float64, blockSize, channels int) error
	// Reset restores the wrapped unit to its initial state.
	Reset()
	// ProcessBlock runs one block over planar channel buffers.
	ProcessBlock(chans [][]float64, frames int) error
	// HandleEvent applies one scheduled event at a block boundary.
	HandleEvent(ev Event) error
}

// InstrumentAdapter drives a note-driven multi-channel instrument.
type InstrumentAdapter struct {
	inst unit.Instrument
}

// NewInstrumentAdapter wraps a borrowed instrument.
func NewInstrumentAdapter(inst unit.Instrument) *InstrumentAdapter {
	return &InstrumentAdapter{inst: inst}
}

// Prepare implements [Adapter].
func (a *InstrumentAdapter) Prepare(sampleRate float64, blockSize, channels int) error {
	if a.inst == nil {
		return fmt.Errorf("instrument adapter has no unit")
	}
	if channels <= 0 {
		return fmt.Errorf("instrument channel count must be > 0: %d", channels)
	}
	if err := a.inst.Prepare(sampleRate, blockSize); err != nil {
		return fmt.Errorf("instrument %s prepare: %w", a.inst.Name(), err)
	}
	return nil
}

// Reset implements [Adapter].
func (a *InstrumentAdapter) Reset() {
	a.inst.Reset()
}

// ProcessBlock adds the instrument output into the channel buffers.
func (a *InstrumentAdapter) ProcessBlock(chans [][]float64, frames int) error {
	a.inst.Process(chans, frames)
	return nil
}

// HandleEvent implements [Adapter]. Gate events translate to note on/off of
// a fixed default note.
func (a *InstrumentAdapter) HandleEvent(ev Event) error {
	switch ev.Kind {
	case EventNoteOn:
		a.inst.NoteOn(ev.Note, ev.Velocity)
	case EventNoteOff:
		a.inst.NoteOff(ev.Note)
	case EventSetParam:
		if err := a.inst.SetParameter(ev.Param, ev.Value); err != nil {
			return fmt.Errorf("instrument %s: %w", a.inst.Name(), err)
		}
	case EventGate:
		if ev.On {
			a.inst.NoteOn(gateNote, gateVelocity)
		} else {
			a.inst.NoteOff(gateNote)
		}
	}
	return nil
}

// EffectAdapter drives a stereo in-place effect. Any channel count other
// than two is a configuration error, reported from Prepare.
type EffectAdapter struct {
	fx unit.Effect
}

// NewEffectAdapter wraps a borrowed effect.
func NewEffectAdapter(fx unit.Effect) *EffectAdapter {
	return &EffectAdapter{fx: fx}
}

// Prepare implements [Adapter].
func (a *EffectAdapter) Prepare(sampleRate float64, blockSize, channels int) error {
	if a.fx == nil {
		return fmt.Errorf("effect adapter has no unit")
	}
	if channels != 2 {
		return fmt.Errorf("effect %s requires exactly 2 channels, got %d", a.fx.Name(), channels)
	}
	if err := a.fx.Prepare(sampleRate, blockSize); err != nil {
		return fmt.Errorf("effect %s prepare: %w", a.fx.Name(), err)
	}
	return nil
}

// Reset implements [Adapter].
func (a *EffectAdapter) Reset() {
	a.fx.Reset()
}

// ProcessBlock implements [Adapter].
func (a *EffectAdapter) ProcessBlock(chans [][]float64, frames int) error {
	if len(chans) != 2 {
		return fmt.Errorf("effect %s requires exactly 2 channels, got %d", a.fx.Name(), len(chans))
	}
	a.fx.ProcessStereo(chans[0][:frames], chans[1][:frames], frames)
	return nil
}

// HandleEvent implements [Adapter]. Effects have no note concept; note and
// gate events are ignored. Parameter events reach the effect only when it
// implements [unit.ParameterSetter].
func (a *EffectAdapter) HandleEvent(ev Event) error {
	if ev.Kind != EventSetParam {
		return nil
	}
	ps, ok := a.fx.(unit.ParameterSetter)
	if !ok {
		return nil
	}
	if err := ps.SetParameter(ev.Param, ev.Value); err != nil {
		return fmt.Errorf("effect %s: %w", a.fx.Name(), err)
	}
	return nil
}
