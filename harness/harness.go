// Package harness binds named units and named test cases together and runs
// renders to a verdict. Every association is name-keyed: a unit factory, a
// test case, and the case's own pass/fail check are looked up by name,
// never by position.
package harness

import (
	"fmt"

	"github.com/cwbudde/algo-verify/dsp/source"
	"github.com/cwbudde/algo-verify/dsp/unit"
	"github.com/cwbudde/algo-verify/render"
)

// Check judges one successful render. A nil return means pass.
type Check func(render.Result) error

// Case is one named regression scenario: render setup plus its own check.
type Case struct {
	Name   string
	Config render.Config
	Input  source.Config
	Events []render.Event
	Check  Check
}

// Outcome is the verdict of running one case against one unit.
type Outcome struct {
	Case   string
	Result render.Result
	Pass   bool
	Reason string // populated on failure
}

// Harness holds the unit and case registries. Each lookup constructs a
// fresh unit instance, so runs never share DSP state.
type Harness struct {
	instruments *Registry[func() unit.Instrument]
	effects     *Registry[func() unit.Effect]
	cases       *Registry[Case]
}

// New creates a harness preloaded with the built-in units and cases.
func New() *Harness {
	h := &Harness{
		instruments: NewRegistry[func() unit.Instrument](),
		effects:     NewRegistry[func() unit.Effect](),
		cases:       NewRegistry[Case](),
	}

	h.instruments.MustRegister("null", func() unit.Instrument { return unit.NewNullInstrument() })
	h.instruments.MustRegister("sinesynth", func() unit.Instrument { return unit.NewSineSynth() })
	h.effects.MustRegister("passthrough", func() unit.Effect { return unit.NewPassthrough() })
	h.effects.MustRegister("gain", func() unit.Effect { return unit.NewGain() })
	h.effects.MustRegister("stereodelay", func() unit.Effect { return unit.NewStereoDelay() })

	registerBuiltinCases(h)
	return h
}

// RegisterInstrument adds a named instrument factory.
func (h *Harness) RegisterInstrument(name string, factory func() unit.Instrument) error {
	return h.instruments.Register(name, factory)
}

// RegisterEffect adds a named effect factory.
func (h *Harness) RegisterEffect(name string, factory func() unit.Effect) error {
	return h.effects.Register(name, factory)
}

// RegisterCase adds a named test case.
func (h *Harness) RegisterCase(c Case) error {
	return h.cases.Register(c.Name, c)
}

// InstrumentNames lists registered instruments.
func (h *Harness) InstrumentNames() []string { return h.instruments.Names() }

// EffectNames lists registered effects.
func (h *Harness) EffectNames() []string { return h.effects.Names() }

// CaseNames lists registered cases.
func (h *Harness) CaseNames() []string { return h.cases.Names() }

// InstrumentAdapter builds an adapter around a fresh instance of the named
// instrument.
func (h *Harness) InstrumentAdapter(name string) (render.Adapter, error) {
	factory, ok := h.instruments.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown instrument: %q", name)
	}
	return render.NewInstrumentAdapter(factory()), nil
}

// EffectAdapter builds an adapter around a fresh instance of the named
// effect.
func (h *Harness) EffectAdapter(name string) (render.Adapter, error) {
	factory, ok := h.effects.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown effect: %q", name)
	}
	return render.NewEffectAdapter(factory()), nil
}

// Case returns the named test case.
func (h *Harness) Case(name string) (Case, error) {
	c, ok := h.cases.Lookup(name)
	if !ok {
		return Case{}, fmt.Errorf("unknown case: %q", name)
	}
	return c, nil
}

// RunCase renders the named case through the given adapter and applies the
// case's check.
func (h *Harness) RunCase(ad render.Adapter, caseName string) (Outcome, error) {
	c, err := h.Case(caseName)
	if err != nil {
		return Outcome{}, err
	}
	return runOne(ad, c), nil
}

func runOne(ad render.Adapter, c Case) Outcome {
	out := Outcome{Case: c.Name}
	out.Result = render.Render(ad, c.Input, c.Events, c.Config)
	if !out.Result.OK {
		out.Reason = out.Result.Err
		return out
	}
	if c.Check != nil {
		if err := c.Check(out.Result); err != nil {
			out.Reason = err.Error()
			return out
		}
	}
	out.Pass = true
	return out
}
