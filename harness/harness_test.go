package harness

import (
	"strings"
	"testing"

	"github.com/cwbudde/algo-verify/dsp/source"
	"github.com/cwbudde/algo-verify/dsp/unit"
	"github.com/cwbudde/algo-verify/render"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry[int]()

	if err := r.Register("one", 1); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register("two", 2); err != nil {
		t.Fatalf("Register: %v", err)
	}

	v, ok := r.Lookup("two")
	if !ok || v != 2 {
		t.Fatalf("Lookup(two) = %d, %v", v, ok)
	}
	if _, ok := r.Lookup("three"); ok {
		t.Fatal("Lookup(three) unexpectedly succeeded")
	}
}

func TestRegistryRejectsDuplicatesAndEmptyNames(t *testing.T) {
	r := NewRegistry[string]()

	if err := r.Register("", "x"); err == nil {
		t.Fatal("empty name accepted")
	}
	if err := r.Register("a", "x"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register("a", "y"); err == nil {
		t.Fatal("duplicate name accepted")
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry[int]()
	for i, name := range []string{"zeta", "alpha", "mid"} {
		if err := r.Register(name, i); err != nil {
			t.Fatalf("Register(%q): %v", name, err)
		}
	}

	names := r.Names()
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestNewRegistersBuiltins(t *testing.T) {
	h := New()

	for _, name := range []string{"null", "sinesynth"} {
		if _, err := h.InstrumentAdapter(name); err != nil {
			t.Errorf("InstrumentAdapter(%q): %v", name, err)
		}
	}
	for _, name := range []string{"passthrough", "gain", "stereodelay"} {
		if _, err := h.EffectAdapter(name); err != nil {
			t.Errorf("EffectAdapter(%q): %v", name, err)
		}
	}

	for _, name := range []string{
		"silence", "tone", "noise", "impulse",
		"block-continuity-32", "block-continuity-128",
		"block-continuity-512", "block-continuity-2048",
		"note-lifecycle",
	} {
		if _, err := h.Case(name); err != nil {
			t.Errorf("Case(%q): %v", name, err)
		}
	}
}

func TestUnknownNamesAreReported(t *testing.T) {
	h := New()

	if _, err := h.InstrumentAdapter("nope"); err == nil {
		t.Error("InstrumentAdapter(nope) succeeded")
	}
	if _, err := h.EffectAdapter("nope"); err == nil {
		t.Error("EffectAdapter(nope) succeeded")
	}
	if _, err := h.RunCase(nil, "nope"); err == nil {
		t.Error("RunCase(_, nope) succeeded")
	}
}

func TestBuiltinCasesPassThroughPassthrough(t *testing.T) {
	h := New()

	for _, name := range h.CaseNames() {
		ad, err := h.EffectAdapter("passthrough")
		if err != nil {
			t.Fatalf("EffectAdapter: %v", err)
		}
		out, err := h.RunCase(ad, name)
		if err != nil {
			t.Fatalf("RunCase(%q): %v", name, err)
		}
		if !out.Pass {
			t.Errorf("case %q failed: %s", name, out.Reason)
		}
	}
}

func TestNoteLifecycleDrivesSineSynth(t *testing.T) {
	h := New()

	ad, err := h.InstrumentAdapter("sinesynth")
	if err != nil {
		t.Fatalf("InstrumentAdapter: %v", err)
	}
	out, err := h.RunCase(ad, "note-lifecycle")
	if err != nil {
		t.Fatalf("RunCase: %v", err)
	}
	if !out.Pass {
		t.Fatalf("case failed: %s", out.Reason)
	}
	if out.Result.Metrics.RMS == 0 {
		t.Fatal("expected audible output from the note")
	}
}

func TestRunCaseReportsCheckFailure(t *testing.T) {
	h := New()
	err := h.RegisterCase(Case{
		Name:   "always-loud",
		Config: render.DefaultConfig(),
		Input:  source.Config{Kind: source.KindSine, Amplitude: 0.5, FrequencyHz: 440},
		Check:  checkPeakAtMost(0.001),
	})
	if err != nil {
		t.Fatalf("RegisterCase: %v", err)
	}

	ad := render.NewEffectAdapter(unit.NewPassthrough())
	out, err := h.RunCase(ad, "always-loud")
	if err != nil {
		t.Fatalf("RunCase: %v", err)
	}
	if out.Pass {
		t.Fatal("expected check failure")
	}
	if !strings.Contains(out.Reason, "peak") {
		t.Fatalf("unexpected reason: %s", out.Reason)
	}
}

func TestFreshUnitPerAdapter(t *testing.T) {
	h := New()

	a, err := h.InstrumentAdapter("sinesynth")
	if err != nil {
		t.Fatalf("InstrumentAdapter: %v", err)
	}
	b, err := h.InstrumentAdapter("sinesynth")
	if err != nil {
		t.Fatalf("InstrumentAdapter: %v", err)
	}
	if a == b {
		t.Fatal("adapters share an instance")
	}
}
