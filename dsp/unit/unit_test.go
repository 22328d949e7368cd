package unit

import (
	"math"
	"testing"
)

// Compile-time contract checks.
var (
	_ Instrument      = (*SineSynth)(nil)
	_ Instrument      = (*NullInstrument)(nil)
	_ Effect          = (*Passthrough)(nil)
	_ Effect          = (*Gain)(nil)
	_ Effect          = (*StereoDelay)(nil)
	_ ParameterSetter = (*Gain)(nil)
	_ ParameterSetter = (*StereoDelay)(nil)
)

func TestGainScalesBothChannels(t *testing.T) {
	g := NewGain()
	if err := g.Prepare(48000, 64); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := g.SetParameter("gain", 0.5); err != nil {
		t.Fatalf("SetParameter: %v", err)
	}

	left := []float64{1, -1, 0.5}
	right := []float64{2, -2, 1}
	g.ProcessStereo(left, right, 3)

	wantL := []float64{0.5, -0.5, 0.25}
	wantR := []float64{1, -1, 0.5}
	for i := range wantL {
		if left[i] != wantL[i] || right[i] != wantR[i] {
			t.Fatalf("frame %d: got (%g, %g), want (%g, %g)", i, left[i], right[i], wantL[i], wantR[i])
		}
	}
}

func TestGainRejectsUnknownParameter(t *testing.T) {
	g := NewGain()
	if err := g.SetParameter("feedback", 0.5); err == nil {
		t.Error("expected error for unknown parameter")
	}
	if err := g.SetParameter("gain", math.NaN()); err == nil {
		t.Error("expected error for NaN gain")
	}
}

func TestGainResetRestoresUnity(t *testing.T) {
	g := NewGain()
	if err := g.SetParameter("gain", 3); err != nil {
		t.Fatalf("SetParameter: %v", err)
	}
	g.Reset()

	left := []float64{1}
	right := []float64{1}
	g.ProcessStereo(left, right, 1)
	if left[0] != 1 || right[0] != 1 {
		t.Errorf("reset gain altered signal: (%g, %g)", left[0], right[0])
	}
}

func TestPassthroughIsTransparent(t *testing.T) {
	p := NewPassthrough()
	if err := p.Prepare(48000, 64); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	left := []float64{0.1, 0.2, 0.3}
	right := []float64{0.4, 0.5, 0.6}
	p.ProcessStereo(left, right, 3)
	if left[0] != 0.1 || right[2] != 0.6 {
		t.Error("passthrough modified samples")
	}
}

func TestSineSynthVoiceLifecycle(t *testing.T) {
	s := NewSineSynth()
	if err := s.Prepare(48000, 128); err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	s.NoteOn(69, 100)
	s.NoteOn(72, 100)
	if got := s.ActiveVoices(); got != 2 {
		t.Fatalf("ActiveVoices = %d, want 2", got)
	}

	s.NoteOff(69)
	if got := s.ActiveVoices(); got != 1 {
		t.Fatalf("ActiveVoices after NoteOff = %d, want 1", got)
	}

	s.Panic()
	if got := s.ActiveVoices(); got != 0 {
		t.Fatalf("ActiveVoices after Panic = %d, want 0", got)
	}
}

func TestSineSynthProducesToneAtNoteFrequency(t *testing.T) {
	const sampleRate = 48000.0
	s := NewSineSynth()
	if err := s.Prepare(sampleRate, 512); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	s.NoteOn(69, 127) // A4 = 440 Hz

	out := make([]float64, 48000)
	for off := 0; off < len(out); off += 512 {
		n := 512
		if off+n > len(out) {
			n = len(out) - off
		}
		s.Process([][]float64{out[off : off+n]}, n)
	}

	crossings := 0
	peak := 0.0
	for i, x := range out {
		if a := math.Abs(x); a > peak {
			peak = a
		}
		if i > 0 && out[i-1]*x < 0 {
			crossings++
		}
	}
	// 440 Hz over one second: ~880 sign changes.
	if crossings < 878 || crossings > 882 {
		t.Errorf("zero crossings = %d, want ~880", crossings)
	}
	if math.Abs(peak-defaultSineSynthLevel) > 1e-3 {
		t.Errorf("peak = %g, want ~%g", peak, defaultSineSynthLevel)
	}
}

func TestSineSynthPhaseContinuityAcrossBlocks(t *testing.T) {
	s := NewSineSynth()
	if err := s.Prepare(48000, 64); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	s.NoteOn(60, 100)

	out := make([]float64, 4096)
	for off := 0; off < len(out); off += 64 {
		s.Process([][]float64{out[off : off+64]}, 64)
	}

	// The largest sample-to-sample step of a sine is bounded by amp*stepRad.
	maxStep := 0.0
	for i := 1; i < len(out); i++ {
		if d := math.Abs(out[i] - out[i-1]); d > maxStep {
			maxStep = d
		}
	}
	freq := 440 * math.Pow(2, float64(60-69)/12)
	bound := defaultSineSynthLevel * (float64(100) / 127) * 2 * math.Pi * freq / 48000 * 1.01
	if maxStep > bound {
		t.Errorf("max step %g exceeds continuity bound %g", maxStep, bound)
	}
}

func TestSineSynthProcessAddsIntoBuffers(t *testing.T) {
	s := NewSineSynth()
	if err := s.Prepare(48000, 16); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	s.NoteOn(69, 127)

	base := make([]float64, 16)
	for i := range base {
		base[i] = 1
	}
	s.Process([][]float64{base}, 16)

	// First produced sample is sin(0) = 0, so base[0] must still be 1.
	if base[0] != 1 {
		t.Errorf("Process overwrote instead of adding: base[0] = %g", base[0])
	}
}

func TestSineSynthParameterValidation(t *testing.T) {
	s := NewSineSynth()
	if err := s.SetParameter("level", 0.5); err != nil {
		t.Errorf("valid level rejected: %v", err)
	}
	if err := s.SetParameter("level", 1.5); err == nil {
		t.Error("expected error for out-of-range level")
	}
	if err := s.SetParameter("cutoff", 0.5); err == nil {
		t.Error("expected error for unknown parameter")
	}
}
