package window

import (
	"math"
	"testing"
)

func TestHannSymmetric(t *testing.T) {
	const n = 64
	w := Generate(TypeHann, n)
	if len(w) != n {
		t.Fatalf("length = %d, want %d", len(w), n)
	}

	if w[0] != 0 || math.Abs(w[n-1]) > 1e-15 {
		t.Errorf("hann endpoints = %g, %g, want 0", w[0], w[n-1])
	}
	for i := 0; i < n/2; i++ {
		if math.Abs(w[i]-w[n-1-i]) > 1e-12 {
			t.Fatalf("asymmetric at %d: %g != %g", i, w[i], w[n-1-i])
		}
	}
	// Odd-length symmetric hann peaks at exactly 1.
	odd := Generate(TypeHann, 65)
	if math.Abs(odd[32]-1) > 1e-12 {
		t.Errorf("hann midpoint = %g, want 1", odd[32])
	}
}

func TestRectangular(t *testing.T) {
	for _, c := range Generate(TypeRectangular, 16) {
		if c != 1 {
			t.Fatalf("rectangular coefficient = %g, want 1", c)
		}
	}
}

func TestPeriodicForm(t *testing.T) {
	// Periodic hann of length n equals symmetric hann of length n+1 without
	// its last point.
	n := 32
	periodic := Generate(TypeHann, n, WithPeriodic())
	symmetric := Generate(TypeHann, n+1)
	for i := 0; i < n; i++ {
		if math.Abs(periodic[i]-symmetric[i]) > 1e-12 {
			t.Fatalf("periodic mismatch at %d: %g != %g", i, periodic[i], symmetric[i])
		}
	}
}

func TestApply(t *testing.T) {
	buf := []float64{1, 1, 1, 1}
	Apply(TypeHann, buf)
	want := Generate(TypeHann, 4)
	for i := range buf {
		if buf[i] != want[i] {
			t.Errorf("applied[%d] = %g, want %g", i, buf[i], want[i])
		}
	}
}

func TestApplyCoefficients(t *testing.T) {
	samples := []float64{2, 2, 2, 2}
	coeffs := []float64{0.5, 1, 0.25, 0}
	ApplyCoefficients(samples, coeffs)
	want := []float64{1, 2, 0.5, 0}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("samples[%d] = %g, want %g", i, samples[i], want[i])
		}
	}

	// Extra coefficients beyond the sample slice are ignored.
	short := []float64{3, 3}
	ApplyCoefficients(short, []float64{1, 0.5, 0.25})
	if short[0] != 3 || short[1] != 1.5 {
		t.Errorf("short = %v, want [3 1.5]", short)
	}
}

func TestCoherentGain(t *testing.T) {
	if g := CoherentGain(Generate(TypeRectangular, 128)); math.Abs(g-1) > 1e-12 {
		t.Errorf("rectangular coherent gain = %g, want 1", g)
	}
	// Hann coherent gain approaches 0.5 for large sizes.
	if g := CoherentGain(Generate(TypeHann, 4096, WithPeriodic())); math.Abs(g-0.5) > 1e-3 {
		t.Errorf("hann coherent gain = %g, want ~0.5", g)
	}
	if g := CoherentGain(nil); g != 0 {
		t.Errorf("empty coherent gain = %g, want 0", g)
	}
}

func TestDegenerateLengths(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Error("length 0 should return nil")
	}
	w := Generate(TypeHann, 1)
	if len(w) != 1 || w[0] != 1 {
		t.Errorf("length 1 window = %v, want [1]", w)
	}
}
