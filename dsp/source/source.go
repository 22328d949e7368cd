// Package source generates deterministic test input signals sample by sample.
//
// A Generator is a small explicit state machine (frame cursor, oscillator
// phase, PRNG state) so that block-wise generation produces bit-identical
// output to one-shot generation, independent of block partitioning.
package source

import (
	"fmt"
	"math"
)

// Kind selects the signal family.
type Kind int

const (
	KindSilence Kind = iota
	KindImpulse
	KindSine
	KindNoise
	KindDC
)

// String returns the canonical lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSilence:
		return "silence"
	case KindImpulse:
		return "impulse"
	case KindSine:
		return "sine"
	case KindNoise:
		return "noise"
	case KindDC:
		return "dc"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind resolves a lowercase kind name.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "silence":
		return KindSilence, nil
	case "impulse":
		return KindImpulse, nil
	case "sine":
		return KindSine, nil
	case "noise":
		return KindNoise, nil
	case "dc":
		return KindDC, nil
	default:
		return 0, fmt.Errorf("unknown signal kind: %q", name)
	}
}

// Config fully determines an input sequence for a given sample rate.
// There is no hidden state: identical config and seed reproduce the
// identical sequence across runs and platforms.
type Config struct {
	Kind        Kind
	Amplitude   float64
	FrequencyHz float64 // sine only
	ImpulseTime float64 // impulse only, seconds
	Seed        uint32  // noise only
}

// DefaultConfig returns a silent source.
func DefaultConfig() Config {
	return Config{Kind: KindSilence, Amplitude: 1}
}

// Generator produces the configured signal one sample at a time.
type Generator struct {
	cfg        Config
	sampleRate float64

	frame       int
	phase       float64 // sine phase in [0, 2*pi)
	rng         uint32
	impulseAt   int
	phaseStep   float64
}

// NewGenerator creates a generator for the given config and sample rate.
func NewGenerator(cfg Config, sampleRate float64) (*Generator, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("source sample rate must be > 0: %g", sampleRate)
	}
	if cfg.Kind == KindSine && cfg.FrequencyHz <= 0 {
		return nil, fmt.Errorf("sine frequency must be > 0: %g", cfg.FrequencyHz)
	}

	g := &Generator{
		cfg:        cfg,
		sampleRate: sampleRate,
		phaseStep:  2 * math.Pi * cfg.FrequencyHz / sampleRate,
		impulseAt:  int(math.Round(cfg.ImpulseTime * sampleRate)),
	}
	g.rng = cfg.Seed
	if g.rng == 0 {
		g.rng = 1 // xorshift must not start at zero
	}
	return g, nil
}

// Reset rewinds the generator to the start of the sequence.
func (g *Generator) Reset() {
	g.frame = 0
	g.phase = 0
	g.rng = g.cfg.Seed
	if g.rng == 0 {
		g.rng = 1
	}
}

// Next returns the next sample and advances the generator state.
func (g *Generator) Next() float64 {
	var x float64

	switch g.cfg.Kind {
	case KindSilence:
		x = 0
	case KindImpulse:
		if g.frame == g.impulseAt {
			x = g.cfg.Amplitude
		}
	case KindSine:
		x = g.cfg.Amplitude * math.Sin(g.phase)
		g.phase += g.phaseStep
		if g.phase >= 2*math.Pi {
			g.phase -= 2 * math.Pi
		}
	case KindNoise:
		x = g.cfg.Amplitude * g.nextUniform()
	case KindDC:
		x = g.cfg.Amplitude
	}

	g.frame++
	return x
}

// Fill writes len(dst) consecutive samples into dst.
func (g *Generator) Fill(dst []float64) {
	for i := range dst {
		dst[i] = g.Next()
	}
}

// Frame returns the zero-based index of the next sample to be produced.
func (g *Generator) Frame() int {
	return g.frame
}

// nextUniform advances the xorshift32 state and maps it into [-1, 1].
func (g *Generator) nextUniform() float64 {
	g.rng ^= g.rng << 13
	g.rng ^= g.rng >> 17
	g.rng ^= g.rng << 5
	return float64(g.rng)/float64(math.MaxUint32)*2 - 1
}
