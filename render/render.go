// Package render drives block-wise offline rendering of a DSP unit under
// test and produces a fully analyzed result buffer.
//
// A render call is a pure, self-contained computation: all state (source
// generator, event cursor, continuity tracker) is call-local, so repeat
// calls with identical inputs are bit-identical and independent calls are
// safe to run in parallel at the caller's discretion.
package render

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-verify/dsp/core"
	"github.com/cwbudde/algo-verify/dsp/source"
	"github.com/cwbudde/algo-verify/measure/metrics"
)

// Config describes one offline render. Total frame count is
// round(Duration * SampleRate). The config is never mutated by a render
// call.
type Config struct {
	core.ProcessorConfig
	Duration float64 // seconds
	Channels int
	Seed     uint32 // default input seed, used when the source config has none
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a stereo render of one second at the core defaults.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig: core.DefaultProcessorConfig(),
		Duration:        1,
		Channels:        2,
		Seed:            1,
	}
}

// WithSampleRate sets the render sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) Option {
	return func(cfg *Config) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithDuration sets the render duration in seconds.
func WithDuration(seconds float64) Option {
	return func(cfg *Config) {
		if seconds >= 0 {
			cfg.Duration = seconds
		}
	}
}

// WithChannels sets the output channel count.
func WithChannels(channels int) Option {
	return func(cfg *Config) {
		if channels > 0 {
			cfg.Channels = channels
		}
	}
}

// WithSeed sets the default PRNG seed for the input source.
func WithSeed(seed uint32) Option {
	return func(cfg *Config) {
		cfg.Seed = seed
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Result is the outcome of one render call. It is returned by value; the
// renderer retains no reference to the buffer after the call returns.
type Result struct {
	Buffer     []float64 // interleaved, exactly Frames*Channels samples
	Frames     int
	Channels   int
	SampleRate float64
	Metrics    metrics.Result
	OK         bool
	Err        string
}

func failResult(format string, args ...any) Result {
	return Result{Err: fmt.Sprintf(format, args...)}
}

// Render synthesizes the configured input, drives the adapter block by
// block, applies scheduled events at block boundaries, and analyzes the
// assembled buffer. It never panics outward: any misconfiguration yields
// OK=false with a diagnostic message.
func Render(ad Adapter, input source.Config, events []Event, cfg Config) Result {
	if ad == nil {
		return failResult("render requires an adapter")
	}
	if cfg.SampleRate <= 0 {
		return failResult("render sample rate must be > 0: %g", cfg.SampleRate)
	}
	if cfg.BlockSize <= 0 {
		return failResult("render block size must be > 0: %d", cfg.BlockSize)
	}
	if cfg.Channels <= 0 {
		return failResult("render channel count must be > 0: %d", cfg.Channels)
	}
	if cfg.Duration < 0 || math.IsNaN(cfg.Duration) || math.IsInf(cfg.Duration, 0) {
		return failResult("render duration must be >= 0 and finite: %g", cfg.Duration)
	}

	if input.Seed == 0 {
		input.Seed = cfg.Seed
	}
	gen, err := source.NewGenerator(input, cfg.SampleRate)
	if err != nil {
		return failResult("render input: %v", err)
	}

	if err := ad.Prepare(cfg.SampleRate, cfg.BlockSize, cfg.Channels); err != nil {
		return failResult("render prepare: %v", err)
	}
	ad.Reset()

	frames := int(math.Round(cfg.Duration * cfg.SampleRate))
	out := make([]float64, frames*cfg.Channels)

	chans := make([][]float64, cfg.Channels)
	for c := range chans {
		chans[c] = make([]float64, cfg.BlockSize)
	}
	mono := make([]float64, cfg.BlockSize)

	sched := newSchedule(events)
	last := make([]float64, cfg.Channels)
	havePrev := false
	maxJump := 0.0

	for offset := 0; offset < frames; offset += cfg.BlockSize {
		n := cfg.BlockSize
		if frames-offset < n {
			n = frames - offset
		}
		blockStart := float64(offset) / cfg.SampleRate

		for _, ev := range sched.popDue(blockStart) {
			if err := ad.HandleEvent(ev); err != nil {
				return failResult("render event at %.6fs (%s): %v", ev.Time, ev.Kind, err)
			}
		}

		gen.Fill(mono[:n])
		for c := range chans {
			core.CopyInto(chans[c][:n], mono[:n])
		}

		if err := ad.ProcessBlock(chans, n); err != nil {
			return failResult("render block at frame %d: %v", offset, err)
		}

		if havePrev {
			for c := range chans {
				if jump := math.Abs(chans[c][0] - last[c]); jump > maxJump {
					maxJump = jump
				}
			}
		}
		for c := range chans {
			last[c] = chans[c][n-1]
		}
		havePrev = true

		if err := core.Interleave(out[offset*cfg.Channels:], chans, n); err != nil {
			return failResult("render assemble at frame %d: %v", offset, err)
		}
	}

	m := metrics.Analyze(out, cfg.Channels, metrics.Config{SampleRate: cfg.SampleRate})
	m.BlockEdgeMaxJump = maxJump

	return Result{
		Buffer:     out,
		Frames:     frames,
		Channels:   cfg.Channels,
		SampleRate: cfg.SampleRate,
		Metrics:    m,
		OK:         true,
	}
}
