package harness

import (
	"fmt"

	"github.com/cwbudde/algo-verify/dsp/source"
	"github.com/cwbudde/algo-verify/render"
)

// continuityJumpThreshold bounds the allowed sample step across block
// boundaries for smooth signals. A 220 Hz sine at amplitude 0.2 steps by
// about 0.006 per sample at 48 kHz, well under this.
const continuityJumpThreshold = 0.01

func checkFinite(res render.Result) error {
	m := res.Metrics
	if m.NaNCount > 0 || m.InfCount > 0 {
		return fmt.Errorf("non-finite samples: %d NaN, %d Inf", m.NaNCount, m.InfCount)
	}
	return nil
}

func checkPeakAtMost(limit float64) Check {
	return func(res render.Result) error {
		if res.Metrics.Peak > limit {
			return fmt.Errorf("peak %g exceeds limit %g", res.Metrics.Peak, limit)
		}
		return nil
	}
}

func checkContinuity(res render.Result) error {
	if jump := res.Metrics.BlockEdgeMaxJump; jump > continuityJumpThreshold {
		return fmt.Errorf("block edge jump %g exceeds %g", jump, continuityJumpThreshold)
	}
	return nil
}

func allChecks(checks ...Check) Check {
	return func(res render.Result) error {
		for _, check := range checks {
			if err := check(res); err != nil {
				return err
			}
		}
		return nil
	}
}

// registerBuiltinCases installs the standard regression scenarios. The
// checks are deliberately unit-agnostic: they assert numeric health and
// continuity, not a particular sound.
func registerBuiltinCases(h *Harness) {
	h.cases.MustRegister("silence", Case{
		Name:   "silence",
		Config: render.DefaultConfig(),
		Input:  source.Config{Kind: source.KindSilence},
		Check:  allChecks(checkFinite, checkContinuity),
	})

	h.cases.MustRegister("tone", Case{
		Name:   "tone",
		Config: render.ApplyOptions(render.WithDuration(2)),
		Input:  source.Config{Kind: source.KindSine, Amplitude: 0.2, FrequencyHz: 220},
		Check:  allChecks(checkFinite, checkContinuity, checkPeakAtMost(1)),
	})

	h.cases.MustRegister("noise", Case{
		Name:   "noise",
		Config: render.DefaultConfig(),
		Input:  source.Config{Kind: source.KindNoise, Amplitude: 0.5},
		Check:  allChecks(checkFinite, checkPeakAtMost(1)),
	})

	h.cases.MustRegister("impulse", Case{
		Name:   "impulse",
		Config: render.DefaultConfig(),
		Input:  source.Config{Kind: source.KindImpulse, Amplitude: 1, ImpulseTime: 0.01},
		Check:  checkFinite,
	})

	for _, blockSize := range []int{32, 128, 512, 2048} {
		name := fmt.Sprintf("block-continuity-%d", blockSize)
		h.cases.MustRegister(name, Case{
			Name: name,
			Config: render.ApplyOptions(
				render.WithBlockSize(blockSize),
				render.WithDuration(0.5),
			),
			Input: source.Config{Kind: source.KindSine, Amplitude: 0.2, FrequencyHz: 220},
			Check: allChecks(checkFinite, checkContinuity),
		})
	}

	h.cases.MustRegister("note-lifecycle", Case{
		Name:   "note-lifecycle",
		Config: render.DefaultConfig(),
		Input:  source.Config{Kind: source.KindSilence},
		Events: []render.Event{
			render.NoteOn(0.1, 69, 100),
			render.NoteOff(0.6, 69),
		},
		Check: allChecks(checkFinite, checkPeakAtMost(1)),
	})
}
