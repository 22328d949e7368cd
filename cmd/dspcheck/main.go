// Command dspcheck renders a DSP unit through a named test case and reports
// the resulting metrics, optionally verifying the output against a stored
// golden reference.
//
// Usage:
//
//	dspcheck [flags]
//
// Exactly one of -instrument or -effect selects the unit under test.
//
// Examples:
//
//	dspcheck -effect passthrough -case tone
//	dspcheck -instrument sinesynth -case note-lifecycle -out take.wav
//	dspcheck -effect gain -case tone -write-golden ref.avg
//	dspcheck -effect gain -case tone -golden ref.avg
//	dspcheck -list
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-verify/harness"
	"github.com/cwbudde/algo-verify/internal/wavio"
	"github.com/cwbudde/algo-verify/measure/golden"
	"github.com/cwbudde/algo-verify/render"
)

func main() {
	instrument := flag.String("instrument", "", "instrument under test")
	effect := flag.String("effect", "", "effect under test")
	caseName := flag.String("case", "tone", "test case to run")
	outPath := flag.String("out", "", "write the rendered audio to a 16-bit WAV file")
	goldenPath := flag.String("golden", "", "compare the render against this golden reference")
	writeGolden := flag.String("write-golden", "", "store the render as a golden reference")
	maxLag := flag.Int("max-lag", 0, "alignment search window in samples (0 = default)")
	list := flag.Bool("list", false, "list available units and cases")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dspcheck [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders a DSP unit through a named test case and reports metrics.\n")
		fmt.Fprintf(os.Stderr, "Exactly one of -instrument or -effect selects the unit under test.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  dspcheck -effect passthrough -case tone\n")
		fmt.Fprintf(os.Stderr, "  dspcheck -instrument sinesynth -case note-lifecycle -out take.wav\n")
		fmt.Fprintf(os.Stderr, "  dspcheck -effect gain -case tone -golden ref.avg\n")
		fmt.Fprintf(os.Stderr, "  dspcheck -list\n")
	}
	flag.Parse()

	h := harness.New()

	if *list {
		printInventory(h)
		return
	}

	if (*instrument == "") == (*effect == "") {
		fmt.Fprintf(os.Stderr, "error: exactly one of -instrument or -effect is required\n")
		os.Exit(1)
	}

	ad, unitName, err := selectAdapter(h, *instrument, *effect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	out, err := h.RunCase(ad, *caseName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	printOutcome(unitName, out)

	failed := !out.Pass

	if out.Result.OK {
		res := out.Result
		if *outPath != "" {
			if err := wavio.WriteFile(*outPath, res.Buffer, res.Channels, int(res.SampleRate)); err != nil {
				fmt.Fprintf(os.Stderr, "error: write wav: %v\n", err)
				os.Exit(1)
			}
		}
		if *writeGolden != "" {
			ref := golden.Reference{
				Samples:    res.Buffer,
				Channels:   res.Channels,
				SampleRate: res.SampleRate,
				Tol:        golden.DefaultTolerances(),
			}
			if err := ref.WriteFile(*writeGolden); err != nil {
				fmt.Fprintf(os.Stderr, "error: write golden: %v\n", err)
				os.Exit(1)
			}
		}
		if *goldenPath != "" {
			if !compareGolden(res, *goldenPath, *maxLag) {
				failed = true
			}
		}
	}

	if failed {
		os.Exit(1)
	}
}

func selectAdapter(h *harness.Harness, instrument, effect string) (render.Adapter, string, error) {
	if instrument != "" {
		ad, err := h.InstrumentAdapter(instrument)
		return ad, instrument, err
	}
	ad, err := h.EffectAdapter(effect)
	return ad, effect, err
}

func printInventory(h *harness.Harness) {
	fmt.Printf("instruments: %s\n", strings.Join(h.InstrumentNames(), ", "))
	fmt.Printf("effects:     %s\n", strings.Join(h.EffectNames(), ", "))
	fmt.Println("cases:")
	for _, name := range h.CaseNames() {
		fmt.Printf("  %s\n", name)
	}
}

func printOutcome(unitName string, out harness.Outcome) {
	verdict := "PASS"
	if !out.Pass {
		verdict = "FAIL"
	}
	fmt.Printf("%s: %s / %s\n", verdict, unitName, out.Case)
	if !out.Result.OK {
		fmt.Printf("render error: %s\n", out.Result.Err)
		return
	}
	if out.Reason != "" {
		fmt.Printf("reason: %s\n", out.Reason)
	}

	m := out.Result.Metrics
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "frames\t%d\n", out.Result.Frames)
	fmt.Fprintf(tw, "rms\t%.8g\n", m.RMS)
	fmt.Fprintf(tw, "peak\t%.8g\n", m.Peak)
	fmt.Fprintf(tw, "dc offset\t%.8g\n", m.DCOffset)
	fmt.Fprintf(tw, "energy\t%.8g\n", m.Energy)
	fmt.Fprintf(tw, "zero crossings/s\t%.6g\n", m.ZeroCrossingsPerSec)
	fmt.Fprintf(tw, "block edge jump\t%.8g\n", m.BlockEdgeMaxJump)
	fmt.Fprintf(tw, "spectral peak\t%.6g Hz @ %.2f dB\n", m.SpectralPeakHz, m.SpectralPeakDB)
	fmt.Fprintf(tw, "nan/inf\t%d/%d\n", m.NaNCount, m.InfCount)
	fmt.Fprintf(tw, "clipped\t%d\n", m.ClippedSamples)
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: flush output: %v\n", err)
	}
}

func compareGolden(res render.Result, path string, maxLag int) bool {
	ref, err := golden.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: load golden: %v\n", err)
		return false
	}

	cmp := golden.Compare(res.Buffer, res.Channels, ref, golden.Config{MaxLagSamples: maxLag})
	verdict := "PASS"
	if !cmp.Pass {
		verdict = "FAIL"
	}
	fmt.Printf("golden %s: %s\n", verdict, path)
	fmt.Printf("  max abs diff %.3g, rms diff %.3g, snr %.1f dB, lag %d\n",
		cmp.MaxAbsDiff, cmp.RMSDiff, cmp.SNRdB, cmp.Lag)
	if cmp.Detail != "" {
		fmt.Printf("  %s\n", cmp.Detail)
	}
	return cmp.Pass
}
