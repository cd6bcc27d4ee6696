package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	verbose := flag.Bool("v", false, "print per-window detail")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [-v]")
		os.Exit(2)
	}

	f, err := replay.LoadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		os.Exit(2)
	}
	if f.Description != "" {
		fmt.Printf("fixture: %s\n", f.Description)
	}

	results, summary, err := replay.Replay(context.Background(), f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(2)
	}

	if *verbose {
		fmt.Printf("\n%-16s %-14s %-10s %-8s %-8s %s\n",
			"WINDOW", "ACTION", "TYPE", "DRIFT", "POST", "PATCH")
		for _, r := range results {
			fmt.Printf("%-16s %-14s %-10s %-8.3f %-8.3f %s\n",
				r.WindowID, r.Action, r.DriftType, r.DriftScore, r.PostDriftScore, r.PatchType)
		}
	}

	fmt.Printf("\n%d windows: %d patched, %d rolled back, %d rejected, %d no drift, %d no candidates, %d disabled\n",
		summary.TotalWindows, summary.Patched, summary.RolledBack,
		summary.Rejected, summary.NoDrift, summary.NoCandidates, summary.Disabled)
	if !summary.FinalRuleSet.Empty() {
		fmt.Printf("final ruleset %s: clip=%d weights=%d normalize=%d threshold=%+.4f\n",
			summary.FinalRuleSet.Version,
			len(summary.FinalRuleSet.Clip), len(summary.FinalRuleSet.Weights),
			len(summary.FinalRuleSet.Normalize), summary.FinalRuleSet.ThresholdDelta)
	}

	mismatches := replay.Verify(f, results)
	if len(mismatches) > 0 {
		fmt.Fprintf(os.Stderr, "\n%d expectation mismatches:\n", len(mismatches))
		for _, m := range mismatches {
			fmt.Fprintf(os.Stderr, "  %s\n", m)
		}
		os.Exit(1)
	}
	if len(f.ExpectedResults) > 0 {
		fmt.Printf("all %d expectations matched\n", len(f.ExpectedResults))
	}
}

// #endregion main
