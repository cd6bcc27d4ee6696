package replay

import (
	"context"
	"math/rand"
	"testing"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/orchestrator"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/patch"
)

// #region helpers
func gaussianRows(rng *rand.Rand, n int, mean, std float64) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = []float64{mean + std*rng.NormFloat64()}
	}
	return rows
}

func driftFixture(t *testing.T) *Fixture {
	t.Helper()
	rng := rand.New(rand.NewSource(31))
	return &Fixture{
		Description: "stable window, then a 3-sigma covariate shift",
		ModelID:     "m1",
		Reference:   gaussianRows(rng, 1000, 0, 1),
		Windows: []FixtureWindow{
			{WindowID: "w-stable", Rows: gaussianRows(rng, 300, 0, 1)},
			{WindowID: "w-shifted", Rows: gaussianRows(rng, 400, 3, 1)},
		},
		ExpectedResults: []FixtureExpectedResult{
			{WindowID: "w-stable", Action: "no_drift"},
			{WindowID: "w-shifted", Action: "patched"},
		},
	}
}

// #endregion helpers

// #region replay-tests
func TestReplayDriftSequence(t *testing.T) {
	f := driftFixture(t)

	results, summary, err := Replay(context.Background(), f)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 window results, got %d", len(results))
	}
	if results[0].Action != orchestrator.ActionNoDrift {
		t.Errorf("stable window action = %s", results[0].Action)
	}
	if results[1].Action != orchestrator.ActionPatched {
		t.Fatalf("shifted window action = %s", results[1].Action)
	}
	if results[1].PatchType != patch.TypeNormalization {
		t.Errorf("patch type = %s", results[1].PatchType)
	}
	if results[1].PostDriftScore >= results[1].DriftScore {
		t.Errorf("replayed patch did not reduce drift: %.3f → %.3f",
			results[1].DriftScore, results[1].PostDriftScore)
	}

	if summary.TotalWindows != 2 || summary.Patched != 1 || summary.NoDrift != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.FinalRuleSet.Empty() {
		t.Error("final ruleset should carry the applied patch")
	}
}

func TestReplayKillSwitchFixture(t *testing.T) {
	f := driftFixture(t)
	enabled := false
	f.Config.Enabled = &enabled

	results, summary, err := Replay(context.Background(), f)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if results[1].Action != orchestrator.ActionDisabled {
		t.Errorf("shifted window action = %s", results[1].Action)
	}
	if summary.Disabled != 1 || summary.Patched != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if !summary.FinalRuleSet.Empty() {
		t.Error("disabled replay must not compose rulesets")
	}
}

func TestVerifyDetectsDivergence(t *testing.T) {
	f := driftFixture(t)
	results := []WindowResult{
		{WindowID: "w-stable", Action: orchestrator.ActionNoDrift},
		{WindowID: "w-shifted", Action: orchestrator.ActionRejected},
	}

	mismatches := Verify(f, results)
	if len(mismatches) != 1 {
		t.Fatalf("expected 1 mismatch, got %d", len(mismatches))
	}
	if mismatches[0].WindowID != "w-shifted" || mismatches[0].Expected != "patched" {
		t.Errorf("mismatch = %+v", mismatches[0])
	}
}

func TestVerifyMissingWindow(t *testing.T) {
	f := driftFixture(t)
	mismatches := Verify(f, nil)
	if len(mismatches) != 2 {
		t.Fatalf("expected 2 mismatches for missing windows, got %d", len(mismatches))
	}
}

// #endregion replay-tests
