package orchestrator

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/config"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/logging"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/matrix"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/patch"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/store"
)

// #region helpers
func gaussian(rng *rand.Rand, n int, mean, std float64) matrix.Matrix {
	m := make(matrix.Matrix, n)
	for i := range m {
		m[i] = []float64{mean + std*rng.NormFloat64()}
	}
	return m
}

func newOrchestrator(t *testing.T, cfg config.Config, withStore bool) (*Orchestrator, *store.Store) {
	t.Helper()
	var st *store.Store
	if withStore {
		var err error
		st, err = store.NewStore(filepath.Join(t.TempDir(), "engine.db"))
		if err != nil {
			t.Fatalf("open store: %v", err)
		}
		t.Cleanup(func() { st.Close() })
	}
	o, err := NewOrchestrator(cfg, st, nil)
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}
	return o, st
}

// #endregion helpers

// #region cycle-tests
func TestRunCycleNoDrift(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	ref := gaussian(rng, 500, 0, 1)
	cur := gaussian(rng, 300, 0, 1)

	o, _ := newOrchestrator(t, config.Default(), false)
	res, err := o.RunCycle(context.Background(), "m1", ref, cur)
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if res.Action != ActionNoDrift {
		t.Fatalf("action = %s, want %s", res.Action, ActionNoDrift)
	}
	if len(res.Applied) != 0 {
		t.Fatal("no patch should be applied without drift")
	}
}

func TestRunCyclePatchesCovariateDrift(t *testing.T) {
	rng := rand.New(rand.NewSource(22))
	ref := gaussian(rng, 1000, 0, 1)
	cur := gaussian(rng, 400, 3, 1)

	o, _ := newOrchestrator(t, config.Default(), false)
	res, err := o.RunCycle(context.Background(), "m1", ref, cur)
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if res.Action != ActionPatched {
		t.Fatalf("action = %s, want %s", res.Action, ActionPatched)
	}
	if len(res.Applied) == 0 || res.Applied[0].Type != patch.TypeNormalization {
		t.Fatalf("expected normalization patch applied, got %+v", res.Applied)
	}
	if res.PostDriftScore >= res.Drift.OverallScore {
		t.Fatalf("drift did not improve: pre=%.3f post=%.3f",
			res.Drift.OverallScore, res.PostDriftScore)
	}
	if res.ReductionPercent <= 0 {
		t.Fatalf("reduction percent = %.3f, want > 0", res.ReductionPercent)
	}

	// A second cycle on the same window sees corrected data.
	res2, err := o.RunCycle(context.Background(), "m1", ref, cur)
	if err != nil {
		t.Fatalf("second cycle: %v", err)
	}
	if res2.Drift.OverallScore >= res.Drift.OverallScore {
		t.Fatalf("second cycle should analyze corrected data: %.3f vs %.3f",
			res2.Drift.OverallScore, res.Drift.OverallScore)
	}
}

func TestRunCycleKillSwitch(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	ref := gaussian(rng, 1000, 0, 1)
	cur := gaussian(rng, 400, 3, 1)

	cfg := config.Default()
	cfg.Enabled = false
	o, _ := newOrchestrator(t, cfg, false)

	res, err := o.RunCycle(context.Background(), "m1", ref, cur)
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if res.Action != ActionDisabled {
		t.Fatalf("action = %s, want %s", res.Action, ActionDisabled)
	}
	if len(res.Applied) != 0 {
		t.Fatal("disabled engine must not apply patches")
	}
	// Validation still ran and is reported.
	if len(res.Validations) == 0 {
		t.Fatal("disabled engine should still validate for visibility")
	}
	rs, err := o.Engine().ActiveRuleSet("m1")
	if err != nil {
		t.Fatal(err)
	}
	if !rs.Empty() {
		t.Fatal("ruleset mutated while disabled")
	}
}

func TestRunCycleSmallDatasetApproximate(t *testing.T) {
	rng := rand.New(rand.NewSource(24))
	ref := gaussian(rng, 200, 0, 1)
	cur := gaussian(rng, 30, 3, 1)

	o, _ := newOrchestrator(t, config.Default(), false)
	res, err := o.RunCycle(context.Background(), "m1", ref, cur)
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if res.Action != ActionPatched {
		t.Fatalf("action = %s, want %s", res.Action, ActionPatched)
	}
	if !res.Applied[0].Approximate {
		t.Fatal("fast-track validation must mark the applied patch approximate")
	}
}

func TestRunCycleShapeError(t *testing.T) {
	o, _ := newOrchestrator(t, config.Default(), false)
	_, err := o.RunCycle(context.Background(), "m1",
		matrix.Matrix{{1, 2}, {3, 4}}, matrix.Matrix{{1}, {2}})
	if err == nil {
		t.Fatal("expected error for mismatched schemas")
	}
}

// #endregion cycle-tests

// #region persistence-tests
func TestRunCycleWritesProvenanceAndOutcomes(t *testing.T) {
	rng := rand.New(rand.NewSource(25))
	ref := gaussian(rng, 1000, 0, 1)
	cur := gaussian(rng, 400, 3, 1)

	o, st := newOrchestrator(t, config.Default(), true)
	res, err := o.RunCycle(context.Background(), "m1", ref, cur)
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if res.Action != ActionPatched {
		t.Fatalf("action = %s", res.Action)
	}

	entries, err := logging.ListEntries(st.DB(), "m1", 10)
	if err != nil {
		t.Fatalf("list provenance: %v", err)
	}
	if len(entries) != 1 || entries[0].Decision != "apply" {
		t.Fatalf("expected one apply provenance entry, got %+v", entries)
	}
	if entries[0].VersionID == "" {
		t.Error("provenance entry missing ruleset version")
	}

	var count int
	st.DB().QueryRow("SELECT COUNT(*) FROM patch_outcomes WHERE model_id = 'm1'").Scan(&count)
	if count != len(res.Validations) {
		t.Errorf("expected %d outcome rows, got %d", len(res.Validations), count)
	}

	// State survives a fresh orchestrator over the same store.
	o2, err := NewOrchestrator(config.Default(), st, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	rs, err := o2.Engine().ActiveRuleSet("m1")
	if err != nil {
		t.Fatal(err)
	}
	if rs.Empty() {
		t.Fatal("applied ruleset did not persist")
	}
}

// #endregion persistence-tests

// #region run-all-tests
func TestRunAllIndependentModels(t *testing.T) {
	rng := rand.New(rand.NewSource(26))
	batches := []ModelBatch{
		{ModelID: "drifted", Reference: gaussian(rng, 800, 0, 1), Current: gaussian(rng, 300, 3, 1)},
		{ModelID: "stable", Reference: gaussian(rng, 800, 0, 1), Current: gaussian(rng, 300, 0, 1)},
	}

	o, _ := newOrchestrator(t, config.Default(), false)
	results, err := o.RunAll(context.Background(), batches)
	if err != nil {
		t.Fatalf("run all: %v", err)
	}
	if results[0].Action != ActionPatched {
		t.Errorf("drifted model action = %s", results[0].Action)
	}
	if results[1].Action != ActionNoDrift {
		t.Errorf("stable model action = %s", results[1].Action)
	}
}

// #endregion run-all-tests
