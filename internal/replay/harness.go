package replay

import (
	"context"
	"fmt"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/orchestrator"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/patch"
)

// #region types
// WindowResult captures the outcome of replaying one window through the
// full pipeline.
type WindowResult struct {
	WindowID       string
	Action         orchestrator.Action
	DriftScore     float64
	DriftType      string
	PostDriftScore float64
	PatchType      patch.Type // type of the applied patch, "" when none
	Approximate    bool
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalWindows int
	Patched      int
	RolledBack   int
	Rejected     int
	NoDrift      int
	NoCandidates int
	Disabled     int

	// FinalRuleSet is the ruleset in force after the last window.
	FinalRuleSet patch.RuleSet
}

// Mismatch reports a divergence between a replay and its recorded
// expectations.
type Mismatch struct {
	WindowID string
	Expected string
	Got      string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("window %s: expected %s, got %s", m.WindowID, m.Expected, m.Got)
}

// #endregion types

// #region replay
// Replay runs every fixture window through the analyze → generate →
// validate → apply pipeline in order. Patches composed in one window stay
// active for the next, matching live behavior. Operates entirely
// in-memory; nothing is persisted.
func Replay(ctx context.Context, f *Fixture) ([]WindowResult, Summary, error) {
	cfg := f.Config.ToConfig()
	orch, err := orchestrator.NewOrchestrator(cfg, nil, nil)
	if err != nil {
		return nil, Summary{}, err
	}

	reference := f.ReferenceMatrix()
	results := make([]WindowResult, 0, len(f.Windows))

	for _, w := range f.Windows {
		res, err := orch.RunCycle(ctx, f.ModelID, reference, w.Matrix())
		if err != nil {
			return nil, Summary{}, fmt.Errorf("window %s: %w", w.WindowID, err)
		}

		wr := WindowResult{
			WindowID:       w.WindowID,
			Action:         res.Action,
			DriftScore:     res.Drift.OverallScore,
			DriftType:      string(res.Drift.Type),
			PostDriftScore: res.PostDriftScore,
		}
		if len(res.Applied) > 0 {
			wr.PatchType = res.Applied[0].Type
			wr.Approximate = res.Applied[0].Approximate
		}
		results = append(results, wr)
	}

	summary := Summarize(results)
	if rs, err := orch.Engine().ActiveRuleSet(f.ModelID); err == nil {
		summary.FinalRuleSet = rs
	}
	return results, summary, nil
}

// Summarize computes aggregate stats from window results.
func Summarize(results []WindowResult) Summary {
	s := Summary{TotalWindows: len(results)}
	for _, r := range results {
		switch r.Action {
		case orchestrator.ActionPatched:
			s.Patched++
		case orchestrator.ActionRolledBack:
			s.RolledBack++
		case orchestrator.ActionRejected:
			s.Rejected++
		case orchestrator.ActionNoDrift:
			s.NoDrift++
		case orchestrator.ActionNoCandidates:
			s.NoCandidates++
		case orchestrator.ActionDisabled:
			s.Disabled++
		}
	}
	return s
}

// Verify compares replay results against the fixture's expectations and
// returns one mismatch per diverging window.
func Verify(f *Fixture, results []WindowResult) []Mismatch {
	byID := make(map[string]WindowResult, len(results))
	for _, r := range results {
		byID[r.WindowID] = r
	}

	var mismatches []Mismatch
	for _, exp := range f.ExpectedResults {
		got, ok := byID[exp.WindowID]
		if !ok {
			mismatches = append(mismatches, Mismatch{
				WindowID: exp.WindowID,
				Expected: exp.Action,
				Got:      "(window not replayed)",
			})
			continue
		}
		if string(got.Action) != exp.Action {
			mismatches = append(mismatches, Mismatch{
				WindowID: exp.WindowID,
				Expected: exp.Action,
				Got:      string(got.Action),
			})
		}
	}
	return mismatches
}

// #endregion replay
