package orchestrator

// #region imports
import (
	"time"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/classifier"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/patch"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/validator"
)

// #endregion

// #region action

// Action is the final disposition of one patch cycle.
type Action string

const (
	ActionNoDrift      Action = "no_drift"      // drift below threshold, nothing to do
	ActionNoCandidates Action = "no_candidates" // drift detected but no candidate generated
	ActionRejected     Action = "rejected"      // every candidate failed validation
	ActionPatched      Action = "patched"       // a candidate was applied and held up
	ActionRolledBack   Action = "rolled_back"   // applied, re-measured worse, reverted
	ActionDisabled     Action = "disabled"      // kill switch: analyzed and logged only
)

// #endregion action

// #region cycle-result

// CycleResult summarizes one run of the analyze → generate → validate →
// apply pipeline for a single model.
type CycleResult struct {
	ModelID string
	Action  Action

	Drift            classifier.DriftResult
	Candidates       []patch.Candidate
	Validations      []validator.Result
	Applied          []patch.Applied
	PostDriftScore   float64
	ReductionPercent float64
	Elapsed          time.Duration
}

// #endregion cycle-result

// #region outcome-record

// OutcomeRecord is one row of the patch_outcomes table: how a candidate
// of a given type fared against a given drift type.
type OutcomeRecord struct {
	ModelID        string
	DriftType      classifier.DriftType
	PatchType      patch.Type
	Accepted       bool
	DriftReduction float64
	CreatedAt      time.Time
}

// #endregion outcome-record
