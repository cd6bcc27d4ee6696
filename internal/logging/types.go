package logging

import "time"

// #region provenance-entry
// ProvenanceEntry is a single row in the provenance_log table.
type ProvenanceEntry struct {
	ModelID     string
	VersionID   string // ruleset version in force after the decision, if any
	Stage       string // "cycle" | "manual_rollback" | "replay"
	Decision    string // "apply" | "reject" | "rollback" | "no_op"
	Reason      string
	DetailsJSON string
	CreatedAt   time.Time
}

// #endregion provenance-entry

// #region cycle-record
// CycleRecord captures the complete inputs and outputs of one patch cycle.
// Serialized as JSON into provenance_log.details_json for deterministic replay.
type CycleRecord struct {
	ModelID string `json:"model_id"`

	// Analysis outputs as computed at runtime
	DriftScore   float64 `json:"drift_score"`
	DriftType    string  `json:"drift_type"`
	DriftedCount int     `json:"drifted_count"`
	FeatureCount int     `json:"feature_count"`

	// Candidate outcomes in validation order
	Candidates []CycleCandidate `json:"candidates"`

	// Thresholds active at decision time
	Thresholds CycleThresholds `json:"thresholds"`

	// Final action for the cycle
	Action           string   `json:"action"` // "patched" | "rolled_back" | "no_patch" | "rejected"
	AppliedPatchIDs  []string `json:"applied_patch_ids,omitempty"`
	PostDriftScore   float64  `json:"post_drift_score,omitempty"`
	ReductionPercent float64  `json:"reduction_percent,omitempty"`
}

// CycleCandidate captures one candidate's validation result.
type CycleCandidate struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	Priority       string  `json:"priority"`
	SafetyScore    float64 `json:"safety_score"`
	DriftReduction float64 `json:"drift_reduction"`
	Accepted       bool    `json:"accepted"`
	Approximate    bool    `json:"approximate"`
	Reason         string  `json:"reason,omitempty"`
}

// CycleThresholds captures the analyzer/validator config active at decision time.
type CycleThresholds struct {
	PSIThreshold    float64 `json:"psi_threshold"`
	KSThreshold     float64 `json:"ks_threshold"`
	DriftThreshold  float64 `json:"drift_threshold"`
	SafetyAccept    float64 `json:"safety_accept"`
	ReductionAccept float64 `json:"reduction_accept"`
}

// #endregion cycle-record
