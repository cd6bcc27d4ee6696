package patch

// #region imports
import "time"

// #endregion

// #region patch-type

// Type enumerates the closed set of patch kinds. Adding a kind means
// extending the switches in the generator, validator, engine, and codec.
type Type string

const (
	TypeClipping      Type = "feature_clipping"
	TypeReweighting   Type = "feature_reweighting"
	TypeNormalization Type = "normalization_update"
	TypeThreshold     Type = "threshold_tuning"
	TypeModelUpdate   Type = "model_update"
)

// #endregion patch-type

// #region priority

// Priority orders candidates for validation and application.
type Priority string

const (
	PriorityPrimary   Priority = "primary"
	PrioritySecondary Priority = "secondary"
	PriorityEmergency Priority = "emergency"
)

// #endregion priority

// #region params

// Params is the closed parameter union. Exactly one concrete type per
// patch Type.
type Params interface {
	isParams()
}

// ClipRange bounds a single feature.
type ClipRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ClippingParams clips listed features to their ranges.
type ClippingParams struct {
	Bounds map[int]ClipRange `json:"bounds"`
}

// ReweightingParams multiplies listed features by a weight.
type ReweightingParams struct {
	Weights map[int]float64 `json:"weights"`
}

// NormTarget re-aligns a feature from its current moments to the
// reference moments: x' = (x - CurMean) / CurStd * RefStd + RefMean.
type NormTarget struct {
	CurMean float64 `json:"cur_mean"`
	CurStd  float64 `json:"cur_std"`
	RefMean float64 `json:"ref_mean"`
	RefStd  float64 `json:"ref_std"`
}

// NormalizationParams updates the normalizer for listed features.
type NormalizationParams struct {
	Targets map[int]NormTarget `json:"targets"`
}

// ThresholdParams shifts the decision threshold by Delta.
type ThresholdParams struct {
	Delta float64 `json:"delta"`
}

// ModelUpdateParams is advisory: the engine cannot retrain, so a
// MODEL_UPDATE candidate only carries a recommendation note.
type ModelUpdateParams struct {
	Note string `json:"note"`
}

func (ClippingParams) isParams()      {}
func (ReweightingParams) isParams()   {}
func (NormalizationParams) isParams() {}
func (ThresholdParams) isParams()     {}
func (ModelUpdateParams) isParams()   {}

// #endregion params

// #region candidate

// Candidate is a proposed corrective transformation. Ephemeral: it has no
// identity until validation accepts it and the engine applies it.
type Candidate struct {
	ID                     string
	Type                   Type
	Priority               Priority
	Params                 Params
	ExpectedDriftReduction float64
}

// #endregion candidate

// #region applied-patch

// Applied is a patch that passed validation and was composed into a
// model's active ruleset. Persisted per model.
type Applied struct {
	ID             string
	Type           Type
	Priority       Priority
	Params         Params
	AppliedAt      time.Time
	RolledBackAt   *time.Time
	Approximate    bool // validated via the fast-track estimate
	SafetyScore    float64
	DriftReduction float64
}

// #endregion applied-patch
