package patch

// #region imports
import (
	"time"

	"github.com/google/uuid"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/matrix"
)

// #endregion

// #region ruleset

// RuleSet is the materialized preprocessing transform active for a model.
// Stages always apply in the fixed order clip → reweight → normalize →
// threshold, regardless of which subset a given patch touched.
type RuleSet struct {
	Version   string             `json:"version"`
	ModelID   string             `json:"model_id"`
	Clip      map[int]ClipRange  `json:"clip,omitempty"`
	Weights   map[int]float64    `json:"weights,omitempty"`
	Normalize map[int]NormTarget `json:"normalize,omitempty"`
	// ThresholdDelta shifts the model's decision threshold; it does not
	// touch input features.
	ThresholdDelta float64   `json:"threshold_delta,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewRuleSet returns an empty versioned ruleset for a model.
func NewRuleSet(modelID string) RuleSet {
	return RuleSet{
		Version:   uuid.New().String(),
		ModelID:   modelID,
		CreatedAt: time.Now().UTC(),
	}
}

// Empty reports whether the ruleset carries no stages at all.
func (rs RuleSet) Empty() bool {
	return len(rs.Clip) == 0 && len(rs.Weights) == 0 &&
		len(rs.Normalize) == 0 && rs.ThresholdDelta == 0
}

// #endregion ruleset

// #region compose

// Compose merges a candidate's parameters into a copy of the ruleset and
// stamps a new version. Per-feature entries from the candidate overwrite
// existing entries for the same feature; untouched stages carry over.
func (rs RuleSet) Compose(c Candidate) RuleSet {
	next := rs.cloneStages()
	next.Version = uuid.New().String()
	next.CreatedAt = time.Now().UTC()

	switch p := c.Params.(type) {
	case ClippingParams:
		if next.Clip == nil {
			next.Clip = make(map[int]ClipRange, len(p.Bounds))
		}
		for i, r := range p.Bounds {
			next.Clip[i] = r
		}
	case ReweightingParams:
		if next.Weights == nil {
			next.Weights = make(map[int]float64, len(p.Weights))
		}
		for i, w := range p.Weights {
			next.Weights[i] = w
		}
	case NormalizationParams:
		if next.Normalize == nil {
			next.Normalize = make(map[int]NormTarget, len(p.Targets))
		}
		for i, t := range p.Targets {
			next.Normalize[i] = t
		}
	case ThresholdParams:
		next.ThresholdDelta += p.Delta
	case ModelUpdateParams:
		// Advisory only; nothing to materialize.
	}
	return next
}

func (rs RuleSet) cloneStages() RuleSet {
	next := RuleSet{
		ModelID:        rs.ModelID,
		ThresholdDelta: rs.ThresholdDelta,
	}
	if len(rs.Clip) > 0 {
		next.Clip = make(map[int]ClipRange, len(rs.Clip))
		for i, r := range rs.Clip {
			next.Clip[i] = r
		}
	}
	if len(rs.Weights) > 0 {
		next.Weights = make(map[int]float64, len(rs.Weights))
		for i, w := range rs.Weights {
			next.Weights[i] = w
		}
	}
	if len(rs.Normalize) > 0 {
		next.Normalize = make(map[int]NormTarget, len(rs.Normalize))
		for i, t := range rs.Normalize {
			next.Normalize[i] = t
		}
	}
	return next
}

// #endregion compose

// #region apply

const normEpsilon = 1e-8

// Apply runs the input-feature stages (clip → reweight → normalize) over a
// matrix and returns a new matrix. The input is never mutated.
func (rs RuleSet) Apply(m matrix.Matrix) matrix.Matrix {
	out := m.Clone()
	for _, row := range out {
		for i := range row {
			if r, ok := rs.Clip[i]; ok {
				if row[i] < r.Min {
					row[i] = r.Min
				}
				if row[i] > r.Max {
					row[i] = r.Max
				}
			}
			if w, ok := rs.Weights[i]; ok {
				row[i] *= w
			}
			if t, ok := rs.Normalize[i]; ok {
				row[i] = (row[i]-t.CurMean)/(t.CurStd+normEpsilon)*t.RefStd + t.RefMean
			}
		}
	}
	return out
}

// AdjustedThreshold applies the threshold stage to a base decision
// threshold.
func (rs RuleSet) AdjustedThreshold(base float64) float64 {
	return base + rs.ThresholdDelta
}

// #endregion apply

// #region single-stage

// FromCandidate materializes a one-patch ruleset, used by the validator to
// transform the held-out subset without touching any live ruleset.
func FromCandidate(modelID string, c Candidate) RuleSet {
	return NewRuleSet(modelID).Compose(c)
}

// #endregion single-stage
