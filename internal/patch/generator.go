package patch

// #region imports
import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/classifier"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/matrix"
)

// #endregion

// #region generator-config

// GeneratorConfig holds the candidate parameterization knobs.
type GeneratorConfig struct {
	NormalizationReduction float64 // expected reduction for normalization updates
	ClippingReduction      float64 // expected reduction for secondary clipping
	ReweightingReduction   float64 // expected reduction for reweighting
	ThresholdReduction     float64 // expected reduction for threshold tuning
	EmergencyReduction     float64 // expected reduction for emergency clipping

	EmergencyScoreCut float64 // overall score above this adds an emergency candidate
	ClipLowPct        float64 // secondary clipping lower percentile
	ClipHighPct       float64 // secondary clipping upper percentile
	EmergencyLowPct   float64 // emergency clipping lower percentile
	EmergencyHighPct  float64 // emergency clipping upper percentile

	ThresholdDeltaScale float64 // delta per unit of output-shift proxy
	MaxThresholdDelta   float64 // clamp on the threshold delta magnitude
}

// DefaultGeneratorConfig returns the standard candidate parameters.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		NormalizationReduction: 0.70,
		ClippingReduction:      0.45,
		ReweightingReduction:   0.60,
		ThresholdReduction:     0.35,
		EmergencyReduction:     0.50,
		EmergencyScoreCut:      0.6,
		ClipLowPct:             1,
		ClipHighPct:            99,
		EmergencyLowPct:        5,
		EmergencyHighPct:       95,
		ThresholdDeltaScale:    0.05,
		MaxThresholdDelta:      0.2,
	}
}

// #endregion generator-config

// #region generator

// Generator turns a drift classification into typed patch candidates.
// Candidates carry parameters only; generation has no side effects.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// #endregion generator

// #region generate

// Generate produces candidates for a drift result, primary first. The
// reference and current matrices supply percentile and moment parameters;
// they are read, never modified.
func (g *Generator) Generate(result classifier.DriftResult, reference, current matrix.Matrix) []Candidate {
	drifted := result.DriftedFeatures
	if len(drifted) == 0 {
		return nil
	}

	var candidates []Candidate
	switch result.Type {
	case classifier.DriftCovariate:
		candidates = append(candidates,
			g.normalizationCandidate(drifted, reference, current),
			g.clippingCandidate(drifted, current, PrioritySecondary,
				g.config.ClipLowPct, g.config.ClipHighPct, g.config.ClippingReduction),
		)
	case classifier.DriftConcept:
		candidates = append(candidates, g.reweightingCandidate(result))
	case classifier.DriftPrior:
		candidates = append(candidates, g.thresholdCandidate(result))
	}

	if result.OverallScore > g.config.EmergencyScoreCut {
		candidates = append(candidates,
			g.clippingCandidate(drifted, current, PriorityEmergency,
				g.config.EmergencyLowPct, g.config.EmergencyHighPct, g.config.EmergencyReduction))
	}
	return candidates
}

// #endregion generate

// #region normalization

func (g *Generator) normalizationCandidate(drifted []int, reference, current matrix.Matrix) Candidate {
	targets := make(map[int]NormTarget, len(drifted))
	for _, i := range drifted {
		refStats := matrix.Stats(reference.Column(i))
		curStats := matrix.Stats(current.Column(i))
		targets[i] = NormTarget{
			CurMean: curStats.Mean,
			CurStd:  curStats.Std,
			RefMean: refStats.Mean,
			RefStd:  refStats.Std,
		}
	}
	return Candidate{
		ID:                     uuid.New().String(),
		Type:                   TypeNormalization,
		Priority:               PriorityPrimary,
		Params:                 NormalizationParams{Targets: targets},
		ExpectedDriftReduction: g.config.NormalizationReduction,
	}
}

// #endregion normalization

// #region clipping

func (g *Generator) clippingCandidate(drifted []int, current matrix.Matrix, prio Priority, lowPct, highPct, reduction float64) Candidate {
	bounds := make(map[int]ClipRange, len(drifted))
	for _, i := range drifted {
		col := current.Column(i)
		bounds[i] = ClipRange{
			Min: matrix.Percentile(col, lowPct),
			Max: matrix.Percentile(col, highPct),
		}
	}
	return Candidate{
		ID:                     uuid.New().String(),
		Type:                   TypeClipping,
		Priority:               prio,
		Params:                 ClippingParams{Bounds: bounds},
		ExpectedDriftReduction: reduction,
	}
}

// #endregion clipping

// #region reweighting

func (g *Generator) reweightingCandidate(result classifier.DriftResult) Candidate {
	weights := make(map[int]float64, len(result.DriftedFeatures))
	for _, m := range result.PerFeature {
		if !m.Drifted {
			continue
		}
		score := math.Min(1, m.PSI)
		weights[m.FeatureIndex] = 1 / (1 + score)
	}
	return Candidate{
		ID:                     uuid.New().String(),
		Type:                   TypeReweighting,
		Priority:               PriorityPrimary,
		Params:                 ReweightingParams{Weights: weights},
		ExpectedDriftReduction: g.config.ReweightingReduction,
	}
}

// #endregion reweighting

// #region threshold

// thresholdCandidate sizes the decision-threshold delta from the mean
// shift of the drifted features, the available proxy for the output
// distribution shift when no prediction outputs are at hand.
func (g *Generator) thresholdCandidate(result classifier.DriftResult) Candidate {
	var shiftSum float64
	var count int
	for _, m := range result.PerFeature {
		if m.Drifted {
			shiftSum += m.MeanShift
			count++
		}
	}
	var delta float64
	if count > 0 {
		delta = g.config.ThresholdDeltaScale * (shiftSum / float64(count))
	}
	if delta > g.config.MaxThresholdDelta {
		delta = g.config.MaxThresholdDelta
	}
	return Candidate{
		ID:                     uuid.New().String(),
		Type:                   TypeThreshold,
		Priority:               PriorityPrimary,
		Params:                 ThresholdParams{Delta: delta},
		ExpectedDriftReduction: g.config.ThresholdReduction,
	}
}

// #endregion threshold

// #region describe

// Describe renders a short human-readable summary of a candidate, used in
// logs and rejection reasons.
func Describe(c Candidate) string {
	switch p := c.Params.(type) {
	case ClippingParams:
		return fmt.Sprintf("%s/%s clipping %d features", c.Priority, c.Type, len(p.Bounds))
	case ReweightingParams:
		return fmt.Sprintf("%s/%s reweighting %d features", c.Priority, c.Type, len(p.Weights))
	case NormalizationParams:
		return fmt.Sprintf("%s/%s renormalizing %d features", c.Priority, c.Type, len(p.Targets))
	case ThresholdParams:
		return fmt.Sprintf("%s/%s threshold delta %+.4f", c.Priority, c.Type, p.Delta)
	case ModelUpdateParams:
		return fmt.Sprintf("%s/%s model update: %s", c.Priority, c.Type, p.Note)
	default:
		return string(c.Type)
	}
}

// #endregion describe
