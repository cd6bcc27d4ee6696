package classifier

// #region imports
import (
	"math"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/analyzer"
)

// #endregion

// #region classifier

// Classifier aggregates per-feature divergence metrics into an overall
// drift score and a drift-type classification.
type Classifier struct {
	config Config
}

// NewClassifier creates a classifier with the given configuration.
func NewClassifier(config Config) *Classifier {
	return &Classifier{config: config}
}

// #endregion classifier

// #region classify

// Classify produces a DriftResult from per-feature metrics. weights are
// optional per-feature occurrence weights; nil means uniform. Rules are
// evaluated in order, first match wins.
func (c *Classifier) Classify(metrics []analyzer.FeatureDivergenceMetric, weights []float64) DriftResult {
	n := len(metrics)
	result := DriftResult{PerFeature: metrics}
	if n == 0 {
		result.Type = DriftCovariate
		return result
	}

	var drifted []int
	for _, m := range metrics {
		if m.Drifted {
			drifted = append(drifted, m.FeatureIndex)
		}
	}
	result.DriftedFeatures = drifted

	result.OverallScore = c.overallScore(metrics, weights)
	result.IsDriftDetected = result.OverallScore > c.config.DriftThreshold
	result.Type = c.driftType(metrics, len(drifted), n)
	return result
}

// #endregion classify

// #region overall-score

// overallScore is the weighted mean of saturated per-feature PSI values,
// each normalized to [0,1] by min(1, psi/saturation).
func (c *Classifier) overallScore(metrics []analyzer.FeatureDivergenceMetric, weights []float64) float64 {
	sat := c.config.PSISaturation
	if sat <= 0 {
		sat = 1
	}
	var sum, weightSum float64
	for i, m := range metrics {
		w := 1.0
		if len(weights) == len(metrics) && weights[i] > 0 {
			w = weights[i]
		}
		sum += w * math.Min(1, m.PSI/sat)
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}
	return sum / weightSum
}

// #endregion overall-score

// #region drift-type

func (c *Classifier) driftType(metrics []analyzer.FeatureDivergenceMetric, driftedCount, n int) DriftType {
	ratio := float64(driftedCount) / float64(n)

	// Rule 1: few localized features → prior drift.
	if ratio < c.config.PriorMaxRatio {
		return DriftPrior
	}

	// Rule 2: mid-range ratio with an inconsistent PSI pattern, or shape
	// change dominating location change → concept drift.
	if ratio < c.config.ConceptMaxRatio {
		if psiSpread(metrics) > c.config.PSISpreadCut {
			return DriftConcept
		}
		if shapeOverLocation(metrics) > c.config.ShapeLocationCut {
			return DriftConcept
		}
	}

	// Rule 3: broad consistent shift, or fall-through from rule 2.
	return DriftCovariate
}

// psiSpread is the coefficient of variation of the per-feature PSI values.
func psiSpread(metrics []analyzer.FeatureDivergenceMetric) float64 {
	var sum float64
	for _, m := range metrics {
		sum += m.PSI
	}
	mean := sum / float64(len(metrics))
	if mean == 0 {
		return 0
	}
	var variance float64
	for _, m := range metrics {
		d := m.PSI - mean
		variance += d * d
	}
	variance /= float64(len(metrics))
	return math.Sqrt(variance) / mean
}

// shapeOverLocation is the ratio of average std shift to average mean
// shift across drifted features (all features if none drifted).
func shapeOverLocation(metrics []analyzer.FeatureDivergenceMetric) float64 {
	var meanSum, stdSum float64
	var count int
	for _, m := range metrics {
		if m.Drifted {
			meanSum += m.MeanShift
			stdSum += m.StdShift
			count++
		}
	}
	if count == 0 {
		for _, m := range metrics {
			meanSum += m.MeanShift
			stdSum += m.StdShift
		}
		count = len(metrics)
	}
	avgMean := meanSum / float64(count)
	avgStd := stdSum / float64(count)
	return avgStd / (avgMean + 1e-8)
}

// #endregion drift-type
