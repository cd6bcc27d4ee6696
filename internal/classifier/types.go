package classifier

// #region imports
import "github.com/danielpatrickdp/drift-patch/go-engine/internal/analyzer"

// #endregion

// #region drift-type

// DriftType classifies which distribution changed.
type DriftType string

const (
	DriftCovariate DriftType = "covariate" // P(X) changed
	DriftConcept   DriftType = "concept"   // P(Y|X) changed
	DriftPrior     DriftType = "prior"     // P(Y) changed
)

// #endregion drift-type

// #region drift-result

// DriftResult is the aggregated output of one analysis run. Immutable;
// produced fresh each run.
type DriftResult struct {
	OverallScore    float64 // [0, 1]
	IsDriftDetected bool
	Type            DriftType
	PerFeature      []analyzer.FeatureDivergenceMetric
	DriftedFeatures []int // indices of drifted features, analysis order
}

// #endregion drift-result

// #region config

// Config holds the classification rule cutoffs. These are empirically
// chosen, so every cutoff is tunable rather than baked in.
type Config struct {
	DriftThreshold   float64 // overall score above this → drift detected
	PSISaturation    float64 // psi normalization: min(1, psi/saturation)
	PriorMaxRatio    float64 // drifted ratio below this → prior drift
	ConceptMaxRatio  float64 // drifted ratio below this may be concept drift
	PSISpreadCut     float64 // PSI coefficient of variation above this → inconsistent pattern
	ShapeLocationCut float64 // avg std shift / avg mean shift above this → shape change dominates
}

// DefaultConfig returns the standard classification cutoffs.
func DefaultConfig() Config {
	return Config{
		DriftThreshold:   0.2,
		PSISaturation:    1.0,
		PriorMaxRatio:    0.15,
		ConceptMaxRatio:  0.60,
		PSISpreadCut:     0.6,
		ShapeLocationCut: 1.5,
	}
}

// #endregion config
