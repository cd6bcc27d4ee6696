package analyzer

// #region imports
import "fmt"

// #endregion

// #region metric

// FeatureDivergenceMetric holds the divergence statistics for one feature.
// Recomputed on every analysis call, never persisted on its own.
type FeatureDivergenceMetric struct {
	FeatureIndex int
	PSI          float64 // Population Stability Index, >= 0
	KSStatistic  float64 // max ECDF distance, [0, 1]
	PValue       float64 // asymptotic KS p-value, [0, 1]
	MeanShift    float64 // |mean_cur - mean_ref| / (std_ref + eps)
	StdShift     float64 // |std_cur - std_ref| / (std_ref + eps)
	Drifted      bool    // PSI or KS threshold crossed
}

// #endregion metric

// #region config

// Config holds thresholds and knobs for divergence analysis.
type Config struct {
	Bins            int     // PSI histogram bins
	MinSamples      int     // minimum sample count per matrix
	PSIThreshold    float64 // per-feature drift cut on PSI
	KSThreshold     float64 // per-feature drift cut on the KS statistic
	PValueThreshold float64 // KS significance cut
	BinFloor        float64 // occupancy floor substituted for empty bins

	// BestEffort relaxes the MinSamples check down to 2 samples. Small-
	// dataset validation paths opt in explicitly; the default strict mode
	// returns InsufficientDataError instead of silently approximating.
	BestEffort bool
}

// DefaultConfig returns the standard analysis thresholds.
func DefaultConfig() Config {
	return Config{
		Bins:            10,
		MinSamples:      20,
		PSIThreshold:    0.2,
		KSThreshold:     0.1,
		PValueThreshold: 0.05,
		BinFloor:        1e-4,
	}
}

// #endregion config

// #region errors

// IncompatibleSchemaError reports a feature-count mismatch between the
// reference and current matrices, or an empty matrix.
type IncompatibleSchemaError struct {
	RefFeatures int
	CurFeatures int
}

func (e *IncompatibleSchemaError) Error() string {
	return fmt.Sprintf("incompatible schema: reference has %d features, current has %d",
		e.RefFeatures, e.CurFeatures)
}

// InsufficientDataError reports a sample count below the configured minimum.
type InsufficientDataError struct {
	Matrix  string // "reference" | "current"
	Samples int
	Min     int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %s matrix has %d samples, minimum is %d",
		e.Matrix, e.Samples, e.Min)
}

// CorruptDataError reports a NaN or Inf entry. Corrupt values are never
// coerced to zero.
type CorruptDataError struct {
	Matrix string // "reference" | "current"
	Row    int
	Col    int
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt data: non-finite value in %s matrix at sample %d, feature %d",
		e.Matrix, e.Row, e.Col)
}

// #endregion errors
