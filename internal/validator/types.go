package validator

// #region imports
import (
	"context"
	"time"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/analyzer"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/classifier"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/matrix"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/patch"
)

// #endregion

// #region predictor

// Predictor is the optional inference collaborator. nil degrades
// validation to drift-only; accuracy deltas stay neutral.
type Predictor interface {
	Predict(ctx context.Context, modelID string, m matrix.Matrix) (matrix.Matrix, error)
}

// #endregion predictor

// #region veto

// VetoType enumerates hard veto categories.
type VetoType string

const (
	VetoCorruptOutput      VetoType = "corrupt_output"
	VetoAccuracyBound      VetoType = "accuracy_bound"
	VetoParameterMagnitude VetoType = "parameter_magnitude"
	VetoUnsupportedType    VetoType = "unsupported_type"
)

// VetoSignal represents a detected hard veto condition.
type VetoSignal struct {
	Type   VetoType
	Reason string
}

// #endregion veto

// #region result

// Result is the validation outcome for one candidate. Rejection is a
// normal value, never an error.
type Result struct {
	CandidateID            string
	CandidateType          patch.Type
	SafetyScore            float64 // [0, 1]
	AccuracyDelta          float64 // signed positive-rate shift, 0 when no predictor
	MeasuredDriftReduction float64
	Accepted               bool
	Approximate            bool // fast-track estimate, not a held-out measurement
	Warning                bool // accepted inside the borderline band
	RejectionReason        string
	Vetoes                 []VetoSignal
}

// #endregion result

// #region split

// Split describes how the current matrix divides into a held-out
// validation subset and the application subset.
type Split struct {
	ValidationStart int // rows [ValidationStart, n) validate; [0, ValidationStart) apply
	FastTrack       bool
}

// #endregion split

// #region config

// Config holds the split tiers, acceptance thresholds, and safety weights.
type Config struct {
	LargeN             int     // n at or above this uses the large tier
	LargeSplitFraction float64 // large tier held-out fraction
	LargeMinSamples    int     // large tier minimum held-out rows
	MidN               int     // n at or above this (below LargeN) uses the mid tier
	MidSplitFraction   float64 // mid tier held-out fraction
	MidMinSamples      int     // mid tier minimum held-out rows

	SafetyAccept        float64 // accept when safety exceeds this
	SafetyBorderline    float64 // warn-accept band floor for safety
	ReductionAccept     float64 // accept when measured reduction exceeds this
	ReductionBorderline float64 // warn-accept band floor for reduction

	MaxAccuracyDelta    float64 // hard bound on |positive-rate shift|
	MagnitudeSaturation float64 // parameter change (in reference units) that zeroes safety
	ThresholdDeltaUnit  float64 // threshold delta equal to one reference unit of change
	BaseThreshold       float64 // decision threshold for output-side measurements
	PredictTimeout      time.Duration

	Analyzer   analyzer.Config
	Classifier classifier.Config
}

// DefaultConfig returns the standard validation thresholds.
func DefaultConfig() Config {
	return Config{
		LargeN:              100,
		LargeSplitFraction:  0.20,
		LargeMinSamples:     20,
		MidN:                50,
		MidSplitFraction:    0.10,
		MidMinSamples:       10,
		SafetyAccept:        0.4,
		SafetyBorderline:    0.3,
		ReductionAccept:     0.15,
		ReductionBorderline: 0.10,
		MaxAccuracyDelta:    0.10,
		MagnitudeSaturation: 4.0,
		ThresholdDeltaUnit:  0.1,
		BaseThreshold:       0.5,
		PredictTimeout:      10 * time.Second,
		Analyzer:            analyzer.DefaultConfig(),
		Classifier:          classifier.DefaultConfig(),
	}
}

// #endregion config
