package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/config"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/matrix"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: one
// reference window, a sequence of observation windows, and the expected
// action per window.
type Fixture struct {
	Description     string                  `json:"description"`
	ModelID         string                  `json:"model_id"`
	Reference       [][]float64             `json:"reference"`
	Config          FixtureConfig           `json:"config"`
	Windows         []FixtureWindow         `json:"windows"`
	ExpectedResults []FixtureExpectedResult `json:"expected_results"`
}

// FixtureWindow is one recorded observation window.
type FixtureWindow struct {
	WindowID string      `json:"window_id"`
	Rows     [][]float64 `json:"rows"`
}

// FixtureExpectedResult captures the expected action per window.
type FixtureExpectedResult struct {
	WindowID string `json:"window_id"`
	Action   string `json:"action"`
}

// FixtureConfig overrides the thresholds active at record time. Pointer
// fields distinguish "absent" from an explicit zero.
type FixtureConfig struct {
	Enabled *bool `json:"enabled,omitempty"`

	Analyzer struct {
		Bins            *int     `json:"bins,omitempty"`
		MinSamples      *int     `json:"min_samples,omitempty"`
		PSIThreshold    *float64 `json:"psi_threshold,omitempty"`
		KSThreshold     *float64 `json:"ks_threshold,omitempty"`
		PValueThreshold *float64 `json:"p_value_threshold,omitempty"`
	} `json:"analyzer"`

	Classifier struct {
		DriftThreshold  *float64 `json:"drift_threshold,omitempty"`
		PriorMaxRatio   *float64 `json:"prior_max_ratio,omitempty"`
		ConceptMaxRatio *float64 `json:"concept_max_ratio,omitempty"`
	} `json:"classifier"`

	Validator struct {
		SafetyAccept    *float64 `json:"safety_accept,omitempty"`
		ReductionAccept *float64 `json:"reduction_accept,omitempty"`
	} `json:"validator"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if f.ModelID == "" {
		f.ModelID = "replay"
	}
	return &f, nil
}

// SaveFixture writes a fixture as indented JSON, the format recorded
// cycles are exported in.
func SaveFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// ReferenceMatrix returns the fixture's reference window as a matrix.
func (f *Fixture) ReferenceMatrix() matrix.Matrix {
	return matrix.Matrix(f.Reference)
}

// Matrix returns the window's rows as a matrix.
func (w *FixtureWindow) Matrix() matrix.Matrix {
	return matrix.Matrix(w.Rows)
}

// ToConfig builds the effective engine configuration: package defaults
// overlaid with the fixture's recorded thresholds.
func (fc *FixtureConfig) ToConfig() config.Config {
	cfg := config.Default()

	if fc.Enabled != nil {
		cfg.Enabled = *fc.Enabled
	}
	if fc.Analyzer.Bins != nil {
		cfg.Analyzer.Bins = *fc.Analyzer.Bins
	}
	if fc.Analyzer.MinSamples != nil {
		cfg.Analyzer.MinSamples = *fc.Analyzer.MinSamples
	}
	if fc.Analyzer.PSIThreshold != nil {
		cfg.Analyzer.PSIThreshold = *fc.Analyzer.PSIThreshold
	}
	if fc.Analyzer.KSThreshold != nil {
		cfg.Analyzer.KSThreshold = *fc.Analyzer.KSThreshold
	}
	if fc.Analyzer.PValueThreshold != nil {
		cfg.Analyzer.PValueThreshold = *fc.Analyzer.PValueThreshold
	}
	if fc.Classifier.DriftThreshold != nil {
		cfg.Classifier.DriftThreshold = *fc.Classifier.DriftThreshold
	}
	if fc.Classifier.PriorMaxRatio != nil {
		cfg.Classifier.PriorMaxRatio = *fc.Classifier.PriorMaxRatio
	}
	if fc.Classifier.ConceptMaxRatio != nil {
		cfg.Classifier.ConceptMaxRatio = *fc.Classifier.ConceptMaxRatio
	}
	if fc.Validator.SafetyAccept != nil {
		cfg.Validator.SafetyAccept = *fc.Validator.SafetyAccept
	}
	if fc.Validator.ReductionAccept != nil {
		cfg.Validator.ReductionAccept = *fc.Validator.ReductionAccept
	}

	cfg.Validator.Analyzer = cfg.Analyzer
	cfg.Validator.Classifier = cfg.Classifier
	return cfg
}

// #endregion fixture-loader
