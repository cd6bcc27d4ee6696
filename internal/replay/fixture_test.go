package replay

import (
	"path/filepath"
	"testing"
)

func TestFixtureRoundTrip(t *testing.T) {
	enabled := false
	psi := 0.35
	f := &Fixture{
		Description: "shifted window",
		ModelID:     "fraud-v2",
		Reference:   [][]float64{{0.1}, {0.2}, {0.3}},
		Windows: []FixtureWindow{
			{WindowID: "w1", Rows: [][]float64{{3.1}, {3.2}}},
		},
		ExpectedResults: []FixtureExpectedResult{
			{WindowID: "w1", Action: "disabled"},
		},
	}
	f.Config.Enabled = &enabled
	f.Config.Analyzer.PSIThreshold = &psi

	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := SaveFixture(path, f); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ModelID != "fraud-v2" {
		t.Errorf("model id = %q", loaded.ModelID)
	}
	if len(loaded.Windows) != 1 || loaded.Windows[0].Rows[1][0] != 3.2 {
		t.Errorf("windows lost: %+v", loaded.Windows)
	}
	if loaded.Config.Enabled == nil || *loaded.Config.Enabled {
		t.Error("enabled override lost")
	}
	if loaded.Config.Analyzer.PSIThreshold == nil || *loaded.Config.Analyzer.PSIThreshold != 0.35 {
		t.Error("psi threshold override lost")
	}
}

func TestLoadFixtureDefaultModelID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := SaveFixture(path, &Fixture{Reference: [][]float64{{1}}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ModelID != "replay" {
		t.Errorf("default model id = %q", loaded.ModelID)
	}
}

func TestLoadFixtureMissingFile(t *testing.T) {
	if _, err := LoadFixture(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error")
	}
}

func TestToConfigOverrides(t *testing.T) {
	var fc FixtureConfig
	drift := 0.4
	fc.Classifier.DriftThreshold = &drift

	cfg := fc.ToConfig()
	if cfg.Classifier.DriftThreshold != 0.4 {
		t.Errorf("drift threshold = %f", cfg.Classifier.DriftThreshold)
	}
	// untouched settings keep their defaults
	if cfg.Analyzer.PSIThreshold != 0.2 {
		t.Errorf("psi threshold = %f", cfg.Analyzer.PSIThreshold)
	}
	if !cfg.Enabled {
		t.Error("enabled should default true")
	}
	if cfg.Validator.Classifier.DriftThreshold != 0.4 {
		t.Error("override not propagated into validator")
	}
}
