package config

// #region imports
import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/analyzer"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/classifier"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/patch"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/validator"
)

// #endregion

// #region config

// Config is the full runtime configuration. Defaults come from each
// package, a YAML threshold file overrides them, and a handful of
// environment variables override the file.
type Config struct {
	// Enabled is the kill switch. When false the controller analyzes and
	// logs but never applies patches.
	Enabled bool

	DBPath        string
	InferenceAddr string
	BaseThreshold float64
	CycleInterval time.Duration
	Models        []string

	Analyzer   analyzer.Config
	Classifier classifier.Config
	Generator  patch.GeneratorConfig
	Validator  validator.Config
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Enabled:       true,
		DBPath:        "drift_patch.db",
		InferenceAddr: "localhost:50051",
		BaseThreshold: 0.5,
		CycleInterval: 5 * time.Minute,
		Analyzer:      analyzer.DefaultConfig(),
		Classifier:    classifier.DefaultConfig(),
		Generator:     patch.DefaultGeneratorConfig(),
		Validator:     validator.DefaultConfig(),
	}
}

// #endregion config

// #region file-schema

// fileConfig is the YAML threshold file. Pointer fields distinguish
// "absent" from an explicit zero.
type fileConfig struct {
	Enabled       *bool    `yaml:"enabled"`
	DBPath        string   `yaml:"db_path"`
	InferenceAddr string   `yaml:"inference_addr"`
	BaseThreshold *float64 `yaml:"base_threshold"`
	CycleInterval string   `yaml:"cycle_interval"`
	Models        []string `yaml:"models"`

	Analyzer struct {
		Bins            *int     `yaml:"bins"`
		MinSamples      *int     `yaml:"min_samples"`
		PSIThreshold    *float64 `yaml:"psi_threshold"`
		KSThreshold     *float64 `yaml:"ks_threshold"`
		PValueThreshold *float64 `yaml:"p_value_threshold"`
	} `yaml:"analyzer"`

	Classifier struct {
		DriftThreshold  *float64 `yaml:"drift_threshold"`
		PriorMaxRatio   *float64 `yaml:"prior_max_ratio"`
		ConceptMaxRatio *float64 `yaml:"concept_max_ratio"`
	} `yaml:"classifier"`

	Validator struct {
		SafetyAccept     *float64 `yaml:"safety_accept"`
		ReductionAccept  *float64 `yaml:"reduction_accept"`
		MaxAccuracyDelta *float64 `yaml:"max_accuracy_delta"`
		PredictTimeout   string   `yaml:"predict_timeout"`
	} `yaml:"validator"`
}

// #endregion file-schema

// #region load

// Load builds the configuration: defaults, then the YAML file at path if
// non-empty, then environment variables. Analyzer and classifier settings
// propagate into the validator's embedded copies.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)

	cfg.Validator.Analyzer = cfg.Analyzer
	cfg.Validator.Classifier = cfg.Classifier
	cfg.Validator.BaseThreshold = cfg.BaseThreshold
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Enabled != nil {
		cfg.Enabled = *fc.Enabled
	}
	if fc.DBPath != "" {
		cfg.DBPath = fc.DBPath
	}
	if fc.InferenceAddr != "" {
		cfg.InferenceAddr = fc.InferenceAddr
	}
	if fc.BaseThreshold != nil {
		cfg.BaseThreshold = *fc.BaseThreshold
	}
	if fc.CycleInterval != "" {
		d, err := time.ParseDuration(fc.CycleInterval)
		if err != nil {
			return fmt.Errorf("parse cycle_interval: %w", err)
		}
		cfg.CycleInterval = d
	}
	if len(fc.Models) > 0 {
		cfg.Models = fc.Models
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
	if fc.Validator.MaxAccuracyDelta != nil {
		cfg.Validator.MaxAccuracyDelta = *fc.Validator.MaxAccuracyDelta
	}
	if fc.Validator.PredictTimeout != "" {
		d, err := time.ParseDuration(fc.Validator.PredictTimeout)
		if err != nil {
			return fmt.Errorf("parse predict_timeout: %w", err)
		}
		cfg.Validator.PredictTimeout = d
	}
	return nil
}

// #endregion load

// #region env

func applyEnv(cfg *Config) {
	if v := os.Getenv("ENGINE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		}
	}
	if v := os.Getenv("ENGINE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("INFERENCE_ADDR"); v != "" {
		cfg.InferenceAddr = v
	}
}

// EnvOr returns the environment value for key, or fallback when unset.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion env
