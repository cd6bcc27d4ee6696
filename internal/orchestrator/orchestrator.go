package orchestrator

// #region imports
import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/analyzer"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/classifier"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/config"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/engine"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/logging"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/matrix"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/patch"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/store"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/validator"
)

// #endregion

// #region orchestrator-struct

// Orchestrator is the top-level coordinator for drift analysis, candidate
// generation, validation, and patch application.
type Orchestrator struct {
	cfg        config.Config
	analyzer   *analyzer.Analyzer
	classifier *classifier.Classifier
	generator  *patch.Generator
	validator  *validator.Validator
	engine     *engine.Engine
	memory     *PatchMemory
	db         *sql.DB // provenance sink, nil when running without a store
	enabled    bool
}

// #endregion

// #region constructor

// NewOrchestrator creates a fully wired orchestrator. st may be nil for
// ephemeral runs (replay, tests); patches then live only in memory and no
// provenance is written. predictor may be nil; validation degrades to
// drift-only measurements.
func NewOrchestrator(cfg config.Config, st *store.Store, predictor validator.Predictor) (*Orchestrator, error) {
	o := &Orchestrator{
		cfg:        cfg,
		analyzer:   analyzer.NewAnalyzer(cfg.Analyzer),
		classifier: classifier.NewClassifier(cfg.Classifier),
		generator:  patch.NewGenerator(cfg.Generator),
		validator:  validator.NewValidator(cfg.Validator, predictor),
		enabled:    cfg.Enabled,
	}
	if st != nil {
		o.engine = engine.NewEngine(st)
		o.db = st.DB()
		mem, err := NewPatchMemory(st.DB())
		if err != nil {
			return nil, fmt.Errorf("init patch memory: %w", err)
		}
		o.memory = mem
	} else {
		o.engine = engine.NewEngine(nil)
	}
	return o, nil
}

// Enabled returns whether the orchestrator applies patches.
func (o *Orchestrator) Enabled() bool {
	return o.enabled
}

// Engine exposes the patch engine for serving-path callers (transform,
// adjusted threshold, manual rollback).
func (o *Orchestrator) Engine() *engine.Engine {
	return o.engine
}

// #endregion

// #region run-cycle

// RunCycle executes one full patch cycle for a model: analyze the current
// window against the reference, classify, generate and validate candidates,
// apply every accepted candidate, and re-measure. A composition that makes
// drift worse is rolled back before returning.
func (o *Orchestrator) RunCycle(ctx context.Context, modelID string, reference, current matrix.Matrix) (CycleResult, error) {
	start := time.Now()
	res := CycleResult{ModelID: modelID}

	// The model sees data through its active ruleset; analyze what it sees.
	seen, err := o.engine.Transform(modelID, current)
	if err != nil {
		return CycleResult{}, err
	}

	metrics, err := o.analyzer.Analyze(reference, seen)
	if err != nil {
		return CycleResult{}, fmt.Errorf("analyze %s: %w", modelID, err)
	}
	res.Drift = o.classifier.Classify(metrics, nil)

	log.Printf("[CYCLE] model=%s score=%.3f type=%s drifted=%d/%d",
		modelID, res.Drift.OverallScore, res.Drift.Type,
		len(res.Drift.DriftedFeatures), len(metrics))

	if !res.Drift.IsDriftDetected {
		res.Action = ActionNoDrift
		res.Elapsed = time.Since(start)
		o.logCycle(res, "drift below threshold")
		return res, nil
	}

	res.Candidates = o.generator.Generate(res.Drift, reference, seen)
	if o.memory != nil {
		preferred, score, err := o.memory.BestPatchType(res.Drift.Type)
		if err != nil {
			log.Printf("[CYCLE] memory lookup failed: %v", err)
		} else if preferred != "" {
			log.Printf("[CYCLE] memory prefers %s (weighted reduction %.2f)", preferred, score)
			res.Candidates = Prefer(res.Candidates, preferred)
		}
	}
	if len(res.Candidates) == 0 {
		res.Action = ActionNoCandidates
		res.Elapsed = time.Since(start)
		o.logCycle(res, "no candidate for drift pattern")
		return res, nil
	}

	res.Validations = o.validator.Validate(ctx, modelID, reference, seen, res.Candidates)
	o.recordOutcomes(modelID, res.Drift.Type, res.Candidates, res.Validations)

	accepted := make([]int, 0, len(res.Validations))
	for i, vr := range res.Validations {
		if vr.Accepted {
			accepted = append(accepted, i)
		}
	}
	if len(accepted) == 0 {
		res.Action = ActionRejected
		res.Elapsed = time.Since(start)
		o.logCycle(res, res.Validations[0].RejectionReason)
		return res, nil
	}

	if !o.enabled {
		res.Action = ActionDisabled
		res.Elapsed = time.Since(start)
		for _, i := range accepted {
			log.Printf("[CYCLE] model=%s disabled, would apply %s",
				modelID, patch.Describe(res.Candidates[i]))
		}
		o.logCycle(res, "engine disabled")
		return res, nil
	}

	for _, i := range accepted {
		applied, err := o.engine.Apply(modelID, res.Candidates[i], res.Validations[i])
		if err != nil {
			return CycleResult{}, fmt.Errorf("apply %s: %w", modelID, err)
		}
		res.Applied = append(res.Applied, applied)
	}

	// Re-measure the full current window under the new ruleset.
	res.PostDriftScore, err = o.remeasure(modelID, reference, current)
	if err != nil {
		log.Printf("[CYCLE] re-measure failed: %v", err)
		res.PostDriftScore = res.Drift.OverallScore
	}
	res.ReductionPercent = reductionPercent(res.Drift.OverallScore, res.PostDriftScore)

	if res.PostDriftScore > res.Drift.OverallScore {
		// Rollback depth is one: only the most recent composition reverts.
		if err := o.engine.Rollback(modelID); err != nil {
			return CycleResult{}, fmt.Errorf("rollback %s: %w", modelID, err)
		}
		res.Action = ActionRolledBack
		res.Elapsed = time.Since(start)
		o.logCycle(res, fmt.Sprintf("post-patch score %.3f exceeds pre-patch %.3f",
			res.PostDriftScore, res.Drift.OverallScore))
		return res, nil
	}

	res.Action = ActionPatched
	res.Elapsed = time.Since(start)
	o.logCycle(res, "")
	return res, nil
}

// reductionPercent is guarded against a zero pre-patch score.
func reductionPercent(orig, final float64) float64 {
	if orig == 0 {
		return 0
	}
	return (orig - final) / orig
}

func (o *Orchestrator) remeasure(modelID string, reference, current matrix.Matrix) (float64, error) {
	seen, err := o.engine.Transform(modelID, current)
	if err != nil {
		return 0, err
	}
	metrics, err := o.analyzer.Analyze(reference, seen)
	if err != nil {
		return 0, err
	}
	return o.classifier.Classify(metrics, nil).OverallScore, nil
}

// #endregion

// #region run-all

// ModelBatch is one model's analysis input for a multi-model run.
type ModelBatch struct {
	ModelID   string
	Reference matrix.Matrix
	Current   matrix.Matrix
}

// RunAll runs one cycle per model concurrently. Models are independent;
// the first hard error cancels the remaining cycles.
func (o *Orchestrator) RunAll(ctx context.Context, batches []ModelBatch) ([]CycleResult, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]CycleResult, len(batches))
	for i, b := range batches {
		i, b := i, b
		g.Go(func() error {
			res, err := o.RunCycle(ctx, b.ModelID, b.Reference, b.Current)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// #endregion

// #region record-outcomes

func (o *Orchestrator) recordOutcomes(modelID string, driftType classifier.DriftType, candidates []patch.Candidate, results []validator.Result) {
	if o.memory == nil {
		return
	}
	for i, vr := range results {
		rec := OutcomeRecord{
			ModelID:        modelID,
			DriftType:      driftType,
			PatchType:      candidates[i].Type,
			Accepted:       vr.Accepted,
			DriftReduction: vr.MeasuredDriftReduction,
			CreatedAt:      time.Now().UTC(),
		}
		if err := o.memory.RecordOutcome(rec); err != nil {
			log.Printf("[CYCLE] failed to record outcome: %v", err)
		}
	}
}

// #endregion

// #region provenance

func (o *Orchestrator) logCycle(res CycleResult, reason string) {
	if o.db == nil {
		return
	}

	rec := logging.CycleRecord{
		ModelID:      res.ModelID,
		DriftScore:   res.Drift.OverallScore,
		DriftType:    string(res.Drift.Type),
		DriftedCount: len(res.Drift.DriftedFeatures),
		FeatureCount: len(res.Drift.PerFeature),
		Thresholds: logging.CycleThresholds{
			PSIThreshold:    o.cfg.Analyzer.PSIThreshold,
			KSThreshold:     o.cfg.Analyzer.KSThreshold,
			DriftThreshold:  o.cfg.Classifier.DriftThreshold,
			SafetyAccept:    o.cfg.Validator.SafetyAccept,
			ReductionAccept: o.cfg.Validator.ReductionAccept,
		},
		Action:         string(res.Action),
		PostDriftScore: res.PostDriftScore,
	}
	for i, vr := range res.Validations {
		rec.Candidates = append(rec.Candidates, logging.CycleCandidate{
			ID:             res.Candidates[i].ID,
			Type:           string(res.Candidates[i].Type),
			Priority:       string(res.Candidates[i].Priority),
			SafetyScore:    vr.SafetyScore,
			DriftReduction: vr.MeasuredDriftReduction,
			Accepted:       vr.Accepted,
			Approximate:    vr.Approximate,
			Reason:         vr.RejectionReason,
		})
	}
	for _, ap := range res.Applied {
		rec.AppliedPatchIDs = append(rec.AppliedPatchIDs, ap.ID)
	}
	rec.ReductionPercent = res.ReductionPercent

	detailsJSON, _ := json.Marshal(rec)

	versionID := ""
	if rs, err := o.engine.ActiveRuleSet(res.ModelID); err == nil {
		versionID = rs.Version
	}

	err := logging.LogDecision(o.db, logging.ProvenanceEntry{
		ModelID:     res.ModelID,
		VersionID:   versionID,
		Stage:       "cycle",
		Decision:    decisionFor(res.Action),
		Reason:      reason,
		DetailsJSON: string(detailsJSON),
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		log.Printf("[CYCLE] provenance logging failed: %v", err)
	}
}

func decisionFor(a Action) string {
	switch a {
	case ActionPatched:
		return "apply"
	case ActionRolledBack:
		return "rollback"
	case ActionRejected:
		return "reject"
	default:
		return "no_op"
	}
}

// #endregion
