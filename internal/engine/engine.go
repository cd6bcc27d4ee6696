package engine

// #region imports
import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/matrix"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/patch"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/validator"
)

// #endregion

// #region engine

// Engine owns the active preprocessing ruleset per model. It is the sole
// mutator of rulesets; apply and rollback for one model are mutually
// exclusive, transforms read a consistent snapshot. Different models never
// contend.
type Engine struct {
	repo Repository // nil = in-memory only

	mu     sync.Mutex
	models map[string]*modelEntry
}

type modelEntry struct {
	mu    sync.RWMutex
	state ModelState
}

// NewEngine creates an engine backed by the given repository. repo may be
// nil for ephemeral use (tests, replay).
func NewEngine(repo Repository) *Engine {
	return &Engine{
		repo:   repo,
		models: make(map[string]*modelEntry),
	}
}

// #endregion engine

// #region entry

// entry returns the per-model slot, loading persisted state on first use.
func (e *Engine) entry(modelID string) (*modelEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ent, ok := e.models[modelID]; ok {
		return ent, nil
	}

	ent := &modelEntry{state: ModelState{Active: patch.NewRuleSet(modelID)}}
	if e.repo != nil {
		state, ok, err := e.repo.Load(modelID)
		if err != nil {
			return nil, fmt.Errorf("load ruleset for %s: %w", modelID, err)
		}
		if ok {
			ent.state = state
		}
	}
	e.models[modelID] = ent
	return ent, nil
}

// #endregion entry

// #region apply

// Apply composes an accepted candidate into the model's active ruleset,
// archives the displaced version as the sole rollback target, and records
// the applied patch.
func (e *Engine) Apply(modelID string, c patch.Candidate, vr validator.Result) (patch.Applied, error) {
	if !vr.Accepted {
		return patch.Applied{}, fmt.Errorf("apply %s: candidate %s was not accepted", modelID, c.ID)
	}
	ent, err := e.entry(modelID)
	if err != nil {
		return patch.Applied{}, err
	}

	ent.mu.Lock()
	defer ent.mu.Unlock()

	prev := ent.state.Active
	ent.state.Previous = &prev
	ent.state.Active = prev.Compose(c)

	applied := patch.Applied{
		ID:             c.ID,
		Type:           c.Type,
		Priority:       c.Priority,
		Params:         c.Params,
		AppliedAt:      time.Now().UTC(),
		Approximate:    vr.Approximate,
		SafetyScore:    vr.SafetyScore,
		DriftReduction: vr.MeasuredDriftReduction,
	}
	ent.state.Patches = append(ent.state.Patches, applied)

	if err := e.persist(modelID, ent); err != nil {
		return patch.Applied{}, err
	}
	log.Printf("[ENGINE] apply model=%s %s version=%s", modelID, patch.Describe(c), ent.state.Active.Version)
	return applied, nil
}

// #endregion apply

// #region rollback

// Rollback restores the archived prior ruleset. It fails with
// RollbackError when no archive exists: before any apply, or when called
// twice in a row.
func (e *Engine) Rollback(modelID string) error {
	ent, err := e.entry(modelID)
	if err != nil {
		return err
	}

	ent.mu.Lock()
	defer ent.mu.Unlock()

	if ent.state.Previous == nil {
		return &RollbackError{ModelID: modelID}
	}
	ent.state.Active = *ent.state.Previous
	ent.state.Previous = nil

	now := time.Now().UTC()
	for i := len(ent.state.Patches) - 1; i >= 0; i-- {
		if ent.state.Patches[i].RolledBackAt == nil {
			ent.state.Patches[i].RolledBackAt = &now
			break
		}
	}

	if err := e.persist(modelID, ent); err != nil {
		return err
	}
	log.Printf("[ENGINE] rollback model=%s → version=%s", modelID, ent.state.Active.Version)
	return nil
}

// #endregion rollback

// #region transform

// Transform applies the model's active ruleset to a matrix. Pure with
// respect to engine state; a model with no patches passes data through
// untouched.
func (e *Engine) Transform(modelID string, m matrix.Matrix) (matrix.Matrix, error) {
	rs, err := e.ActiveRuleSet(modelID)
	if err != nil {
		return nil, err
	}
	if rs.Empty() {
		return m.Clone(), nil
	}
	return rs.Apply(m), nil
}

// ActiveRuleSet returns a snapshot of the model's active ruleset.
func (e *Engine) ActiveRuleSet(modelID string) (patch.RuleSet, error) {
	ent, err := e.entry(modelID)
	if err != nil {
		return patch.RuleSet{}, err
	}
	ent.mu.RLock()
	defer ent.mu.RUnlock()
	return ent.state.Active, nil
}

// AdjustedThreshold applies the model's threshold stage to a base
// decision threshold.
func (e *Engine) AdjustedThreshold(modelID string, base float64) (float64, error) {
	rs, err := e.ActiveRuleSet(modelID)
	if err != nil {
		return base, err
	}
	return rs.AdjustedThreshold(base), nil
}

// AppliedPatches returns a copy of the model's applied-patch log.
func (e *Engine) AppliedPatches(modelID string) ([]patch.Applied, error) {
	ent, err := e.entry(modelID)
	if err != nil {
		return nil, err
	}
	ent.mu.RLock()
	defer ent.mu.RUnlock()
	out := make([]patch.Applied, len(ent.state.Patches))
	copy(out, ent.state.Patches)
	return out, nil
}

// #endregion transform

// #region persist

func (e *Engine) persist(modelID string, ent *modelEntry) error {
	if e.repo == nil {
		return nil
	}
	if err := e.repo.Save(modelID, ent.state); err != nil {
		return fmt.Errorf("persist ruleset for %s: %w", modelID, err)
	}
	return nil
}

// #endregion persist
