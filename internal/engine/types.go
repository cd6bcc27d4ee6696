package engine

// #region imports
import (
	"fmt"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/patch"
)

// #endregion

// #region model-state

// ModelState is everything the engine tracks per model: the single active
// ruleset, at most one archived predecessor, and the applied-patch log.
// Rollback depth is exactly one; a new apply overwrites the archive slot.
type ModelState struct {
	Active   patch.RuleSet   `json:"active"`
	Previous *patch.RuleSet  `json:"previous,omitempty"`
	Patches  []patch.Applied `json:"patches"`
}

// #endregion model-state

// #region repository

// Repository is the narrow persistence contract the engine calls through.
// The engine does not define the storage format.
type Repository interface {
	Save(modelID string, state ModelState) error
	// Load returns ok=false when the model has no persisted state yet.
	Load(modelID string) (ModelState, bool, error)
}

// #endregion repository

// #region rollback-error

// RollbackError reports a rollback with no archived ruleset to restore.
type RollbackError struct {
	ModelID string
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("rollback: model %s has no prior ruleset version", e.ModelID)
}

// #endregion rollback-error
