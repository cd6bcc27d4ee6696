package orchestrator

// #region imports
import (
	"database/sql"
	"math"
	"time"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/classifier"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/patch"
)

// #endregion

// #region schema

const patchOutcomesSchema = `
CREATE TABLE IF NOT EXISTS patch_outcomes (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    model_id        TEXT NOT NULL,
    drift_type      TEXT NOT NULL,
    patch_type      TEXT NOT NULL,
    accepted        INTEGER NOT NULL DEFAULT 0,
    drift_reduction REAL NOT NULL DEFAULT 0,
    created_at      TEXT NOT NULL
);
`

const patchOutcomesIndex = `
CREATE INDEX IF NOT EXISTS idx_patch_outcomes_lookup
ON patch_outcomes(drift_type, patch_type);
`

// #endregion

// #region memory-struct

// PatchMemory persists patch outcomes in SQLite and queries decay-weighted
// results, so candidate ordering improves as evidence accumulates.
type PatchMemory struct {
	db *sql.DB
}

// NewPatchMemory initializes the patch_outcomes table and returns a PatchMemory.
func NewPatchMemory(db *sql.DB) (*PatchMemory, error) {
	if _, err := db.Exec(patchOutcomesSchema); err != nil {
		return nil, err
	}
	if _, err := db.Exec(patchOutcomesIndex); err != nil {
		return nil, err
	}
	return &PatchMemory{db: db}, nil
}

// #endregion

// #region record-outcome

// RecordOutcome persists a single patch outcome row.
func (m *PatchMemory) RecordOutcome(rec OutcomeRecord) error {
	accepted := 0
	if rec.Accepted {
		accepted = 1
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := m.db.Exec(`
		INSERT INTO patch_outcomes
		(model_id, drift_type, patch_type, accepted, drift_reduction, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ModelID,
		string(rec.DriftType),
		string(rec.PatchType),
		accepted,
		rec.DriftReduction,
		rec.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// #endregion

// #region best-patch-type

// BestPatchType returns the patch type with the highest decay-weighted
// drift reduction for the given drift type. Returns ("", 0, nil) if fewer
// than 3 accepted samples exist for every type.
func (m *PatchMemory) BestPatchType(driftType classifier.DriftType) (patch.Type, float64, error) {
	rows, err := m.db.Query(`
		SELECT patch_type, drift_reduction, created_at
		FROM patch_outcomes
		WHERE drift_type = ? AND accepted = 1`,
		string(driftType),
	)
	if err != nil {
		return "", 0, err
	}
	defer rows.Close()

	type typeAccum struct {
		weightedSum float64
		totalWeight float64
		count       int
	}

	now := time.Now()
	halfLife := 7.0 * 24.0 // 7 days in hours
	accum := make(map[patch.Type]*typeAccum)

	for rows.Next() {
		var pt string
		var reduction float64
		var createdAtStr string
		if err := rows.Scan(&pt, &reduction, &createdAtStr); err != nil {
			return "", 0, err
		}
		createdAt, err := time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			continue
		}
		ageHours := now.Sub(createdAt).Hours()
		weight := math.Exp(-ageHours / halfLife)

		patchType := patch.Type(pt)
		if _, ok := accum[patchType]; !ok {
			accum[patchType] = &typeAccum{}
		}
		accum[patchType].weightedSum += reduction * weight
		accum[patchType].totalWeight += weight
		accum[patchType].count++
	}
	if err := rows.Err(); err != nil {
		return "", 0, err
	}

	var bestType patch.Type
	var bestScore float64 = -1

	for pt, a := range accum {
		if a.count < 3 {
			continue
		}
		avg := a.weightedSum / a.totalWeight
		if avg > bestScore {
			bestScore = avg
			bestType = pt
		}
	}
	if bestType == "" {
		return "", 0, nil
	}
	return bestType, bestScore, nil
}

// #endregion

// #region prefer

// Prefer reorders candidates so those matching the preferred type come
// first, preserving relative order otherwise.
func Prefer(candidates []patch.Candidate, preferred patch.Type) []patch.Candidate {
	if preferred == "" {
		return candidates
	}
	out := make([]patch.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Type == preferred {
			out = append(out, c)
		}
	}
	for _, c := range candidates {
		if c.Type != preferred {
			out = append(out, c)
		}
	}
	return out
}

// #endregion
