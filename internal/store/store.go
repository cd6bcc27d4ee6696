package store

// #region imports
import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/engine"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/patch"
)

// #endregion

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS ruleset_versions (
	version_id    TEXT PRIMARY KEY,
	model_id      TEXT NOT NULL,
	ruleset_json  TEXT NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS active_ruleset (
	model_id            TEXT PRIMARY KEY,
	version_id          TEXT NOT NULL,
	previous_version_id TEXT,
	FOREIGN KEY (version_id) REFERENCES ruleset_versions(version_id),
	FOREIGN KEY (previous_version_id) REFERENCES ruleset_versions(version_id)
);

CREATE TABLE IF NOT EXISTS applied_patches (
	patch_id        TEXT PRIMARY KEY,
	model_id        TEXT NOT NULL,
	patch_type      TEXT NOT NULL,
	priority        TEXT,
	params_json     TEXT NOT NULL,
	applied_at      TEXT NOT NULL,
	rolled_back_at  TEXT,
	approximate     INTEGER NOT NULL DEFAULT 0,
	safety_score    REAL NOT NULL DEFAULT 0,
	drift_reduction REAL NOT NULL DEFAULT 0,
	seq             INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS provenance_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	model_id      TEXT NOT NULL,
	version_id    TEXT,
	stage         TEXT NOT NULL,
	decision      TEXT NOT NULL,
	reason        TEXT,
	details_json  TEXT,
	created_at    TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct

// Store persists rulesets, applied patches, outcomes, and provenance in
// SQLite. It implements engine.Repository.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion constructor

// #region save

// Save writes a model's full state: the active ruleset version, the
// archive pointer, and the applied-patch ledger. Atomic per call.
func (s *Store) Save(modelID string, state engine.ModelState) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := insertVersion(tx, state.Active); err != nil {
		return err
	}

	var prevPtr interface{}
	if state.Previous != nil {
		if err := insertVersion(tx, *state.Previous); err != nil {
			return err
		}
		prevPtr = state.Previous.Version
	}

	_, err = tx.Exec(
		`INSERT INTO active_ruleset (model_id, version_id, previous_version_id)
		 VALUES (?, ?, ?)
		 ON CONFLICT(model_id) DO UPDATE SET
		   version_id = excluded.version_id,
		   previous_version_id = excluded.previous_version_id`,
		modelID, state.Active.Version, prevPtr,
	)
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}

	for seq, p := range state.Patches {
		paramsJSON, err := patch.MarshalParams(p.Params)
		if err != nil {
			return fmt.Errorf("marshal patch params: %w", err)
		}
		var rolledBack interface{}
		if p.RolledBackAt != nil {
			rolledBack = p.RolledBackAt.Format(time.RFC3339Nano)
		}
		_, err = tx.Exec(
			`INSERT INTO applied_patches
			 (patch_id, model_id, patch_type, priority, params_json, applied_at,
			  rolled_back_at, approximate, safety_score, drift_reduction, seq)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(patch_id) DO UPDATE SET rolled_back_at = excluded.rolled_back_at`,
			p.ID, modelID, string(p.Type), string(p.Priority), string(paramsJSON),
			p.AppliedAt.Format(time.RFC3339Nano), rolledBack,
			boolInt(p.Approximate), p.SafetyScore, p.DriftReduction, seq,
		)
		if err != nil {
			return fmt.Errorf("insert patch %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

func insertVersion(tx *sql.Tx, rs patch.RuleSet) error {
	rsJSON, err := json.Marshal(rs)
	if err != nil {
		return fmt.Errorf("marshal ruleset: %w", err)
	}
	_, err = tx.Exec(
		`INSERT INTO ruleset_versions (version_id, model_id, ruleset_json, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(version_id) DO NOTHING`,
		rs.Version, rs.ModelID, string(rsJSON), rs.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert version %s: %w", rs.Version, err)
	}
	return nil
}

// #endregion save

// #region load

// Load reconstructs a model's state. ok is false when the model has never
// been saved.
func (s *Store) Load(modelID string) (engine.ModelState, bool, error) {
	var versionID string
	var prevID sql.NullString
	err := s.db.QueryRow(
		`SELECT version_id, previous_version_id FROM active_ruleset WHERE model_id = ?`,
		modelID,
	).Scan(&versionID, &prevID)
	if err == sql.ErrNoRows {
		return engine.ModelState{}, false, nil
	}
	if err != nil {
		return engine.ModelState{}, false, fmt.Errorf("get active for %s: %w", modelID, err)
	}

	var state engine.ModelState
	state.Active, err = s.getVersion(versionID)
	if err != nil {
		return engine.ModelState{}, false, err
	}
	if prevID.Valid {
		prev, err := s.getVersion(prevID.String)
		if err != nil {
			return engine.ModelState{}, false, err
		}
		state.Previous = &prev
	}

	state.Patches, err = s.listPatches(modelID)
	if err != nil {
		return engine.ModelState{}, false, err
	}
	return state, true, nil
}

func (s *Store) getVersion(id string) (patch.RuleSet, error) {
	var rsJSON string
	err := s.db.QueryRow(
		`SELECT ruleset_json FROM ruleset_versions WHERE version_id = ?`, id,
	).Scan(&rsJSON)
	if err != nil {
		return patch.RuleSet{}, fmt.Errorf("get version %s: %w", id, err)
	}
	var rs patch.RuleSet
	if err := json.Unmarshal([]byte(rsJSON), &rs); err != nil {
		return patch.RuleSet{}, fmt.Errorf("unmarshal ruleset %s: %w", id, err)
	}
	return rs, nil
}

func (s *Store) listPatches(modelID string) ([]patch.Applied, error) {
	rows, err := s.db.Query(
		`SELECT patch_id, patch_type, priority, params_json, applied_at,
		        rolled_back_at, approximate, safety_score, drift_reduction
		 FROM applied_patches WHERE model_id = ? ORDER BY seq ASC`, modelID,
	)
	if err != nil {
		return nil, fmt.Errorf("list patches: %w", err)
	}
	defer rows.Close()

	var patches []patch.Applied
	for rows.Next() {
		var p patch.Applied
		var typeStr, priorityStr, paramsJSON, appliedStr string
		var rolledBack sql.NullString
		var approximate int
		if err := rows.Scan(&p.ID, &typeStr, &priorityStr, &paramsJSON, &appliedStr,
			&rolledBack, &approximate, &p.SafetyScore, &p.DriftReduction); err != nil {
			return nil, fmt.Errorf("scan patch row: %w", err)
		}
		p.Type = patch.Type(typeStr)
		p.Priority = patch.Priority(priorityStr)
		p.Params, err = patch.UnmarshalParams(p.Type, []byte(paramsJSON))
		if err != nil {
			return nil, err
		}
		p.AppliedAt, _ = time.Parse(time.RFC3339Nano, appliedStr)
		if rolledBack.Valid {
			t, _ := time.Parse(time.RFC3339Nano, rolledBack.String)
			p.RolledBackAt = &t
		}
		p.Approximate = approximate != 0
		patches = append(patches, p)
	}
	return patches, rows.Err()
}

// #endregion load

// #region list-versions

// VersionRecord is one row of a model's ruleset history.
type VersionRecord struct {
	VersionID string
	ModelID   string
	RuleSet   patch.RuleSet
	CreatedAt time.Time
}

// ListVersions returns the most recent ruleset versions for a model.
func (s *Store) ListVersions(modelID string, limit int) ([]VersionRecord, error) {
	rows, err := s.db.Query(
		`SELECT version_id, model_id, ruleset_json, created_at
		 FROM ruleset_versions WHERE model_id = ?
		 ORDER BY created_at DESC LIMIT ?`, modelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var records []VersionRecord
	for rows.Next() {
		var rec VersionRecord
		var rsJSON, createdStr string
		if err := rows.Scan(&rec.VersionID, &rec.ModelID, &rsJSON, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(rsJSON), &rec.RuleSet); err != nil {
			return nil, fmt.Errorf("unmarshal ruleset: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list-versions

// #region helpers
func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// #endregion helpers
