package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region log-decision
// LogDecision writes a provenance entry to the provenance_log table.
func LogDecision(db *sql.DB, entry ProvenanceEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO provenance_log (model_id, version_id, stage, decision, reason, details_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ModelID,
		nullIfEmpty(entry.VersionID),
		entry.Stage,
		entry.Decision,
		nullIfEmpty(entry.Reason),
		nullIfEmpty(entry.DetailsJSON),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log decision: %w", err)
	}
	return nil
}

// #endregion log-decision

// #region list-entries
// ListEntries returns the most recent provenance entries for a model.
func ListEntries(db *sql.DB, modelID string, limit int) ([]ProvenanceEntry, error) {
	rows, err := db.Query(
		`SELECT model_id, version_id, stage, decision, reason, details_json, created_at
		 FROM provenance_log WHERE model_id = ?
		 ORDER BY id DESC LIMIT ?`, modelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list provenance: %w", err)
	}
	defer rows.Close()

	var entries []ProvenanceEntry
	for rows.Next() {
		var e ProvenanceEntry
		var versionID, reason, detailsJSON sql.NullString
		var createdStr string
		if err := rows.Scan(&e.ModelID, &versionID, &e.Stage, &e.Decision,
			&reason, &detailsJSON, &createdStr); err != nil {
			return nil, fmt.Errorf("scan provenance row: %w", err)
		}
		e.VersionID = versionID.String
		e.Reason = reason.String
		e.DetailsJSON = detailsJSON.String
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// #endregion list-entries

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
