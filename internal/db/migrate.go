package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent so the full
// list re-runs safely on every startup.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Cached copy of the rubric list served by the grading service, so the
	// picker works when the service is unreachable.
	`CREATE TABLE IF NOT EXISTS rubrics (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		criteria_json TEXT NOT NULL DEFAULT '[]',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		fetched_at    TEXT NOT NULL
	)`,

	// Free-attempt counter per anonymous identity. Survives process
	// restarts; authentication bypasses it without resetting it.
	`CREATE TABLE IF NOT EXISTS trial_usage (
		anonymous_id  TEXT PRIMARY KEY,
		attempts_used INTEGER NOT NULL DEFAULT 0
		              CHECK(attempts_used >= 0),
		updated_at    TEXT NOT NULL
	)`,

	// Single-row auth session. The stored token is the authoritative
	// authentication signal.
	`CREATE TABLE IF NOT EXISTS auth_session (
		id         TEXT PRIMARY KEY CHECK(id = 'default'),
		token      TEXT NOT NULL,
		user_name  TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
}
