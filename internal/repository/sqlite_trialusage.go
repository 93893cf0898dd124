package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/emmafields/rubriq/internal/db"
)

// SQLiteTrialUsageRepo implements TrialUsageRepo using a SQLite database.
type SQLiteTrialUsageRepo struct {
	db db.DBTX
}

// NewSQLiteTrialUsageRepo creates a new SQLiteTrialUsageRepo.
func NewSQLiteTrialUsageRepo(conn db.DBTX) *SQLiteTrialUsageRepo {
	return &SQLiteTrialUsageRepo{db: conn}
}

// AttemptsUsed returns the recorded attempt count for the identity.
// An identity with no row has used zero attempts.
func (r *SQLiteTrialUsageRepo) AttemptsUsed(ctx context.Context, anonymousID string) (int, error) {
	query := `SELECT attempts_used FROM trial_usage WHERE anonymous_id = ?`
	row := r.db.QueryRowContext(ctx, query, anonymousID)

	var used int
	if err := row.Scan(&used); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("scanning trial usage: %w", err)
	}
	return used, nil
}

func (r *SQLiteTrialUsageRepo) SetAttemptsUsed(ctx context.Context, anonymousID string, used int) error {
	query := `INSERT INTO trial_usage (anonymous_id, attempts_used, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(anonymous_id) DO UPDATE SET attempts_used = excluded.attempts_used, updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query, anonymousID, used, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting trial usage: %w", err)
	}
	return nil
}
