package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/emmafields/rubriq/internal/db"
	"github.com/emmafields/rubriq/internal/domain"
)

// SQLiteAuthSessionRepo implements AuthSessionRepo using a SQLite database.
// At most one session row exists.
type SQLiteAuthSessionRepo struct {
	db db.DBTX
}

// NewSQLiteAuthSessionRepo creates a new SQLiteAuthSessionRepo.
func NewSQLiteAuthSessionRepo(conn db.DBTX) *SQLiteAuthSessionRepo {
	return &SQLiteAuthSessionRepo{db: conn}
}

func (r *SQLiteAuthSessionRepo) Get(ctx context.Context) (*domain.AuthSession, error) {
	query := `SELECT token, user_name, created_at FROM auth_session WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var s domain.AuthSession
	var createdAtStr string
	if err := row.Scan(&s.Token, &s.UserName, &createdAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("auth session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning auth session: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAtStr); err == nil {
		s.CreatedAt = t
	}
	return &s, nil
}

func (r *SQLiteAuthSessionRepo) Put(ctx context.Context, s *domain.AuthSession) error {
	query := `INSERT OR REPLACE INTO auth_session (id, token, user_name, created_at)
		VALUES ('default', ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, s.Token, s.UserName, s.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting auth session: %w", err)
	}
	return nil
}

func (r *SQLiteAuthSessionRepo) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM auth_session`); err != nil {
		return fmt.Errorf("deleting auth session: %w", err)
	}
	return nil
}
