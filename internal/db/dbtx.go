package db

import (
	"context"
	"database/sql"
)

// DBTX is what the rubric, trial-usage, and auth-session repositories
// require from their connection. Both *sql.DB and *sql.Tx satisfy it, so a
// repository can run standalone or inside a transaction unchanged.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
