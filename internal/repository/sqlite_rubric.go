package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/emmafields/rubriq/internal/db"
	"github.com/emmafields/rubriq/internal/domain"
)

// SQLiteRubricRepo implements RubricRepo using a SQLite database.
type SQLiteRubricRepo struct {
	db db.DBTX
}

// NewSQLiteRubricRepo creates a new SQLiteRubricRepo.
func NewSQLiteRubricRepo(conn db.DBTX) *SQLiteRubricRepo {
	return &SQLiteRubricRepo{db: conn}
}

// criterionRow is the JSON shape criteria are stored in.
type criterionRow struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxPoints   int    `json:"max_points"`
}

func (r *SQLiteRubricRepo) ReplaceAll(ctx context.Context, rubrics []*domain.Rubric, fetchedAt time.Time) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM rubrics`); err != nil {
		return fmt.Errorf("clearing rubric cache: %w", err)
	}

	query := `INSERT INTO rubrics (id, name, description, criteria_json, created_at, updated_at, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for _, rubric := range rubrics {
		criteria := make([]criterionRow, 0, len(rubric.Criteria))
		for _, c := range rubric.Criteria {
			criteria = append(criteria, criterionRow{
				Name:        c.Name,
				Description: c.Description,
				MaxPoints:   c.MaxPoints,
			})
		}
		criteriaJSON, err := json.Marshal(criteria)
		if err != nil {
			return fmt.Errorf("encoding criteria for rubric %s: %w", rubric.ID, err)
		}

		_, err = r.db.ExecContext(ctx, query,
			rubric.ID,
			rubric.Name,
			rubric.Description,
			string(criteriaJSON),
			rubric.CreatedAt.Format(time.RFC3339),
			rubric.UpdatedAt.Format(time.RFC3339),
			fetchedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting rubric %s: %w", rubric.ID, err)
		}
	}
	return nil
}

func (r *SQLiteRubricRepo) List(ctx context.Context) ([]*domain.Rubric, error) {
	query := `SELECT id, name, description, criteria_json, created_at, updated_at
		FROM rubrics ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing rubrics: %w", err)
	}
	defer rows.Close()

	var rubrics []*domain.Rubric
	for rows.Next() {
		rubric, err := scanRubric(rows)
		if err != nil {
			return nil, err
		}
		rubrics = append(rubrics, rubric)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rubrics: %w", err)
	}
	return rubrics, nil
}

func (r *SQLiteRubricRepo) GetByID(ctx context.Context, id string) (*domain.Rubric, error) {
	query := `SELECT id, name, description, criteria_json, created_at, updated_at
		FROM rubrics WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var rubric domain.Rubric
	var criteriaJSON, createdAtStr, updatedAtStr string
	err := row.Scan(&rubric.ID, &rubric.Name, &rubric.Description, &criteriaJSON, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("rubric: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning rubric: %w", err)
	}
	return populateRubric(&rubric, criteriaJSON, createdAtStr, updatedAtStr)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRubric(row rowScanner) (*domain.Rubric, error) {
	var rubric domain.Rubric
	var criteriaJSON, createdAtStr, updatedAtStr string
	if err := row.Scan(&rubric.ID, &rubric.Name, &rubric.Description, &criteriaJSON, &createdAtStr, &updatedAtStr); err != nil {
		return nil, fmt.Errorf("scanning rubric row: %w", err)
	}
	return populateRubric(&rubric, criteriaJSON, createdAtStr, updatedAtStr)
}

func populateRubric(rubric *domain.Rubric, criteriaJSON, createdAtStr, updatedAtStr string) (*domain.Rubric, error) {
	var criteria []criterionRow
	if err := json.Unmarshal([]byte(criteriaJSON), &criteria); err != nil {
		return nil, fmt.Errorf("decoding criteria for rubric %s: %w", rubric.ID, err)
	}
	for _, c := range criteria {
		rubric.Criteria = append(rubric.Criteria, domain.RubricCriterion{
			Name:        c.Name,
			Description: c.Description,
			MaxPoints:   c.MaxPoints,
		})
	}
	if t, err := time.Parse(time.RFC3339, createdAtStr); err == nil {
		rubric.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAtStr); err == nil {
		rubric.UpdatedAt = t
	}
	return rubric, nil
}
