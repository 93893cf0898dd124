package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmafields/rubriq/internal/domain"
	"github.com/emmafields/rubriq/internal/testutil"
)

func TestRubricRepo_ReplaceAllAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteRubricRepo(db)
	ctx := context.Background()

	fetched := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	rubrics := []*domain.Rubric{
		testutil.NewRubric("r1", "Argumentative Essay"),
		testutil.NewRubric("r2", "Lab Report"),
	}
	require.NoError(t, repo.ReplaceAll(ctx, rubrics, fetched))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Ordered by name.
	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, "r2", got[1].ID)
	require.Len(t, got[0].Criteria, 2)
	assert.Equal(t, "Structure", got[0].Criteria[0].Name)
	assert.Equal(t, 30, got[0].Criteria[0].MaxPoints)
}

func TestRubricRepo_ReplaceAll_DropsStaleEntries(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteRubricRepo(db)
	ctx := context.Background()

	fetched := time.Now().UTC()
	require.NoError(t, repo.ReplaceAll(ctx, []*domain.Rubric{testutil.NewRubric("old", "Old")}, fetched))
	require.NoError(t, repo.ReplaceAll(ctx, []*domain.Rubric{testutil.NewRubric("new", "New")}, fetched))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID)
}

func TestRubricRepo_GetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteRubricRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, []*domain.Rubric{testutil.NewRubric("r1", "Essay")}, time.Now().UTC()))

	got, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Essay", got.Name)
	assert.Equal(t, "fixture rubric", got.Description)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
