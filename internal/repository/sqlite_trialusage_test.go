package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmafields/rubriq/internal/testutil"
)

func TestTrialUsageRepo_UnknownIdentityHasZeroAttempts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTrialUsageRepo(db)

	used, err := repo.AttemptsUsed(context.Background(), "anon-1")
	require.NoError(t, err)
	assert.Equal(t, 0, used)
}

func TestTrialUsageRepo_SetAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTrialUsageRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.SetAttemptsUsed(ctx, "anon-1", 2))

	used, err := repo.AttemptsUsed(ctx, "anon-1")
	require.NoError(t, err)
	assert.Equal(t, 2, used)

	// Upsert overwrites.
	require.NoError(t, repo.SetAttemptsUsed(ctx, "anon-1", 3))
	used, err = repo.AttemptsUsed(ctx, "anon-1")
	require.NoError(t, err)
	assert.Equal(t, 3, used)
}

func TestTrialUsageRepo_IdentitiesAreIndependent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTrialUsageRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.SetAttemptsUsed(ctx, "anon-1", 3))

	used, err := repo.AttemptsUsed(ctx, "anon-2")
	require.NoError(t, err)
	assert.Equal(t, 0, used)
}
