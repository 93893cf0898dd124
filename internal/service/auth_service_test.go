package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmafields/rubriq/internal/repository"
	"github.com/emmafields/rubriq/internal/testutil"
)

func TestAuthService_NotAuthenticatedByDefault(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewAuthService(repository.NewSQLiteAuthSessionRepo(db))

	assert.False(t, svc.IsAuthenticated(context.Background()))
}

func TestAuthService_LoginThenLogout(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewAuthService(repository.NewSQLiteAuthSessionRepo(db))
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "tok-123", "Avery"))
	assert.True(t, svc.IsAuthenticated(ctx))

	sess, err := svc.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Avery", sess.UserName)

	require.NoError(t, svc.Logout(ctx))
	assert.False(t, svc.IsAuthenticated(ctx))
}

func TestAuthService_LoginRequiresToken(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewAuthService(repository.NewSQLiteAuthSessionRepo(db))

	err := svc.Login(context.Background(), "", "Avery")
	assert.Error(t, err)
	assert.False(t, svc.IsAuthenticated(context.Background()))
}
