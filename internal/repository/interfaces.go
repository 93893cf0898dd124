package repository

import (
	"context"
	"time"

	"github.com/emmafields/rubriq/internal/domain"
)

// RubricRepo caches rubric definitions fetched from the grading service.
type RubricRepo interface {
	ReplaceAll(ctx context.Context, rubrics []*domain.Rubric, fetchedAt time.Time) error
	List(ctx context.Context) ([]*domain.Rubric, error)
	GetByID(ctx context.Context, id string) (*domain.Rubric, error)
}

// TrialUsageRepo persists the free-attempt counter per anonymous identity.
type TrialUsageRepo interface {
	AttemptsUsed(ctx context.Context, anonymousID string) (int, error)
	SetAttemptsUsed(ctx context.Context, anonymousID string, used int) error
}

// AuthSessionRepo stores the single local auth session.
type AuthSessionRepo interface {
	Get(ctx context.Context) (*domain.AuthSession, error)
	Put(ctx context.Context, s *domain.AuthSession) error
	Delete(ctx context.Context) error
}
