package service

import (
	"context"

	"github.com/emmafields/rubriq/internal/domain"
)

// RubricList is the set of rubrics offered for selection, plus whether the
// list came from the service or a degraded local source.
type RubricList struct {
	Rubrics  []*domain.Rubric
	Degraded bool
	Warning  string
}

// Refs returns selection references: the built-in default first, then the
// listed rubrics.
func (l *RubricList) Refs() []domain.RubricRef {
	refs := make([]domain.RubricRef, 0, len(l.Rubrics)+1)
	refs = append(refs, domain.DefaultRubricRef())
	for _, r := range l.Rubrics {
		refs = append(refs, r.Ref())
	}
	return refs
}

type RubricService interface {
	// List fetches rubrics from the grading service, falling back to the
	// local cache when the service is unreachable. The built-in default
	// rubric is always selectable, so List never leaves the workflow
	// without an option.
	List(ctx context.Context) (*RubricList, error)
}

type AuthService interface {
	// IsAuthenticated reports whether a session token is stored. The token
	// is the single authoritative signal; cached profile data never grants
	// authentication on its own.
	IsAuthenticated(ctx context.Context) bool

	CurrentSession(ctx context.Context) (*domain.AuthSession, error)
	Login(ctx context.Context, token, userName string) error
	Logout(ctx context.Context) error
}
