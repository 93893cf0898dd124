package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emmafields/rubriq/internal/domain"
	"github.com/emmafields/rubriq/internal/repository"
)

type authService struct {
	sessions repository.AuthSessionRepo
	now      func() time.Time
}

// NewAuthService creates an AuthService over the stored session.
func NewAuthService(sessions repository.AuthSessionRepo) AuthService {
	return &authService{
		sessions: sessions,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// IsAuthenticated is true iff a session with a non-empty token is stored.
// Storage errors read as "not authenticated": the gate then applies the
// anonymous budget rather than granting unlimited use.
func (s *authService) IsAuthenticated(ctx context.Context) bool {
	sess, err := s.sessions.Get(ctx)
	if err != nil {
		return false
	}
	return sess.Token != ""
}

func (s *authService) CurrentSession(ctx context.Context) (*domain.AuthSession, error) {
	return s.sessions.Get(ctx)
}

func (s *authService) Login(ctx context.Context, token, userName string) error {
	if token == "" {
		return errors.New("a session token is required")
	}
	sess := &domain.AuthSession{
		Token:     token,
		UserName:  userName,
		CreatedAt: s.now(),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

func (s *authService) Logout(ctx context.Context) error {
	if err := s.sessions.Delete(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
