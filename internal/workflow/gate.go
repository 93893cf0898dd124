package workflow

import (
	"context"
	"fmt"

	"github.com/emmafields/rubriq/internal/domain"
)

// UsageStore persists the free-attempt counter for an anonymous identity.
// Satisfied by repository.SQLiteTrialUsageRepo.
type UsageStore interface {
	AttemptsUsed(ctx context.Context, anonymousID string) (int, error)
	SetAttemptsUsed(ctx context.Context, anonymousID string, used int) error
}

// UsageGate limits unauthenticated grading to a fixed number of attempts.
// Authenticated identities always pass. The counter outlives workflow
// resets; only authentication clears its effect.
type UsageGate struct {
	store       UsageStore
	anonymousID string
	maxAttempts int
}

// NewUsageGate creates a gate for the given anonymous identity.
func NewUsageGate(store UsageStore, anonymousID string, maxAttempts int) *UsageGate {
	return &UsageGate{store: store, anonymousID: anonymousID, maxAttempts: maxAttempts}
}

// CanAttempt reports whether a grading attempt may proceed. Consumes
// nothing.
func (g *UsageGate) CanAttempt(ctx context.Context, isAuthenticated bool) (bool, error) {
	if isAuthenticated {
		return true, nil
	}
	used, err := g.store.AttemptsUsed(ctx, g.anonymousID)
	if err != nil {
		return false, fmt.Errorf("loading trial usage: %w", err)
	}
	return used < g.maxAttempts, nil
}

// ConsumeAttempt records one anonymous attempt. Returns false without
// mutating anything when the budget is already spent; denial is signaled
// by the boolean, never by the error.
func (g *UsageGate) ConsumeAttempt(ctx context.Context) (bool, error) {
	used, err := g.store.AttemptsUsed(ctx, g.anonymousID)
	if err != nil {
		return false, fmt.Errorf("loading trial usage: %w", err)
	}
	if used >= g.maxAttempts {
		return false, nil
	}
	if err := g.store.SetAttemptsUsed(ctx, g.anonymousID, used+1); err != nil {
		return false, fmt.Errorf("recording trial attempt: %w", err)
	}
	return true, nil
}

// Usage returns the current counter state for display.
func (g *UsageGate) Usage(ctx context.Context) (domain.TrialUsage, error) {
	used, err := g.store.AttemptsUsed(ctx, g.anonymousID)
	if err != nil {
		return domain.TrialUsage{}, fmt.Errorf("loading trial usage: %w", err)
	}
	return domain.TrialUsage{
		AnonymousID:  g.anonymousID,
		AttemptsUsed: used,
		MaxAttempts:  g.maxAttempts,
	}, nil
}
