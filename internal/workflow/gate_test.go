package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memUsageStore is an in-memory UsageStore for gate tests.
type memUsageStore struct {
	counts map[string]int
	err    error
}

func newMemUsageStore() *memUsageStore {
	return &memUsageStore{counts: make(map[string]int)}
}

func (s *memUsageStore) AttemptsUsed(_ context.Context, id string) (int, error) {
	return s.counts[id], s.err
}

func (s *memUsageStore) SetAttemptsUsed(_ context.Context, id string, used int) error {
	if s.err != nil {
		return s.err
	}
	s.counts[id] = used
	return nil
}

func TestUsageGate_AuthenticatedAlwaysPasses(t *testing.T) {
	store := newMemUsageStore()
	store.counts["anon"] = 99
	gate := NewUsageGate(store, "anon", 3)

	ok, err := gate.CanAttempt(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUsageGate_AnonymousWithinBudget(t *testing.T) {
	gate := NewUsageGate(newMemUsageStore(), "anon", 3)

	ok, err := gate.CanAttempt(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUsageGate_ConsumeExactlyMaxAttempts(t *testing.T) {
	store := newMemUsageStore()
	gate := NewUsageGate(store, "anon", 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := gate.ConsumeAttempt(ctx)
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d should succeed", i+1)
	}

	// The fourth consume is denied and the counter stays put.
	ok, err := gate.ConsumeAttempt(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 3, store.counts["anon"])

	ok, err = gate.CanAttempt(ctx, false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUsageGate_Usage(t *testing.T) {
	store := newMemUsageStore()
	store.counts["anon"] = 2
	gate := NewUsageGate(store, "anon", 3)

	usage, err := gate.Usage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, usage.AttemptsUsed)
	assert.Equal(t, 3, usage.MaxAttempts)
	assert.Equal(t, 1, usage.Remaining())
}

func TestUsageGate_StoreErrorPropagates(t *testing.T) {
	store := newMemUsageStore()
	store.err = errors.New("disk full")
	gate := NewUsageGate(store, "anon", 3)

	_, err := gate.CanAttempt(context.Background(), false)
	assert.Error(t, err)

	_, err = gate.ConsumeAttempt(context.Background())
	assert.Error(t, err)
}
