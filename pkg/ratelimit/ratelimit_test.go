package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(clock *time.Time) *LocalRateLimiter {
	l := NewLocalRateLimiter()
	l.now = func() time.Time { return *clock }
	return l
}

func TestLocalRateLimiter_BurstThenRefill(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newTestLimiter(&clock)
	limit := Limit{Rate: 2, Period: time.Second, Burst: 2}
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := l.Allow(ctx, "ip", limit)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}
	res, err := l.Allow(ctx, "ip", limit)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 500*time.Millisecond, res.RetryAfter)

	other, err := l.Allow(ctx, "other-ip", limit)
	require.NoError(t, err)
	assert.True(t, other.Allowed)

	clock = clock.Add(500 * time.Millisecond)
	res, err = l.Allow(ctx, "ip", limit)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestLocalRateLimiter_ZeroBurstRejects(t *testing.T) {
	clock := time.Now()
	l := newTestLimiter(&clock)

	res, err := l.Allow(context.Background(), "ip", Limit{Rate: 1, Period: time.Second, Burst: 0})
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

func TestLocalRateLimiter_SweepsIdleKeys(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newTestLimiter(&clock)
	limit := Limit{Rate: 1, Period: time.Second, Burst: 1}

	_, err := l.Allow(context.Background(), "a", limit)
	require.NoError(t, err)
	clock = clock.Add(2 * idleTTL)
	_, err = l.Allow(context.Background(), "b", limit)
	require.NoError(t, err)

	assert.NotContains(t, l.entries, "a")
	assert.Contains(t, l.entries, "b")
}
