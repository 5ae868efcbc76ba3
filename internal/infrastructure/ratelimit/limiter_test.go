package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, max int64, window time.Duration) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLimiter(client, "test", max, window), mr
}

func TestAllowWithinBudget(t *testing.T) {
	l, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Allow(ctx, "1.2.3.4"))
	}
	assert.ErrorIs(t, l.Allow(ctx, "1.2.3.4"), ErrRateLimited)
}

func TestAllowSeparateKeys(t *testing.T) {
	l, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	require.NoError(t, l.Allow(ctx, "1.2.3.4"))
	require.NoError(t, l.Allow(ctx, "5.6.7.8"))
	assert.ErrorIs(t, l.Allow(ctx, "1.2.3.4"), ErrRateLimited)
}

func TestWindowResets(t *testing.T) {
	l, mr := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	require.NoError(t, l.Allow(ctx, "1.2.3.4"))
	assert.ErrorIs(t, l.Allow(ctx, "1.2.3.4"), ErrRateLimited)

	mr.FastForward(time.Minute + time.Second)
	require.NoError(t, l.Allow(ctx, "1.2.3.4"))
}

func TestNilClientFailsOpen(t *testing.T) {
	l := NewLimiter(nil, "test", 1, time.Minute)
	for i := 0; i < 10; i++ {
		require.NoError(t, l.Allow(context.Background(), "k"))
	}
}
