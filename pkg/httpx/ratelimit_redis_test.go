package httpx

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLimiter(t *testing.T) {
	mr, client := newTestRedis(t)
	ctx := context.Background()

	cfg := RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute}
	l := NewRedisLimiter(client, "login", cfg)

	// Pin the clock 15s into a window so the test never straddles a boundary
	base := time.Unix(0, 0).Add(1000 * time.Minute).Add(15 * time.Second)
	l.now = func() time.Time { return base }

	for range 2 {
		d, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, d.Allowed)
	}

	d, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.False(t, d.Allowed)
	require.Equal(t, 45*time.Second, d.RetryAfter)

	// Counters carry a TTL so Redis cleans them up
	keys := mr.Keys()
	require.Len(t, keys, 1)
	require.Positive(t, mr.TTL(keys[0]))

	// Another key has its own budget
	d, err = l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	require.True(t, d.Allowed)

	// The next window starts fresh
	l.now = func() time.Time { return base.Add(time.Minute) }
	d, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.True(t, d.Allowed)
}

func TestRedisLimiter_SharedAcrossInstances(t *testing.T) {
	_, client := newTestRedis(t)
	ctx := context.Background()

	cfg := RateLimitConfig{RequestsPerWindow: 1, Window: time.Hour}
	factory := RedisLimiterFactory(client)
	a := factory("analysis", cfg)
	b := factory("analysis", cfg)

	d, err := a.Allow(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, d.Allowed)

	// A second replica sees the same counter
	d, err = b.Allow(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, d.Allowed)
}

func TestRedisLimiter_BackendDown(t *testing.T) {
	mr, client := newTestRedis(t)
	mr.Close()

	l := NewRedisLimiter(client, "login", RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute})
	d, err := l.Allow(context.Background(), "10.0.0.1")
	require.Error(t, err)
	require.True(t, d.Allowed)
}
