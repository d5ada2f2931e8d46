package httpx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter in Redis, shared by every replica.
// Burst is not modelled; a client gets RequestsPerWindow per window.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	cfg    RateLimitConfig
	now    func() time.Time
}

// NewRedisLimiter keys its counters under "ratelimit:<name>:".
func NewRedisLimiter(client *redis.Client, name string, cfg RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: "ratelimit:" + name,
		cfg:    cfg,
		now:    time.Now,
	}
}

// RedisLimiterFactory returns a LimiterFactory backed by client.
func RedisLimiterFactory(client *redis.Client) LimiterFactory {
	return func(name string, cfg RateLimitConfig) Limiter {
		return NewRedisLimiter(client, name, cfg)
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := l.now()
	window := l.cfg.Window
	slot := now.UnixNano() / int64(window)
	counterKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, counterKey)
		pipe.Expire(ctx, counterKey, window)
		return nil
	})
	if err != nil {
		return Decision{Allowed: true}, fmt.Errorf("redis rate limit: %w", err)
	}

	if incr.Val() <= int64(l.cfg.RequestsPerWindow) {
		return Decision{Allowed: true}, nil
	}

	windowEnd := time.Unix(0, (slot+1)*int64(window))
	return Decision{Allowed: false, RetryAfter: windowEnd.Sub(now)}, nil
}
