package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrRateLimited = errors.New("rate limited")

// Limiter is a fixed-window counter backed by Redis. One INCR per request;
// the first hit in a window sets the TTL.
type Limiter struct {
	client *redis.Client
	prefix string
	max    int64
	window time.Duration
}

// NewLimiter creates a limiter allowing max requests per window under the
// given key prefix.
func NewLimiter(client *redis.Client, prefix string, max int64, window time.Duration) *Limiter {
	return &Limiter{client: client, prefix: prefix, max: max, window: window}
}

// Allow counts a request for key and reports ErrRateLimited once the window
// budget is spent. Redis being unreachable fails open: attendance marking
// must not stop because the limiter store is down.
func (l *Limiter) Allow(ctx context.Context, key string) error {
	if l.client == nil {
		return nil
	}
	full := fmt.Sprintf("%s:%s", l.prefix, key)
	count, err := l.client.Incr(ctx, full).Result()
	if err != nil {
		return nil
	}
	if count == 1 {
		if err := l.client.Expire(ctx, full, l.window).Err(); err != nil {
			return nil
		}
	}
	if count > l.max {
		return ErrRateLimited
	}
	return nil
}

// NewClient builds a Redis client from a URL, with pool settings suited to a
// small web service.
func NewClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opt.PoolSize = 20
	opt.MinIdleConns = 2
	opt.DialTimeout = 5 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute
	return redis.NewClient(opt), nil
}
