package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/greenstreet/ledger-api/internal/core/domain"
)

const (
	defaultWindow      = time.Minute
	defaultMaxAttempts = 10
)

// AttemptLimiter provides fixed-window rate limiting backed by Redis.
// Key format: ratelimit:<caller key>
type AttemptLimiter struct {
	client      *redis.Client
	window      time.Duration
	maxAttempts int64
}

// NewAttemptLimiter creates an AttemptLimiter wrapping the given Redis client.
// Non-positive window or budget fall back to defaults.
func NewAttemptLimiter(client *redis.Client, window time.Duration, maxAttempts int) *AttemptLimiter {
	if window <= 0 {
		window = defaultWindow
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &AttemptLimiter{client: client, window: window, maxAttempts: int64(maxAttempts)}
}

// Allow records one attempt for the key and reports whether the window budget
// is exhausted. The TTL is set on the first hit of the window only.
func (l *AttemptLimiter) Allow(ctx context.Context, key string) error {
	rkey := "ratelimit:" + key

	count, err := l.client.Incr(ctx, rkey).Result()
	if err != nil {
		return fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, rkey, l.window).Err(); err != nil {
			return fmt.Errorf("rate limit expire: %w", err)
		}
	}

	if count > l.maxAttempts {
		return domain.ErrRateLimited
	}
	return nil
}
