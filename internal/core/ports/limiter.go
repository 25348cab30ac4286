package ports

import "context"

// RateLimiter throttles repeated attempts keyed by an arbitrary string
// (username, session id). Implementations return domain.ErrRateLimited when
// the budget for the key is exhausted.
type RateLimiter interface {
	Allow(ctx context.Context, key string) error
}
