package ratelimit

import (
	"context"
	"time"
)

// AttemptStore extends Store with a non-recording count, so that only
// failures are ever written.
type AttemptStore interface {
	Store
	Count(ctx context.Context, key string, window time.Duration) (int64, error)
}

// AttemptLimiter throttles failed password attempts per short code. A
// protected link's only defense is its single secret, so attempts are
// locked out once the failure budget for the window is spent. The
// lockout clears on its own as failures age out of the window.
type AttemptLimiter struct {
	store  AttemptStore
	max    int64
	window time.Duration
	prefix string
}

// NewAttemptLimiter creates a limiter allowing max failures per window
// per short code.
func NewAttemptLimiter(store AttemptStore, max int64, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{
		store:  store,
		max:    max,
		window: window,
		prefix: "pwfail:",
	}
}

// Allowed reports whether the code is still accepting password attempts.
func (l *AttemptLimiter) Allowed(ctx context.Context, key string) (bool, error) {
	count, err := l.store.Count(ctx, l.prefix+key, l.window)
	if err != nil {
		return false, err
	}

	return count < l.max, nil
}

// RecordFailure counts one failed attempt against the code.
func (l *AttemptLimiter) RecordFailure(ctx context.Context, key string) error {
	_, err := l.store.Record(ctx, l.prefix+key, l.window)

	return err
}
