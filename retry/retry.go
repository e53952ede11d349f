package retry

import (
	"context"
	"time"

	"github.com/reagentkit/reagent"
)

// Do executes fn with retry, honoring context cancellation during backoff
// waits. Only transient errors are retried; a permanent or user-input error
// returns immediately. Returns the result on success, or the last error once
// attempts are exhausted.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !IsTransient(err) {
			return zero, err
		}

		// No sleep after the last attempt.
		if attempt < cfg.MaxAttempts-1 {
			delay := effectiveDelay(cfg.Delay(attempt), err)

			if cfg.OnRetry != nil {
				cfg.OnRetry(attempt+1, err, delay)
			}

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return zero, lastErr
}

// effectiveDelay honors a server-provided Retry-After when it exceeds the
// configured backoff.
func effectiveDelay(configured time.Duration, err error) time.Duration {
	if server := reagent.RetryAfterOf(err); server > configured {
		return server
	}
	return configured
}
