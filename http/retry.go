package http

import (
	"context"
	"time"

	"github.com/fwojciec/jsonextract"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// WithRetryDelays sets the waits between fetch attempts. An empty list
// disables retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(s *Source) {
		s.retryDelays = delays
	}
}

// openWithRetry calls fetch until it succeeds, fails permanently, or the
// delays run out. Only read failures (transport errors and non-404 bad
// statuses) are retried.
func (s *Source) openWithRetry(ctx context.Context, rawURL string, fetch func(context.Context, string) (*jsonextract.File, error)) (*jsonextract.File, error) {
	maxAttempts := len(s.retryDelays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		f, err := fetch(ctx, rawURL)
		if err == nil {
			return f, nil
		}
		lastErr = err

		if jsonextract.ErrorCode(err) != jsonextract.EREAD || attempt >= maxAttempts-1 {
			break
		}

		// Wait before next attempt
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.retryDelays[attempt]):
		}
	}

	return nil, lastErr
}
