package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docgraph"
)

// AttemptFunc is one fetch-and-extract attempt.
type AttemptFunc func(ctx context.Context) (*docgraph.CrawledContent, error)

// WithRetry runs fn up to policy.MaxRetries times, sleeping
// RetryDelay × attemptNumber between attempts (linear backoff on the
// attempt count, distinct from the scheduler's exponential backoff on a
// job's retry count). Non-retryable errors abort immediately; after
// exhausting attempts the last error is returned.
func WithRetry(ctx context.Context, policy docgraph.RetryPolicy, logger *slog.Logger, fn AttemptFunc) (*docgraph.CrawledContent, error) {
	attempts := policy.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		content, err := fn(ctx)
		if err == nil {
			return content, nil
		}
		lastErr = err

		if !docgraph.Retryable(err) || attempt == attempts {
			break
		}

		if logger != nil {
			logger.Warn("retrying fetch",
				"attempt", attempt,
				"of", attempts,
				"error", err,
			)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(policy.RetryDelay * time.Duration(attempt)):
		}
	}

	return nil, lastErr
}
