package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/docgraph"
	"golang.org/x/time/rate"
)

var _ docgraph.Limiter = (*Limiter)(nil)

// Limiter enforces a global minimum spacing between any two outbound
// fetches using a token bucket with a burst of 1 (no bursting allowed).
// All fetchers share one Limiter so the spacing holds across sources.
type Limiter struct {
	l *rate.Limiter
}

// NewLimiter creates a Limiter from a rate-limit policy. The explicit
// DelayBetweenRequests wins over RequestsPerMinute when both are set; a
// zero policy disables limiting.
func NewLimiter(policy docgraph.RateLimitPolicy) *Limiter {
	delay := policy.DelayBetweenRequests
	if delay <= 0 && policy.RequestsPerMinute > 0 {
		delay = time.Minute / time.Duration(policy.RequestsPerMinute)
	}
	if delay <= 0 {
		return &Limiter{l: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{l: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the minimum spacing since the previous fetch has
// elapsed. Returns an error if the context is canceled before then.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.l.Wait(ctx)
}
