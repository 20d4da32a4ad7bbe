// Package ratelimiter throttles requests made against remote input backends.
//
// It wraps a token bucket from golang.org/x/time/rate. A nil *RateLimiter
// never blocks, so callers can hold an optional limiter without checks.
package ratelimiter

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter limits the rate of outgoing requests.
type RateLimiter struct {
	limiter *rate.Limiter
}

// New creates a limiter allowing requestsPerSecond sustained requests.
//
// A burst of zero defaults to twice the rate. A rate of zero returns nil,
// which disables limiting.
func New(requestsPerSecond, burst uint) *RateLimiter {
	if requestsPerSecond == 0 {
		return nil
	}
	if burst == 0 {
		burst = requestsPerSecond * 2
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), int(burst)),
	}
}

// Allow reports whether a request may proceed now, consuming a token if so.
func (r *RateLimiter) Allow() bool {
	if r == nil {
		return true
	}
	return r.limiter.Allow()
}

// Wait blocks until a request may proceed or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return ctx.Err()
	}
	return r.limiter.Wait(ctx)
}

// Burst returns the bucket size, or zero for a nil limiter.
func (r *RateLimiter) Burst() int {
	if r == nil {
		return 0
	}
	return r.limiter.Burst()
}
