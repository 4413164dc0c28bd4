// Package ratelimit builds the optional client-side rate limiter.
package ratelimit

import "golang.org/x/time/rate"

// NewRateLimiter returns a token bucket refilled at requestsPerMinute/60 tokens
// per second with a burst of burst tokens. A burst below 1 defaults to one
// second's worth of requests. It returns nil when requestsPerMinute is not
// positive, meaning no limit.
func NewRateLimiter(requestsPerMinute, burst int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	if burst < 1 {
		burst = max(requestsPerMinute/60, 1)
	}
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst)
}
