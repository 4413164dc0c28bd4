package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/lexfrei/go-streak/internal/observability"
)

// RateLimitConfig configures the rate limit middleware.
type RateLimitConfig struct {
	// Limiter is shared by every request of one client. nil disables limiting.
	Limiter *rate.Limiter
	Logger  observability.Logger
	Metrics observability.MetricsRecorder
}

// RateLimit returns a middleware that waits on the client-side limiter
// before each logical request. Retries of that request do not take extra tokens.
func RateLimit(cfg RateLimitConfig) func(http.RoundTripper) http.RoundTripper {
	logger := observability.LoggerOrNoop(cfg.Logger)
	metrics := observability.MetricsOrNoop(cfg.Metrics)

	return func(next http.RoundTripper) http.RoundTripper {
		if cfg.Limiter == nil {
			return next
		}
		return &rateLimitTransport{
			next:    next,
			limiter: cfg.Limiter,
			logger:  logger,
			metrics: metrics,
		}
	}
}

type rateLimitTransport struct {
	next    http.RoundTripper
	limiter *rate.Limiter
	logger  observability.Logger
	metrics observability.MetricsRecorder
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.wait(req.Context(), req.URL.Path); err != nil {
		return nil, err
	}

	//nolint:wrapcheck // Middleware passes through errors from next handler in chain
	return t.next.RoundTrip(req)
}

func (t *rateLimitTransport) wait(ctx context.Context, path string) error {
	reservation := t.limiter.Reserve()
	if !reservation.OK() {
		return errors.New("rate limit reservation failed")
	}

	delay := reservation.Delay()
	if delay <= 0 {
		return nil
	}

	endpoint := NormalizePath(path)
	t.logger.Debug("rate limit delay",
		observability.F("delay", delay),
		observability.F("path", endpoint),
	)
	t.metrics.RecordRateLimit(endpoint, delay)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		reservation.Cancel()
		return errors.Wrap(ctx.Err(), "context canceled during rate limit wait")
	}
}
