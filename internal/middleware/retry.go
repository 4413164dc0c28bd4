// Package middleware provides the http.RoundTripper layers of the Streak transport.
package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/lexfrei/go-streak/internal/httpclient"
	"github.com/lexfrei/go-streak/internal/observability"
	"github.com/lexfrei/go-streak/internal/retry"
)

// maxInspectedBody caps how much of a 503 body is buffered to check for JSON.
const maxInspectedBody = 1 << 20

// RetryConfig configures the retry middleware.
type RetryConfig struct {
	// MaxRetries is the number of retries after the first attempt. Zero disables retry.
	MaxRetries int
	// Wait is the fixed pause between attempts.
	Wait    time.Duration
	Logger  observability.Logger
	Metrics observability.MetricsRecorder
}

// Retry returns a middleware that retries transient unavailability: a 503
// response with no Location header and a body that is not JSON (see
// retry.ShouldRetry). Every other outcome, network errors included, is
// returned to the caller after the first attempt.
//
// When retries run out the last 503 response is returned unchanged, so the
// caller can classify it. Waits are fixed and stop early when the request
// context is done.
func Retry(cfg RetryConfig) func(http.RoundTripper) http.RoundTripper {
	logger := observability.LoggerOrNoop(cfg.Logger)
	metrics := observability.MetricsOrNoop(cfg.Metrics)
	maxRetries := max(cfg.MaxRetries, 0)
	wait := cfg.Wait

	return func(next http.RoundTripper) http.RoundTripper {
		client := &retryablehttp.Client{
			HTTPClient: &http.Client{
				Transport:     next,
				CheckRedirect: httpclient.NoRedirects,
			},
			RetryMax: maxRetries,
			CheckRetry: func(ctx context.Context, resp *http.Response, err error) (bool, error) {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return false, ctxErr
				}
				if err != nil {
					return false, nil
				}
				return shouldRetryResponse(resp)
			},
			Backoff: func(_, _ time.Duration, _ int, _ *http.Response) time.Duration {
				return wait
			},
			RequestLogHook: func(_ retryablehttp.Logger, req *http.Request, attempt int) {
				if attempt == 0 {
					return
				}
				logger.Warn("retrying request after service unavailable",
					observability.F("attempt", attempt),
					observability.F("max_retries", maxRetries),
					observability.F("wait", wait),
					observability.F("method", req.Method),
					observability.F("path", req.URL.Path),
				)
				metrics.RecordRetry(attempt, NormalizePath(req.URL.Path))
			},
			ErrorHandler: lastResponse,
		}

		return &retryablehttp.RoundTripper{Client: client}
	}
}

// shouldRetryResponse buffers a 503 body so it can be checked for JSON and
// still be read by the caller afterwards. A body over maxInspectedBody is
// handed back whole and not retried.
func shouldRetryResponse(resp *http.Response) (bool, error) {
	if resp.StatusCode != http.StatusServiceUnavailable || retry.HasLocation(resp.Header) {
		return false, nil
	}

	original := resp.Body
	head, err := io.ReadAll(io.LimitReader(original, maxInspectedBody+1))
	if err != nil {
		original.Close()
		return false, errors.Wrap(err, "failed to read response body")
	}

	if len(head) > maxInspectedBody {
		resp.Body = struct {
			io.Reader
			io.Closer
		}{io.MultiReader(bytes.NewReader(head), original), original}
		return false, nil
	}

	original.Close()
	resp.Body = io.NopCloser(bytes.NewReader(head))

	return retry.ShouldRetry(resp.StatusCode, resp.Header, head), nil
}

// lastResponse hands back the final response once retries are exhausted,
// or the error when the attempt failed outright.
func lastResponse(resp *http.Response, err error, _ int) (*http.Response, error) {
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, err
	}
	return resp, nil
}
