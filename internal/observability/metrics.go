package observability

import "time"

// MetricsRecorder receives client-side metrics.
// Implementations can use any metrics library (Prometheus, StatsD, etc.).
type MetricsRecorder interface {
	// RecordHTTPRequest records one logical API call with its final status code.
	// statusCode is 0 when no response was received.
	RecordHTTPRequest(method, path string, statusCode int, duration time.Duration)

	// RecordRetry records a retry of a request that got a transient 503.
	RecordRetry(attempt int, endpoint string)

	// RecordRateLimit records time spent waiting on the client-side rate limiter.
	RecordRateLimit(endpoint string, wait time.Duration)

	// RecordError records a failed call by operation and error type.
	RecordError(operation, errorType string)
}

type noopMetricsRecorder struct{}

// NoopMetricsRecorder returns a recorder that does nothing.
//
//nolint:ireturn // Factory function must return interface for dependency injection pattern
func NoopMetricsRecorder() MetricsRecorder {
	return noopMetricsRecorder{}
}

func (noopMetricsRecorder) RecordHTTPRequest(string, string, int, time.Duration) {}
func (noopMetricsRecorder) RecordRetry(int, string)                              {}
func (noopMetricsRecorder) RecordRateLimit(string, time.Duration)                {}
func (noopMetricsRecorder) RecordError(string, string)                           {}

// MetricsOrNoop returns m, or a no-op recorder when m is nil.
//
//nolint:ireturn // Returns the injected interface unchanged
func MetricsOrNoop(m MetricsRecorder) MetricsRecorder {
	if m == nil {
		return NoopMetricsRecorder()
	}
	return m
}
