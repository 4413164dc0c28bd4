// Package observability provides the logging and metrics hooks of the
// go-streak client, plus ready-made adapters.
//
// # Logger Interface
//
// The Logger interface supports structured logging with key-value pairs:
//
//	client, err := streak.NewWithConfig(&streak.ClientConfig{
//		APIKey: apiKey,
//		Logger: observability.NewSlogLogger(slog.Default()),
//	})
//
// NewLogrusLogger does the same for a logrus.FieldLogger.
//
// # MetricsRecorder Interface
//
// The MetricsRecorder interface tracks:
//   - API calls by method, normalized path, status code and duration
//   - Retries after a transient 503
//   - Client-side rate limiter waits
//   - Errors by operation and type
//
// NewPrometheusRecorder registers Prometheus collectors and implements it:
//
//	metrics, err := observability.NewPrometheusRecorder(prometheus.DefaultRegisterer, "streak")
//	client, err := streak.NewWithConfig(&streak.ClientConfig{
//		APIKey:  apiKey,
//		Metrics: metrics,
//	})
//
// # Default Behavior
//
// If no logger or metrics recorder is provided, the client uses no-op
// implementations that discard all events.
package observability
