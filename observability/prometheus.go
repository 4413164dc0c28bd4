package observability

import (
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements MetricsRecorder with Prometheus collectors.
type PrometheusRecorder struct {
	requestCounter   *prometheus.CounterVec
	requestHistogram *prometheus.HistogramVec
	retryCounter     *prometheus.CounterVec
	rateLimitWait    *prometheus.HistogramVec
	errorCounter     *prometheus.CounterVec
}

var _ MetricsRecorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder creates the client collectors under namespace and
// registers them with reg. A nil reg means prometheus.DefaultRegisterer.
func NewPrometheusRecorder(reg prometheus.Registerer, namespace string) (*PrometheusRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &PrometheusRecorder{
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Number of Streak API calls by final status code.",
			},
			[]string{"method", "path", "status"},
		),
		requestHistogram: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Streak API call duration, including retries.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"method", "path"},
		),
		retryCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "retries_total",
				Help:      "Number of retries after a transient 503.",
			},
			[]string{"endpoint"},
		),
		rateLimitWait: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rate_limit_wait_seconds",
				Help:      "Time spent waiting on the client-side rate limiter.",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
			},
			[]string{"endpoint"},
		),
		errorCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Number of failed Streak API calls by error type.",
			},
			[]string{"operation", "type"},
		),
	}

	for _, c := range []prometheus.Collector{
		r.requestCounter,
		r.requestHistogram,
		r.retryCounter,
		r.rateLimitWait,
		r.errorCounter,
	} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register streak collector")
		}
	}

	return r, nil
}

// RecordHTTPRequest implements MetricsRecorder.
func (r *PrometheusRecorder) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	r.requestCounter.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	r.requestHistogram.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordRetry implements MetricsRecorder.
func (r *PrometheusRecorder) RecordRetry(_ int, endpoint string) {
	r.retryCounter.WithLabelValues(endpoint).Inc()
}

// RecordRateLimit implements MetricsRecorder.
func (r *PrometheusRecorder) RecordRateLimit(endpoint string, wait time.Duration) {
	r.rateLimitWait.WithLabelValues(endpoint).Observe(wait.Seconds())
}

// RecordError implements MetricsRecorder.
func (r *PrometheusRecorder) RecordError(operation, errorType string) {
	r.errorCounter.WithLabelValues(operation, errorType).Inc()
}
