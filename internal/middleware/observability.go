package middleware

import (
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/lexfrei/go-streak/internal/observability"
)

// Observability returns a middleware that logs each request and records its
// outcome. Placed outermost, it sees one logical call including retries.
func Observability(logger observability.Logger, metrics observability.MetricsRecorder) func(http.RoundTripper) http.RoundTripper {
	logger = observability.LoggerOrNoop(logger)
	metrics = observability.MetricsOrNoop(metrics)

	return func(next http.RoundTripper) http.RoundTripper {
		return &observabilityTransport{
			next:    next,
			logger:  logger,
			metrics: metrics,
		}
	}
}

type observabilityTransport struct {
	next    http.RoundTripper
	logger  observability.Logger
	metrics observability.MetricsRecorder
}

func (t *observabilityTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	path := NormalizePath(req.URL.Path)

	// The URL never contains credentials; they travel in the Authorization header.
	urlStr := req.URL.String()

	t.logger.Debug("http request started",
		observability.F("method", req.Method),
		observability.F("url", urlStr),
	)

	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.Error("http request failed",
			observability.F("method", req.Method),
			observability.F("url", urlStr),
			observability.F("duration", duration),
			observability.F("error", err.Error()),
		)
		t.metrics.RecordHTTPRequest(req.Method, path, 0, duration)

		//nolint:wrapcheck // Observability middleware logs error but passes it through unchanged
		return nil, err
	}

	fields := []observability.Field{
		observability.F("method", req.Method),
		observability.F("url", urlStr),
		observability.F("status", resp.StatusCode),
		observability.F("duration", duration),
	}

	if resp.StatusCode >= http.StatusBadRequest {
		t.logger.Warn("http request completed with error", fields...)
	} else {
		t.logger.Debug("http request completed", fields...)
	}

	t.metrics.RecordHTTPRequest(req.Method, path, resp.StatusCode, duration)

	return resp, nil
}

// keySegmentPattern matches a Streak entity key used as a path segment.
// Keys are long URL-safe base64 strings; API words and versions are short.
var keySegmentPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{20,}$`)

// normalizedPathCache caches normalized paths; most traffic hits a handful of endpoints.
var normalizedPathCache sync.Map

// NormalizePath replaces entity keys in a path with ":key" so metric labels
// stay bounded.
//
// Examples:
//   - /api/v1/pipelines/agxzfm1haWxmb29nYWVyLAsSDE9yZ2FuaXphdGlvbiIK/boxes → /api/v1/pipelines/:key/boxes
//   - /api/v2/contacts/agxzfm1haWxmb29nYWVyLAsSB0NvbnRhY3QY → /api/v2/contacts/:key
func NormalizePath(path string) string {
	if cached, ok := normalizedPathCache.Load(path); ok {
		//nolint:forcetypeassert // Cache only stores strings
		return cached.(string)
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if keySegmentPattern.MatchString(seg) {
			segments[i] = ":key"
		}
	}
	normalized := strings.Join(segments, "/")

	normalizedPathCache.Store(path, normalized)

	return normalized
}
