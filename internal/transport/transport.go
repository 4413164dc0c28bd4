// Package transport sends authenticated requests to the Streak API and
// classifies the responses.
//
// Every call goes through one middleware chain, outermost first:
//
//	Observability -> RateLimit -> Headers -> BasicAuth -> Retry -> TLS -> base transport
//
// Retry sits inside the rate limiter so that one logical call takes one token.
// Observability sits outside retry so that it reports one logical call.
package transport

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/lexfrei/go-streak/internal/apierrors"
	"github.com/lexfrei/go-streak/internal/httpclient"
	"github.com/lexfrei/go-streak/internal/middleware"
	"github.com/lexfrei/go-streak/internal/observability"
	"github.com/lexfrei/go-streak/internal/query"
)

// Version selects the API generation an endpoint lives under.
type Version string

// API versions.
const (
	V1 Version = "v1"
	V2 Version = "v2"
)

// Created is the payload returned for a non-JSON response carrying a
// Location header: a JSON string "Created".
var Created = json.RawMessage(`"Created"`)

// Config holds the settings captured by New. The transport does not keep
// a reference to it.
type Config struct {
	APIKey    string
	BaseURL   string
	UserAgent string

	// RetryCount is the number of retries after the first attempt.
	RetryCount int
	// RetryWait is the fixed pause between attempts.
	RetryWait time.Duration
	// Timeout bounds one logical call, retries included. Zero keeps the
	// HTTP client's own timeout.
	Timeout time.Duration

	// RateLimiter is shared by every call. nil disables limiting.
	RateLimiter *rate.Limiter
	// HTTPClient is copied, never modified. Its Transport becomes the base
	// of the middleware chain.
	HTTPClient *http.Client
	// TLSConfig is applied to a clone of the base *http.Transport. New fails
	// when HTTPClient carries a Transport of any other type.
	TLSConfig *tls.Config

	Logger  observability.Logger
	Metrics observability.MetricsRecorder
}

// Transport is safe for concurrent use.
type Transport struct {
	baseURL string
	client  *httpclient.Client
	logger  observability.Logger
	metrics observability.MetricsRecorder
}

// New builds a Transport. BaseURL must be an absolute http(s) URL.
func New(cfg Config) (*Transport, error) {
	if cfg.APIKey == "" {
		return nil, apierrors.ErrMissingAPIKey
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, apierrors.Mark(err, apierrors.ErrRequestURL, "invalid base URL")
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, apierrors.Mark(
			errors.Newf("unsupported base URL %q", cfg.BaseURL),
			apierrors.ErrRequestURL, "invalid base URL")
	}

	if cfg.TLSConfig != nil && cfg.HTTPClient != nil && cfg.HTTPClient.Transport != nil {
		if _, ok := cfg.HTTPClient.Transport.(*http.Transport); !ok {
			return nil, errors.Newf("TLSConfig needs HTTPClient.Transport to be *http.Transport, got %T",
				cfg.HTTPClient.Transport)
		}
	}

	logger := observability.LoggerOrNoop(cfg.Logger)
	metrics := observability.MetricsOrNoop(cfg.Metrics)

	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	if cfg.UserAgent != "" {
		headers["User-Agent"] = cfg.UserAgent
	}

	client := httpclient.New(
		httpclient.WithHTTPClient(cfg.HTTPClient),
		httpclient.WithRedirectPolicy(httpclient.NoRedirects),
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithMiddleware(
			middleware.Observability(logger, metrics),
			middleware.RateLimit(middleware.RateLimitConfig{
				Limiter: cfg.RateLimiter,
				Logger:  logger,
				Metrics: metrics,
			}),
			middleware.Headers(headers),
			middleware.BasicAuth(cfg.APIKey),
			middleware.Retry(middleware.RetryConfig{
				MaxRetries: cfg.RetryCount,
				Wait:       cfg.RetryWait,
				Logger:     logger,
				Metrics:    metrics,
			}),
			middleware.TLSConfig(cfg.TLSConfig),
		),
	)

	return &Transport{
		baseURL: strings.TrimRight(base.String(), "/"),
		client:  client,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Get sends a GET for path under version and returns the classified payload.
// params is an optional struct with `url` tags; nil sends no query string.
func (t *Transport) Get(ctx context.Context, version Version, path string, params any) (json.RawMessage, error) {
	return t.do(ctx, http.MethodGet, version, path, params, nil)
}

// URL resolves {base}/{version}/{path}[?{query}]. The "?" is left out when
// there are no query parameters.
func (t *Transport) URL(version Version, path string, params any) (string, error) {
	encoded, err := query.Encode(params)
	if err != nil {
		return "", err
	}

	raw := t.baseURL + "/" + string(version) + "/" + strings.TrimLeft(path, "/")
	if encoded != "" {
		raw += "?" + encoded
	}

	if _, err := url.Parse(raw); err != nil {
		return "", apierrors.Mark(err, apierrors.ErrRequestURL, "invalid request URL")
	}

	return raw, nil
}

func (t *Transport) do(
	ctx context.Context,
	method string,
	version Version,
	path string,
	params any,
	body io.Reader,
) (json.RawMessage, error) {
	operation := method + " " + middleware.NormalizePath("/"+string(version)+"/"+strings.TrimLeft(path, "/"))

	payload, err := t.send(ctx, method, version, path, params, body)
	if err != nil {
		t.metrics.RecordError(operation, apierrors.TypeName(err))
		return nil, err
	}

	return payload, nil
}

func (t *Transport) send(
	ctx context.Context,
	method string,
	version Version,
	path string,
	params any,
	body io.Reader,
) (json.RawMessage, error) {
	target, err := t.URL(version, path, params)
	if err != nil {
		return nil, err
	}

	if body == nil {
		body = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, apierrors.Mark(err, apierrors.ErrRequestURL, "failed to build request")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, apierrors.Mark(err, apierrors.ErrRequest, "failed to send request")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.Mark(err, apierrors.ErrIO, "failed to read response body")
	}

	t.logger.Debug("response received",
		observability.F("status", resp.StatusCode),
		observability.F("bytes", len(raw)),
		observability.F("location", resp.Header.Get("Location")),
	)

	return classify(resp.StatusCode, resp.Header, raw)
}
