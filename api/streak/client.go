package streak

import (
	"context"
	"crypto/tls"
	"net/http"
	"net/url"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/lexfrei/go-streak/internal/apierrors"
	"github.com/lexfrei/go-streak/internal/ratelimit"
	"github.com/lexfrei/go-streak/internal/response"
	"github.com/lexfrei/go-streak/internal/transport"
	"github.com/lexfrei/go-streak/observability"
)

const (
	// DefaultBaseURL is the Streak API root; the version segment is added per endpoint.
	DefaultBaseURL = "https://www.streak.com/api"

	// DefaultRetryCount is the number of retries after the first attempt
	// when the service is unavailable.
	DefaultRetryCount = 3
	// DefaultRetryWait is the fixed wait between retries.
	DefaultRetryWait = 250 * time.Millisecond
	// DefaultTimeout bounds one call, retries included.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent when ClientConfig.UserAgent is empty.
	DefaultUserAgent = "go-streak"
)

// ClientConfig holds configuration for the Streak API client.
type ClientConfig struct {
	// APIKey is the Streak API key. It is sent as the Basic auth username.
	APIKey string

	// BaseURL is the API root (defaults to https://www.streak.com/api)
	BaseURL string

	// RetryCount is how many times a call is retried when the service is
	// unavailable (defaults to 3). Negative values mean no retries.
	RetryCount int

	// NoRetry disables retries, overriding RetryCount.
	NoRetry bool

	// RetryWait is the fixed wait between retries (defaults to 250ms).
	// Negative values mean retry immediately.
	RetryWait time.Duration

	// Timeout bounds one call including retries (defaults to 30s)
	Timeout time.Duration

	// RateLimitPerMinute caps outgoing calls per minute. Zero means no limit.
	RateLimitPerMinute int

	// HTTPClient is the base HTTP client (optional). It is copied, never modified.
	HTTPClient *http.Client

	// TLSConfig customizes TLS for the default transport (optional).
	// When HTTPClient has a Transport, it must be an *http.Transport or
	// NewWithConfig returns an error.
	TLSConfig *tls.Config

	// UserAgent is sent with every request (defaults to go-streak)
	UserAgent string

	// Logger for observability (optional, uses noop logger if nil)
	Logger observability.Logger

	// Metrics recorder for observability (optional, uses noop recorder if nil)
	Metrics observability.MetricsRecorder
}

// Client is a Streak API client. It is safe for concurrent use; its
// settings are fixed at construction.
type Client struct {
	transport *transport.Transport
}

// Compile-time check to ensure Client implements StreakAPIClient interface.
var _ StreakAPIClient = (*Client)(nil)

// New creates a Streak API client with default settings.
//
// Default settings:
//   - Base URL: https://www.streak.com/api
//   - Retries: 3, 250ms apart, only while the service is unavailable
//   - Timeout: 30 seconds
//   - No client-side rate limit
//
// For custom configuration, use NewWithConfig.
//
// Example:
//
//	client, err := streak.New("your-api-key")
func New(apiKey string) (*Client, error) {
	return NewWithConfig(&ClientConfig{
		APIKey: apiKey,
	})
}

// NewWithConfig creates a Streak API client with custom configuration.
// cfg is read once; later changes to it have no effect on the client.
//
// Example:
//
//	client, err := streak.NewWithConfig(&streak.ClientConfig{
//	    APIKey:     "your-api-key",
//	    RetryCount: 5,
//	    RetryWait:  time.Second,
//	    Logger:     observability.NewSlogLogger(slog.Default()),
//	})
func NewWithConfig(cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.WithStack(ErrMissingAPIKey)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	retryCount := cfg.RetryCount
	switch {
	case cfg.NoRetry || retryCount < 0:
		retryCount = 0
	case retryCount == 0:
		retryCount = DefaultRetryCount
	}

	retryWait := cfg.RetryWait
	switch {
	case retryWait < 0:
		retryWait = 0
	case retryWait == 0:
		retryWait = DefaultRetryWait
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	tr, err := transport.New(transport.Config{
		APIKey:      cfg.APIKey,
		BaseURL:     baseURL,
		UserAgent:   userAgent,
		RetryCount:  retryCount,
		RetryWait:   retryWait,
		Timeout:     timeout,
		RateLimiter: ratelimit.NewRateLimiter(cfg.RateLimitPerMinute, 0),
		HTTPClient:  cfg.HTTPClient,
		TLSConfig:   cfg.TLSConfig,
		Logger:      cfg.Logger,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create API client")
	}

	return &Client{transport: tr}, nil
}

// ListPipelines retrieves every pipeline visible to the API key's user.
func (c *Client) ListPipelines(ctx context.Context) ([]Pipeline, error) {
	raw, err := c.transport.Get(ctx, transport.V1, "pipelines", nil)
	//nolint:wrapcheck // response.DecodeSlice wraps errors internally
	return response.DecodeSlice[Pipeline](raw, err, "failed to list pipelines")
}

// GetPipeline retrieves one pipeline by key.
func (c *Client) GetPipeline(ctx context.Context, pipelineKey string) (*Pipeline, error) {
	path, err := keyPath("pipelines", pipelineKey, "")
	if err != nil {
		return nil, err
	}

	raw, err := c.transport.Get(ctx, transport.V1, path, nil)
	//nolint:wrapcheck // response.Decode wraps errors internally
	return response.Decode[Pipeline](raw, err, "failed to get pipeline")
}

// ListBoxes retrieves the boxes of a pipeline. params may be nil.
// Only the requested page is fetched.
func (c *Client) ListBoxes(ctx context.Context, pipelineKey string, params *ListBoxesParams) ([]Box, error) {
	path, err := keyPath("pipelines", pipelineKey, "boxes")
	if err != nil {
		return nil, err
	}

	raw, err := c.transport.Get(ctx, transport.V1, path, params)
	//nolint:wrapcheck // response.DecodeSlice wraps errors internally
	return response.DecodeSlice[Box](raw, err, "failed to list boxes")
}

// GetBox retrieves one box by key. The endpoint is boxes/{key}.json.
func (c *Client) GetBox(ctx context.Context, boxKey string) (*Box, error) {
	path, err := keyPath("boxes", boxKey, "")
	if err != nil {
		return nil, err
	}
	path += ".json"

	raw, err := c.transport.Get(ctx, transport.V1, path, nil)
	//nolint:wrapcheck // response.Decode wraps errors internally
	return response.Decode[Box](raw, err, "failed to get box")
}

// GetContact retrieves one contact by key from the v2 API.
func (c *Client) GetContact(ctx context.Context, contactKey string) (*Contact, error) {
	path, err := keyPath("contacts", contactKey, "")
	if err != nil {
		return nil, err
	}

	raw, err := c.transport.Get(ctx, transport.V2, path, nil)
	//nolint:wrapcheck // response.Decode wraps errors internally
	return response.Decode[Contact](raw, err, "failed to get contact")
}

// Search searches boxes, contacts and organizations.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	raw, err := c.transport.Get(ctx, transport.V1, "search", params)
	//nolint:wrapcheck // response.Decode wraps errors internally
	return response.Decode[SearchResult](raw, err, "failed to search")
}

// keyPath builds collection/{key}[/suffix] with key escaped as one segment.
func keyPath(collection, key, suffix string) (string, error) {
	if key == "" {
		return "", apierrors.Mark(errors.Newf("empty %s key", collection), apierrors.ErrRequestURL, "invalid request path")
	}

	path := collection + "/" + url.PathEscape(key)
	if suffix != "" {
		path += "/" + suffix
	}
	return path, nil
}
