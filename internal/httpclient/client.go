// Package httpclient builds the *http.Client used by the Streak transport.
package httpclient

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds one logical call, retries included.
const DefaultTimeout = 30 * time.Second

// Client is an HTTP client that supports middleware chaining.
type Client struct {
	base       *http.Client
	middleware []Middleware
}

// Middleware wraps an http.RoundTripper to add behavior.
// Middleware is applied in order: first middleware is outermost.
type Middleware func(http.RoundTripper) http.RoundTripper

// New creates an HTTP client with the given options.
// Redirects are not followed unless WithRedirectPolicy says otherwise,
// so callers always see the Location header of the first response.
func New(opts ...Option) *Client {
	c := &Client{
		base: &http.Client{
			Timeout:       DefaultTimeout,
			CheckRedirect: NoRedirects,
		},
		middleware: []Middleware{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if len(c.middleware) > 0 {
		transport := c.base.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}

		// Apply middleware in reverse order so first middleware is outermost
		for i := len(c.middleware) - 1; i >= 0; i-- {
			transport = c.middleware[i](transport)
		}

		c.base.Transport = transport
	}

	return c
}

// Do executes an HTTP request using the configured middleware chain.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	//nolint:wrapcheck // Transport classifies and wraps errors
	return c.base.Do(req)
}

// HTTPClient returns the underlying http.Client.
func (c *Client) HTTPClient() *http.Client {
	return c.base
}

// NoRedirects is a CheckRedirect policy that returns the first response as is.
func NoRedirects(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}
