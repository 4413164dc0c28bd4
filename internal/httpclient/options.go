package httpclient

import (
	"net/http"
	"time"
)

// Option is a functional option for configuring the HTTP client.
type Option func(*Client)

// WithHTTPClient uses a copy of client as the base.
// The caller's client is never modified; its Timeout, Jar and Transport are kept,
// and its CheckRedirect policy is kept only when WithRedirectPolicy is not given.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client == nil {
			return
		}
		clone := *client
		if clone.CheckRedirect == nil {
			clone.CheckRedirect = NoRedirects
		}
		c.base = &clone
	}
}

// WithTimeout sets the request timeout. Zero leaves the current value.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.base.Timeout = timeout
		}
	}
}

// WithTransport sets the HTTP transport.
// Note: If middleware is also configured, the transport will be wrapped.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.base.Transport = transport
	}
}

// WithRedirectPolicy overrides the CheckRedirect policy. nil restores the
// net/http default of following up to 10 redirects.
func WithRedirectPolicy(policy func(*http.Request, []*http.Request) error) Option {
	return func(c *Client) {
		c.base.CheckRedirect = policy
	}
}

// WithMiddleware adds middleware to the client.
// Middleware is applied in reverse order to create the chain:
// first middleware in the slice becomes the outermost layer.
//
// Example:
//
//	WithMiddleware(A, B, C) creates chain: A(B(C(transport)))
//	Request flow: A -> B -> C -> transport -> server
//	Response flow: server -> transport -> C -> B -> A
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, middleware...)
	}
}
