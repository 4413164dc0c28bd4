package middleware

import (
	"maps"
	"net/http"
)

// BasicPassword is the fixed password sent with the API key as username.
const BasicPassword = "X"

// BasicAuth returns a middleware that authenticates every request with HTTP
// Basic credentials: the API key as username and BasicPassword as password.
func BasicAuth(apiKey string) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return &authTransport{
			next:     next,
			username: apiKey,
			password: BasicPassword,
		}
	}
}

type authTransport struct {
	next     http.RoundTripper
	username string
	password string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = cloneRequest(req)
	req.SetBasicAuth(t.username, t.password)

	//nolint:wrapcheck // Middleware passes through errors from next handler in chain
	return t.next.RoundTrip(req)
}

// Headers returns a middleware that sets fixed headers on every request,
// replacing any value already present.
func Headers(headers map[string]string) func(http.RoundTripper) http.RoundTripper {
	fixed := make(http.Header, len(headers))
	for k, v := range headers {
		fixed.Set(k, v)
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return &headerTransport{next: next, headers: fixed}
	}
}

type headerTransport struct {
	next    http.RoundTripper
	headers http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = cloneRequest(req)
	for k, v := range t.headers {
		req.Header[k] = v
	}

	//nolint:wrapcheck // Middleware passes through errors from next handler in chain
	return t.next.RoundTrip(req)
}

// cloneRequest creates a shallow copy of the request with a cloned header map.
func cloneRequest(req *http.Request) *http.Request {
	r := new(http.Request)
	*r = *req
	r.Header = make(http.Header, len(req.Header))
	maps.Copy(r.Header, req.Header)
	return r
}
