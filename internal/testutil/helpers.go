// Package testutil provides common testing utilities and helpers.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Response is one canned reply of a mock server.
type Response struct {
	Body       string
	StatusCode int
	// ContentType defaults to application/json. Streak sets it even on
	// HTML error pages, so classification must not rely on it.
	ContentType string
	Header      map[string]string
}

func (r Response) write(t *testing.T, w http.ResponseWriter) {
	t.Helper()

	contentType := r.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	for k, v := range r.Header {
		w.Header().Set(k, v)
	}

	w.WriteHeader(r.StatusCode)
	_, err := w.Write([]byte(r.Body))
	assert.NoError(t, err, "Failed to write response body")
}

// AssertBasicAuth checks that r carries the API key as Basic username.
func AssertBasicAuth(t *testing.T, r *http.Request, apiKey string) {
	t.Helper()

	username, password, ok := r.BasicAuth()
	assert.True(t, ok, "Authorization header should carry Basic credentials")
	assert.Equal(t, apiKey, username, "Basic username should be the API key")
	assert.Equal(t, "X", password, "Basic password should be X")
}

// NewMockServer creates a test HTTP server with predefined response.
// It validates the request path and, if apiKey is set, the Basic credentials.
func NewMockServer(t *testing.T, expectedPath, apiKey, responseBody string, statusCode int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, expectedPath, r.URL.Path, "Request path should match expected")
		assert.Equal(t, http.MethodGet, r.Method)

		if apiKey != "" {
			AssertBasicAuth(t, r, apiKey)
		}

		Response{Body: responseBody, StatusCode: statusCode}.write(t, w)
	}))
	t.Cleanup(server.Close)

	return server
}

// NewMockServerWithHandler creates a test HTTP server with custom handler.
// Use this for more complex test scenarios that need custom request handling.
func NewMockServerWithHandler(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}

// NewMockServerMulti creates a test HTTP server with multiple path handlers.
// The handlers map keys are URL paths, values are handler functions.
func NewMockServerMulti(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("Unexpected request path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	return server
}

// SequenceServer returns canned responses in order and counts requests.
type SequenceServer struct {
	*httptest.Server
	hits atomic.Int32
}

// Hits returns how many requests the server has received.
func (s *SequenceServer) Hits() int {
	return int(s.hits.Load())
}

// NewMockServerSequence creates a test server that returns responses in sequence.
// Each call to the server returns the next response in the slice.
// Useful for testing retry logic.
func NewMockServerSequence(t *testing.T, responses ...Response) *SequenceServer {
	t.Helper()

	seq := &SequenceServer{}
	seq.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := int(seq.hits.Add(1)) - 1
		if n >= len(responses) {
			t.Errorf("More requests than configured responses (got %d requests, have %d responses)",
				n+1, len(responses))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		responses[n].write(t, w)
	}))
	t.Cleanup(seq.Close)

	return seq
}

// Repeat returns n copies of resp, for building sequences.
func Repeat(resp Response, n int) []Response {
	out := make([]Response, n)
	for i := range out {
		out[i] = resp
	}
	return out
}

// AssertAPIError checks that err is not nil and matches kind.
func AssertAPIError(t *testing.T, err error, kind error, msgAndArgs ...interface{}) {
	t.Helper()

	require.Error(t, err, msgAndArgs...)
	assert.True(t, errors.Is(err, kind), "error %q should match %q", err, kind)
}
