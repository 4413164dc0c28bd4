package middleware

import (
	"crypto/tls"
	"net/http"
)

// TLSConfig returns a middleware that applies config to the base transport.
// It must be the innermost middleware: it replaces next with a cloned
// *http.Transport carrying config. If next is not an *http.Transport
// (a test fake, for example) it is returned unchanged; transport.New rejects
// that combination for callers before the chain is built.
//
// Cloning leaves the caller's settings alone, but http.Transport.Clone may
// set HTTP/2 defaults (TLSClientConfig.NextProtos) on next as a side effect.
func TLSConfig(config *tls.Config) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		if config == nil {
			return next
		}

		transport, ok := next.(*http.Transport)
		if !ok {
			return next
		}

		transport = transport.Clone()
		transport.TLSClientConfig = config.Clone()

		return transport
	}
}
