// Package retry decides which responses count as transient unavailability.
package retry

import (
	"encoding/json"
	"net/http"
)

// HasLocation reports whether the response carries a redirect target.
// The API answers some writes with a Location header and no JSON body.
func HasLocation(header http.Header) bool {
	return header.Get("Location") != ""
}

// ShouldRetry reports whether a response is transient unavailability:
// status 503, no Location header, and a body that is not valid JSON.
// A JSON body is a structured answer from the server and is never retried.
func ShouldRetry(statusCode int, header http.Header, body []byte) bool {
	if statusCode != http.StatusServiceUnavailable {
		return false
	}
	if HasLocation(header) {
		return false
	}
	return !json.Valid(body)
}
