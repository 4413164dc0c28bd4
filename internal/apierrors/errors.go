// Package apierrors defines the error taxonomy shared by the Streak client.
package apierrors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrMissingAPIKey is returned when a client is built without an API key.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrBadRequest is the kind of a 400 response with a JSON body.
	ErrBadRequest = errors.New("400 bad request")
	// ErrUnauthorizedKey is the kind of a 401 response with a JSON body.
	ErrUnauthorizedKey = errors.New("401 unauthorized")
	// ErrForbidden is the kind of a 403 response with a JSON body.
	ErrForbidden = errors.New("403 forbidden")
	// ErrResourceNotFound is the kind of a 404 response with a JSON body.
	ErrResourceNotFound = errors.New("404 not found")
	// ErrInternalServerError is the kind of a 500 response with a JSON body.
	ErrInternalServerError = errors.New("500 internal server error")
	// ErrUnexpectedStatus is the kind of any other status that came with a JSON body.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrServiceUnavailable is returned once every retry got a 503 without a JSON body.
	ErrServiceUnavailable = errors.New("503 service unavailable")
	// ErrInvalidServerResponse is returned for a non-JSON, non-redirect, non-retryable response.
	ErrInvalidServerResponse = errors.New("server returned an invalid response")

	// ErrIO marks failures reading a response.
	ErrIO = errors.New("IO error")
	// ErrJSONParse marks failures decoding JSON into a model or status envelope.
	ErrJSONParse = errors.New("JSON parse error")
	// ErrRequest marks failures sending a request.
	ErrRequest = errors.New("request error")
	// ErrRequestURL marks failures building the outbound URL.
	ErrRequestURL = errors.New("request URL error")
	// ErrURLEncode marks failures encoding query parameters.
	ErrURLEncode = errors.New("request URL encode error")
)

// Status is the envelope the API returns alongside every non-2xx JSON response.
type Status struct {
	Code  *int   `json:"code"`
	Error string `json:"error"`
}

// APIError is a terminal error classified from the response status code.
// Kind is one of the status sentinels above and is what errors.Is matches.
type APIError struct {
	Kind       error
	StatusCode int
	Status     Status
}

// NewAPIError builds an APIError of the given kind.
func NewAPIError(kind error, statusCode int, status Status) *APIError {
	return &APIError{
		Kind:       kind,
		StatusCode: statusCode,
		Status:     status,
	}
}

// Error renders the kind with the server's message.
func (e *APIError) Error() string {
	switch e.Kind {
	case ErrBadRequest:
		return "Bad Request: " + e.Status.Error
	case ErrUnauthorizedKey:
		return "Unauthorized API Key: " + e.Status.Error
	case ErrForbidden:
		return "Forbidden: " + e.Status.Error
	case ErrResourceNotFound:
		return "Resource Not Found: " + e.Status.Error
	case ErrInternalServerError:
		return "Internal Server Error: " + e.Status.Error
	}

	text := http.StatusText(e.StatusCode)
	if text == "" {
		text = "unknown"
	}
	if e.Status.Error != "" {
		return fmt.Sprintf("Unexpected status %d (%s): %s", e.StatusCode, text, e.Status.Error)
	}
	return fmt.Sprintf("Unexpected status %d (%s)", e.StatusCode, text)
}

// Unwrap exposes the kind so errors.Is(err, ErrResourceNotFound) works.
func (e *APIError) Unwrap() error {
	return e.Kind
}

// KindForStatus maps a status code to the kind used for JSON error bodies.
// Success codes map to nil.
func KindForStatus(statusCode int) error {
	switch statusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorizedKey
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrResourceNotFound
	case http.StatusInternalServerError:
		return ErrInternalServerError
	default:
		return ErrUnexpectedStatus
	}
}

// Mark wraps cause with msg and tags it with kind, keeping cause's message.
// Both errors.Is from this module's errors library and the standard
// library match kind and cause.
func Mark(cause error, kind error, msg string) error {
	return &markedError{
		err:  errors.Mark(errors.Wrap(cause, msg), kind),
		kind: kind,
	}
}

type markedError struct {
	err  error
	kind error
}

func (e *markedError) Error() string { return e.err.Error() }
func (e *markedError) Unwrap() error { return e.err }

// Is matches the kind for the standard library, which does not see marks.
func (e *markedError) Is(target error) bool { return target == e.kind }

// TypeName returns a short label for err suitable for metrics.
func TypeName(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBadRequest):
		return "BadRequest"
	case errors.Is(err, ErrUnauthorizedKey):
		return "UnauthorizedKey"
	case errors.Is(err, ErrForbidden):
		return "Forbidden"
	case errors.Is(err, ErrResourceNotFound):
		return "ResourceNotFound"
	case errors.Is(err, ErrInternalServerError):
		return "InternalServerError"
	case errors.Is(err, ErrUnexpectedStatus):
		return "UnexpectedStatus"
	case errors.Is(err, ErrServiceUnavailable):
		return "ServiceUnavailable"
	case errors.Is(err, ErrInvalidServerResponse):
		return "InvalidServerResponse"
	case errors.Is(err, ErrIO):
		return "IoError"
	case errors.Is(err, ErrJSONParse):
		return "JsonParseError"
	case errors.Is(err, ErrRequestURL):
		return "RequestUrlError"
	case errors.Is(err, ErrURLEncode):
		return "RequestUrlEncodeError"
	case errors.Is(err, ErrRequest):
		return "RequestError"
	default:
		return "Unknown"
	}
}
