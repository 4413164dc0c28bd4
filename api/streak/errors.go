package streak

import "github.com/lexfrei/go-streak/internal/apierrors"

// APIError is returned when the API answers with a JSON error body.
// Use errors.As to read the status code and the server's Status.
type APIError = apierrors.APIError

// Status is the error envelope the API sends with non-2xx JSON responses.
type Status = apierrors.Status

// Error kinds. Match them with errors.Is.
var (
	ErrMissingAPIKey = apierrors.ErrMissingAPIKey

	ErrBadRequest          = apierrors.ErrBadRequest
	ErrUnauthorizedKey     = apierrors.ErrUnauthorizedKey
	ErrForbidden           = apierrors.ErrForbidden
	ErrResourceNotFound    = apierrors.ErrResourceNotFound
	ErrInternalServerError = apierrors.ErrInternalServerError
	ErrUnexpectedStatus    = apierrors.ErrUnexpectedStatus

	// ErrServiceUnavailable means every attempt got 503 without a JSON body.
	ErrServiceUnavailable    = apierrors.ErrServiceUnavailable
	ErrInvalidServerResponse = apierrors.ErrInvalidServerResponse

	ErrIO         = apierrors.ErrIO
	ErrJSONParse  = apierrors.ErrJSONParse
	ErrRequest    = apierrors.ErrRequest
	ErrRequestURL = apierrors.ErrRequestURL
	ErrURLEncode  = apierrors.ErrURLEncode
)
