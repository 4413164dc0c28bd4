package transport

import (
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/lexfrei/go-streak/internal/apierrors"
	"github.com/lexfrei/go-streak/internal/retry"
)

// classify turns a final response into a payload or an error.
//
// A valid JSON body is an answer from the API: 200 and 201 return it,
// anything else becomes an *apierrors.APIError carrying the decoded Status.
// A body that is not JSON is a success only when a Location header is
// present; a 503 is unavailability that outlasted the retries.
func classify(statusCode int, header http.Header, body []byte) (json.RawMessage, error) {
	if json.Valid(body) {
		kind := apierrors.KindForStatus(statusCode)
		if kind == nil {
			return json.RawMessage(body), nil
		}

		var status apierrors.Status
		if err := json.Unmarshal(body, &status); err != nil {
			if !errors.Is(kind, apierrors.ErrUnexpectedStatus) {
				return nil, apierrors.Mark(err, apierrors.ErrJSONParse, "failed to decode error status")
			}
			// Best effort for statuses outside the documented set.
			status = apierrors.Status{}
		}

		return nil, apierrors.NewAPIError(kind, statusCode, status)
	}

	if retry.HasLocation(header) {
		return Created, nil
	}

	if statusCode == http.StatusServiceUnavailable {
		return nil, errors.WithStack(apierrors.ErrServiceUnavailable)
	}

	return nil, errors.WithDetailf(errors.WithStack(apierrors.ErrInvalidServerResponse), "status %d", statusCode)
}
