// Package response decodes raw API payloads into typed models.
package response

import (
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/lexfrei/go-streak/internal/apierrors"
)

// Decode turns the result of a transport call into a *T.
// A transport error is wrapped with errorMsg; a payload that does not fit T
// is marked ErrJSONParse.
//
// Usage:
//
//	raw, err := c.transport.Get(ctx, transport.V1, "pipelines/"+key, nil)
//	return response.Decode[Pipeline](raw, err, "failed to get pipeline")
func Decode[T any](raw json.RawMessage, err error, errorMsg string) (*T, error) {
	if err != nil {
		return nil, errors.Wrap(err, errorMsg)
	}

	var data T
	if decodeErr := json.Unmarshal(raw, &data); decodeErr != nil {
		return nil, apierrors.Mark(decodeErr, apierrors.ErrJSONParse, errorMsg)
	}

	return &data, nil
}

// DecodeSlice is like Decode for endpoints returning a JSON array.
// A JSON null yields an empty, non-nil slice.
func DecodeSlice[T any](raw json.RawMessage, err error, errorMsg string) ([]T, error) {
	items, err := Decode[[]T](raw, err, errorMsg)
	if err != nil {
		return nil, err
	}

	if *items == nil {
		return []T{}, nil
	}

	return *items, nil
}
