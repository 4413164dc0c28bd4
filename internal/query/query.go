// Package query encodes endpoint parameter structs into URL query strings.
package query

import (
	"reflect"

	"github.com/google/go-querystring/query"

	"github.com/lexfrei/go-streak/internal/apierrors"
)

// Encode renders params as a query string without the leading "?".
//
// params is a struct (or pointer to one) tagged with `url:"name,omitempty"`.
// Unset optional fields are omitted. Slices are written as one key per
// element, in order. A nil params yields "".
func Encode(params any) (string, error) {
	if params == nil {
		return "", nil
	}

	if v := reflect.ValueOf(params); v.Kind() == reflect.Pointer && v.IsNil() {
		return "", nil
	}

	values, err := query.Values(params)
	if err != nil {
		return "", apierrors.Mark(err, apierrors.ErrURLEncode, "failed to encode query parameters")
	}

	return values.Encode(), nil
}
