package streak

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/cockroachdb/errors"
)

// FieldKind is the JSON shape of a custom field value.
type FieldKind int

const (
	// FieldUnset is a JSON null or a missing value.
	FieldUnset FieldKind = iota
	// FieldInteger is a whole number, used by number and date fields.
	FieldInteger
	// FieldBool is used by checkbox fields.
	FieldBool
	// FieldString is used by text and dropdown fields.
	FieldString
	// FieldArray is used by tag and multi-select fields.
	FieldArray
)

// String returns the lowercase kind name.
func (k FieldKind) String() string {
	switch k {
	case FieldUnset:
		return "unset"
	case FieldInteger:
		return "integer"
	case FieldBool:
		return "bool"
	case FieldString:
		return "string"
	case FieldArray:
		return "array"
	default:
		return "FieldKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// FieldValue is the value of a box custom field. The API sends integers,
// booleans, strings or arrays; which one depends on the pipeline field type.
// The zero value is unset and encodes as null.
type FieldValue struct {
	kind  FieldKind
	i     int64
	b     bool
	s     string
	items []json.RawMessage
}

// IntegerField builds an integer value.
func IntegerField(v int64) FieldValue { return FieldValue{kind: FieldInteger, i: v} }

// BoolField builds a boolean value.
func BoolField(v bool) FieldValue { return FieldValue{kind: FieldBool, b: v} }

// StringField builds a string value.
func StringField(v string) FieldValue { return FieldValue{kind: FieldString, s: v} }

// ArrayField builds an array value from raw JSON elements.
func ArrayField(items ...json.RawMessage) FieldValue {
	if items == nil {
		items = []json.RawMessage{}
	}
	return FieldValue{kind: FieldArray, items: items}
}

// Kind reports which shape the value holds.
func (v FieldValue) Kind() FieldKind { return v.kind }

// IsSet reports whether the value is anything but null.
func (v FieldValue) IsSet() bool { return v.kind != FieldUnset }

// AsInteger returns the integer and true, or false for any other kind.
func (v FieldValue) AsInteger() (int64, bool) { return v.i, v.kind == FieldInteger }

// AsBool returns the boolean and true, or false for any other kind.
func (v FieldValue) AsBool() (bool, bool) { return v.b, v.kind == FieldBool }

// AsString returns the string and true, or false for any other kind.
func (v FieldValue) AsString() (string, bool) { return v.s, v.kind == FieldString }

// AsArray returns the raw elements of an array value. Decode them with
// json.Unmarshal; their shape depends on the field type.
func (v FieldValue) AsArray() ([]json.RawMessage, bool) {
	return v.items, v.kind == FieldArray
}

// String renders the value for display. Arrays are rendered as JSON.
func (v FieldValue) String() string {
	switch v.kind {
	case FieldInteger:
		return strconv.FormatInt(v.i, 10)
	case FieldBool:
		return strconv.FormatBool(v.b)
	case FieldString:
		return v.s
	case FieldArray:
		raw, err := json.Marshal(v.items)
		if err != nil {
			return "[]"
		}
		return string(raw)
	default:
		return ""
	}
}

// MarshalJSON encodes the value in its JSON shape; unset encodes as null.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case FieldInteger:
		return strconv.AppendInt(nil, v.i, 10), nil
	case FieldBool:
		return strconv.AppendBool(nil, v.b), nil
	case FieldString:
		//nolint:wrapcheck // Marshaling a string cannot fail
		return json.Marshal(v.s)
	case FieldArray:
		items := v.items
		if items == nil {
			items = []json.RawMessage{}
		}
		raw, err := json.Marshal(items)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode array field value")
		}
		return raw, nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, integers, booleans, strings and arrays.
// Floats and objects are rejected.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty field value")
	}

	switch data[0] {
	case 'n':
		if !bytes.Equal(data, []byte("null")) {
			return errors.Newf("invalid field value %s", data)
		}
		*v = FieldValue{}
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return errors.Wrap(err, "invalid boolean field value")
		}
		*v = BoolField(b)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Wrap(err, "invalid string field value")
		}
		*v = StringField(s)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return errors.Wrap(err, "invalid array field value")
		}
		*v = ArrayField(items...)
	case '{':
		return errors.Newf("unsupported object field value %s", data)
	default:
		i, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return errors.Wrapf(err, "field value %s is not an integer", data)
		}
		*v = IntegerField(i)
	}

	return nil
}
