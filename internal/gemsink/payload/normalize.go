package payload

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Normalize coerces one scanned JSON value into a list of raw event
// documents. A JSON string is unwrapped once (some equipment forwards
// reports string-encoded through intermediate brokers); an object becomes a
// single-element list; an array is returned element by element with no deep
// validation. Any other value fails with an UnsupportedTypeError naming the
// offending JSON type.
//
// A doubly string-wrapped payload is rejected, not unwrapped recursively.
func Normalize(raw json.RawMessage) ([]json.RawMessage, error) {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 {
		return nil, &UnsupportedTypeError{Type: "null"}
	}

	if b[0] == '"' {
		var inner string
		if err := json.Unmarshal(b, &inner); err != nil {
			return nil, &ParseError{Err: err}
		}
		b = bytes.TrimSpace([]byte(inner))
		if len(b) == 0 || !json.Valid(b) {
			return nil, &ParseError{Err: errInvalidWrapped}
		}
		if b[0] == '"' {
			// one level of string wrapping only
			return nil, &UnsupportedTypeError{Type: "string"}
		}
	}

	switch b[0] {
	case '{':
		return []json.RawMessage{json.RawMessage(b)}, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(b, &items); err != nil {
			return nil, &ParseError{Err: err}
		}
		return items, nil
	default:
		return nil, &UnsupportedTypeError{Type: typeName(b[0])}
	}
}

// typeName maps the first byte of a JSON value to its type name.
func typeName(c byte) string {
	switch c {
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	case '"':
		return "string"
	default:
		return "number"
	}
}

var errInvalidWrapped = errors.New("string-wrapped payload is not valid JSON")
