package payload

import "fmt"

// ParseError indicates malformed JSON in an ingest input. It is fatal for
// the whole input: nothing scanned so far is kept.
type ParseError struct {
	Offset int64 // byte offset into the input, 0 if unknown
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("malformed JSON near byte %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("malformed JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnsupportedTypeError indicates a scanned payload that is not a string,
// object, or array after normalization.
type UnsupportedTypeError struct {
	Type string // JSON type name: "number", "bool", "null", "string"
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported payload type: %s", e.Type)
}
