package payload

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// Scanner reads consecutive whitespace-separated JSON values from a stream.
// Equipment controllers commonly concatenate report payloads into one file
// without an enclosing array, so no delimiter is required between values.
//
// Usage mirrors bufio.Scanner: call Scan until it returns false, then check
// Err. A nil Err means the input ended cleanly (trailing whitespace is fine).
type Scanner struct {
	dec *json.Decoder
	raw json.RawMessage
	err error
}

// NewScanner returns a Scanner over r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{dec: json.NewDecoder(r)}
}

// NewStringScanner returns a Scanner over an in-memory buffer. Scanning is
// restartable from the start by calling NewStringScanner again.
func NewStringScanner(s string) *Scanner {
	return NewScanner(strings.NewReader(s))
}

// Scan advances to the next JSON value. It returns false at end of input or
// on the first malformed value.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	var raw json.RawMessage
	if err := s.dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return false
		}
		s.err = &ParseError{Offset: s.dec.InputOffset(), Err: err}
		return false
	}
	s.raw = raw
	return true
}

// Value returns the raw JSON value from the last successful Scan.
func (s *Scanner) Value() json.RawMessage { return s.raw }

// Err returns the first error encountered, or nil if the input was consumed
// cleanly.
func (s *Scanner) Err() error { return s.err }

// ScanAll reads every JSON value from r. It is a convenience wrapper for
// callers that want the whole input up front.
func ScanAll(r io.Reader) ([]json.RawMessage, error) {
	var values []json.RawMessage
	sc := NewScanner(r)
	for sc.Scan() {
		values = append(values, sc.Value())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return values, nil
}
