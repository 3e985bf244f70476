package event

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is a nullable identifier field. Equipment reports carry identifiers
// either as JSON strings or as bare numbers; both decode to the textual
// form, since the destination columns are TEXT.
type ID struct {
	Valid  bool
	String string
}

// NewID returns a valid ID holding s.
func NewID(s string) ID {
	return ID{Valid: true, String: s}
}

func (id *ID) UnmarshalJSON(data []byte) error {
	b := bytes.TrimSpace(data)
	if len(b) == 0 || string(b) == "null" {
		*id = ID{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID{Valid: true, String: s}
		return nil
	}
	// bare number: keep the literal text
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("identifier must be a string or number, got %s", b)
	}
	*id = ID{Valid: true, String: n.String()}
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if !id.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(id.String)
}

// Ptr returns the identifier as a nullable string for row binding.
func (id ID) Ptr() *string {
	if !id.Valid {
		return nil
	}
	s := id.String
	return &s
}
