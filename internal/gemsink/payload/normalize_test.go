package payload

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNormalize_Object(t *testing.T) {
	docs, err := Normalize(json.RawMessage(`{"Stream":1}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if string(docs[0]) != `{"Stream":1}` {
		t.Errorf("document = %s, want {\"Stream\":1}", docs[0])
	}
}

func TestNormalize_List(t *testing.T) {
	docs, err := Normalize(json.RawMessage(`[{"Stream":1},{"Stream":2}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if string(docs[1]) != `{"Stream":2}` {
		t.Errorf("document 1 = %s", docs[1])
	}
}

func TestNormalize_EmptyList(t *testing.T) {
	docs, err := Normalize(json.RawMessage(`[]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected 0 documents, got %d", len(docs))
	}
}

func TestNormalize_StringWrappedObject(t *testing.T) {
	// the JSON string "{\"Stream\":1}"
	raw := json.RawMessage(`"{\"Stream\":1}"`)
	docs, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	var evt map[string]any
	if err := json.Unmarshal(docs[0], &evt); err != nil {
		t.Fatalf("inner document invalid: %v", err)
	}
	if evt["Stream"] != float64(1) {
		t.Errorf("Stream = %v, want 1", evt["Stream"])
	}
}

func TestNormalize_StringWrappedList(t *testing.T) {
	raw := json.RawMessage(`"[{},{}]"`)
	docs, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
}

func TestNormalize_DoubleWrappedStringRejected(t *testing.T) {
	// a string-encoded JSON string: one unwrap yields another string
	raw := json.RawMessage(`"\"inner\""`)
	_, err := Normalize(raw)
	var uerr *UnsupportedTypeError
	if !errors.As(err, &uerr) {
		t.Fatalf("error = %v, want *UnsupportedTypeError", err)
	}
	if uerr.Type != "string" {
		t.Errorf("Type = %q, want string", uerr.Type)
	}
}

func TestNormalize_StringWrappedInvalidJSON(t *testing.T) {
	raw := json.RawMessage(`"not json at all"`)
	_, err := Normalize(raw)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
}

func TestNormalize_UnsupportedTypes(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantType string
	}{
		{name: "number", raw: `42`, wantType: "number"},
		{name: "negative number", raw: `-1.5`, wantType: "number"},
		{name: "true", raw: `true`, wantType: "bool"},
		{name: "false", raw: `false`, wantType: "bool"},
		{name: "null", raw: `null`, wantType: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(json.RawMessage(tt.raw))
			var uerr *UnsupportedTypeError
			if !errors.As(err, &uerr) {
				t.Fatalf("error = %v, want *UnsupportedTypeError", err)
			}
			if uerr.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", uerr.Type, tt.wantType)
			}
		})
	}
}
