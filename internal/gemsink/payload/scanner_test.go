package payload

import (
	"errors"
	"strings"
	"testing"
)

func TestScanner_MultipleValues(t *testing.T) {
	sc := NewStringScanner("{}  {}")

	var values []string
	for sc.Scan() {
		values = append(values, string(sc.Value()))
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(values))
	}
	for i, v := range values {
		if v != "{}" {
			t.Errorf("value %d = %q, want {}", i, v)
		}
	}
}

func TestScanner_MixedValueKinds(t *testing.T) {
	input := "{\"Stream\":1}\n[1,2]\n\"wrapped\"\n"
	sc := NewStringScanner(input)

	var values []string
	for sc.Scan() {
		values = append(values, string(sc.Value()))
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{`{"Stream":1}`, `[1,2]`, `"wrapped"`}
	if len(values) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(values))
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("value %d = %q, want %q", i, values[i], want[i])
		}
	}
}

func TestScanner_NoSeparatingWhitespace(t *testing.T) {
	// values separated only by optional whitespace, including none
	values, err := ScanAll(strings.NewReader(`{}[]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(values))
	}
}

func TestScanner_EmptyAndWhitespaceInput(t *testing.T) {
	for _, input := range []string{"", "   ", " \n\t  \n"} {
		sc := NewStringScanner(input)
		if sc.Scan() {
			t.Errorf("Scan() = true for input %q, want false", input)
		}
		if err := sc.Err(); err != nil {
			t.Errorf("Err() = %v for input %q, want nil", err, input)
		}
	}
}

func TestScanner_TrailingWhitespace(t *testing.T) {
	values, err := ScanAll(strings.NewReader("{} \n\t "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 1 {
		t.Fatalf("expected 1 value, got %d", len(values))
	}
}

func TestScanner_MalformedValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int // values scanned before the error
	}{
		{name: "bare garbage", input: "@", want: 0},
		{name: "garbage after value", input: "{} {bad", want: 1},
		{name: "truncated object", input: `{"Stream":`, want: 0},
		{name: "truncated string", input: `"unterminated`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := NewStringScanner(tt.input)
			got := 0
			for sc.Scan() {
				got++
			}
			if got != tt.want {
				t.Errorf("scanned %d values, want %d", got, tt.want)
			}
			var perr *ParseError
			if !errors.As(sc.Err(), &perr) {
				t.Fatalf("Err() = %v, want *ParseError", sc.Err())
			}
		})
	}
}

func TestScanner_RestartableFromStart(t *testing.T) {
	const input = `{"a":1} {"b":2}`
	first, err := ScanAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, err := ScanAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("pass lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if string(first[i]) != string(second[i]) {
			t.Errorf("value %d differs between passes: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestScanAll_StopsAtFirstError(t *testing.T) {
	values, err := ScanAll(strings.NewReader("{} } {}"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if values != nil {
		t.Errorf("expected no values on error, got %d", len(values))
	}
}
