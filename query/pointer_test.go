package query

import (
	"errors"
	"reflect"
	"testing"
)

func TestParsePointer(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{"", nil},
		{"#", nil},
		{"/", []string{""}},
		{"/a/b", []string{"a", "b"}},
		{"/a~1b/m~0n", []string{"a/b", "m~n"}},
		{"/a//b", []string{"a", "", "b"}},
		{"#/a%20b", []string{"a b"}},
		{"#/%C3%A9t%C3%A9", []string{"été"}},
		{"#/a~1b", []string{"a/b"}},
	}
	for _, tt := range tests {
		p, err := ParsePointer(tt.expr)
		if err != nil {
			t.Fatalf("ParsePointer(%q): %v", tt.expr, err)
		}
		if got := p.Tokens(); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("ParsePointer(%q) tokens = %q, want %q", tt.expr, got, tt.want)
		}
		if p.String() != tt.expr {
			t.Fatalf("String() = %q", p.String())
		}
	}
}

func TestParsePointer_Errors(t *testing.T) {
	tests := []struct {
		expr   string
		code   PointerErrorCode
		offset int
	}{
		{"a", PointerMissingSolidus, 0},
		{"#a", PointerMissingSolidus, 1},
		{"/a~2", PointerInvalidEscape, 3},
		{"/a~", PointerInvalidEscape, 3},
		{"#/a%2", PointerInvalidPercentEncoding, 3},
		{"#/a%zz", PointerInvalidPercentEncoding, 3},
		{"#/%FF", PointerInvalidPercentEncoding, 2},
		{"#/a b", PointerUnencodedCharacter, 3},
	}
	for _, tt := range tests {
		_, err := ParsePointer(tt.expr)
		var pe *PointerError
		if !errors.As(err, &pe) {
			t.Fatalf("ParsePointer(%q) err = %v, want *PointerError", tt.expr, err)
		}
		if pe.Code != tt.code || pe.Offset != tt.offset {
			t.Fatalf("ParsePointer(%q) = %v at %d, want %v at %d", tt.expr, pe.Code, pe.Offset, tt.code, tt.offset)
		}
	}
}

func TestPointer_Resolve(t *testing.T) {
	doc := map[string]any{
		"a":   map[string]any{"b": "x"},
		"arr": []any{"p", "q"},
		"":    "empty",
		"a/b": "slash",
	}
	tests := []struct {
		expr string
		want any
		ok   bool
	}{
		{"", doc, true},
		{"/a/b", "x", true},
		{"/arr/1", "q", true},
		{"/arr/01", nil, false},
		{"/arr/-", nil, false},
		{"/arr/2", nil, false},
		{"/arr/x", nil, false},
		{"/", "empty", true},
		{"/a~1b", "slash", true},
		{"/a/b/c", nil, false},
		{"/zz", nil, false},
	}
	for _, tt := range tests {
		got, ok := MustParsePointer(tt.expr).Resolve(doc)
		if ok != tt.ok || !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("Resolve(%q) = %v, %v; want %v, %v", tt.expr, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStatus_SyntaxFamily(t *testing.T) {
	if s := syntaxStatus(PointerMissingSolidus); s != 5 || !s.IsSyntaxError() || s.PointerError() != PointerMissingSolidus {
		t.Fatalf("unexpected status %d", s)
	}
	if StatusMissing.IsSyntaxError() || StatusMissing.PointerError() != PointerOK {
		t.Fatalf("missing is not a syntax error")
	}
	if got := Status(42).String(); got != "syntax error: pointer error 38" {
		t.Fatalf("got %q", got)
	}
}
