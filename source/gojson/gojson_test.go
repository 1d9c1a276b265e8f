package gojson

import (
	"io"
	"testing"

	eng "github.com/reoring/jsonrec/internal/engine"
)

func TestNewBytes_TellsKeysFromStrings(t *testing.T) {
	src := NewBytes([]byte(`{"k":"v","n":12.50,"b":[true,null]}`))
	want := []eng.Kind{
		eng.KindBeginObject,
		eng.KindKey, eng.KindString,
		eng.KindKey, eng.KindNumber,
		eng.KindKey, eng.KindBeginArray, eng.KindBool, eng.KindNull, eng.KindEndArray,
		eng.KindEndObject,
	}
	var numbers []string
	for i, k := range want {
		tok, err := src.NextToken()
		if err != nil {
			t.Fatalf("token %d: %v", i, err)
		}
		if tok.Kind != k {
			t.Fatalf("token %d: kind %v, want %v", i, tok.Kind, k)
		}
		if tok.Kind == eng.KindNumber {
			numbers = append(numbers, tok.Number)
		}
	}
	if _, err := src.NextToken(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if len(numbers) != 1 || numbers[0] != "12.50" {
		t.Fatalf("numbers = %q", numbers)
	}
}

func TestDriver_Name(t *testing.T) {
	if Driver().Name() != "go-json" {
		t.Fatalf("unexpected name %q", Driver().Name())
	}
}
