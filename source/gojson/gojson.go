package gojson

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"

	"github.com/reoring/jsonrec"
	eng "github.com/reoring/jsonrec/internal/engine"
)

// Driver returns a jsonrec.JSONDriver backed by goccy/go-json.
func Driver() jsonrec.JSONDriver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewReader(r io.Reader) jsonrec.Source {
	return jsonrec.SourceFromEngine(NewReader(r))
}
func (driverGoJSON) NewBytes(b []byte) jsonrec.Source {
	return jsonrec.SourceFromEngine(NewBytes(b))
}
func (driverGoJSON) Name() string { return "go-json" }

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return eng.NewDecoderSource(dec)
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }
