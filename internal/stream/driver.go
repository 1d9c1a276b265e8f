// Package stream pumps token sources into event handlers.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"

	eng "github.com/reoring/jsonrec/internal/engine"
)

// Handler receives one callback per token. Returning false stops the pump.
// EndObject and EndArray receive the member count of the closed container.
type Handler interface {
	Key(name string) bool
	Null() bool
	Bool(b bool) bool
	Number(text string) bool
	String(s string) bool
	StartObject() bool
	EndObject(members int) bool
	StartArray() bool
	EndArray(elements int) bool
}

// ErrIncomplete is returned when input ends inside an open container.
var ErrIncomplete = errors.New("unexpected end of JSON input")

// Result summarizes one pump run.
type Result struct {
	Tokens  int
	Stopped bool
}

// Driver delivers the tokens of a single JSON value to a Handler.
type Driver struct {
	h    Handler
	open []container
}

type container struct {
	array   bool
	members int
}

// NewDriver creates a new streaming driver for h.
func NewDriver(h Handler) *Driver { return &Driver{h: h} }

// Run reads one JSON value from src. It returns when the value closes, the
// handler asks to stop, the source fails or ctx is cancelled. Empty input
// returns io.EOF.
func (d *Driver) Run(ctx context.Context, src eng.TokenSource) (Result, error) {
	var res Result
	d.open = d.open[:0]
	sub := NewSubtreeSource(src)
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		tok, err := sub.NextToken()
		if err != nil {
			if errors.Is(err, io.EOF) {
				switch {
				case res.Tokens == 0:
					return res, io.EOF
				case !sub.Done():
					return res, ErrIncomplete
				}
				return res, nil
			}
			return res, err
		}
		res.Tokens++
		if !d.dispatch(tok) {
			res.Stopped = true
			return res, nil
		}
	}
}

func (d *Driver) dispatch(tok eng.Token) bool {
	switch tok.Kind {
	case eng.KindKey:
		if n := len(d.open); n > 0 {
			d.open[n-1].members++
		}
		return d.h.Key(tok.String)
	case eng.KindBeginObject:
		d.countValue()
		d.open = append(d.open, container{})
		return d.h.StartObject()
	case eng.KindBeginArray:
		d.countValue()
		d.open = append(d.open, container{array: true})
		return d.h.StartArray()
	case eng.KindEndObject:
		return d.h.EndObject(d.pop())
	case eng.KindEndArray:
		return d.h.EndArray(d.pop())
	case eng.KindString:
		d.countValue()
		return d.h.String(tok.String)
	case eng.KindNumber:
		d.countValue()
		return d.h.Number(tok.Number)
	case eng.KindBool:
		d.countValue()
		return d.h.Bool(tok.Bool)
	case eng.KindNull:
		d.countValue()
		return d.h.Null()
	}
	panic(fmt.Sprintf("stream: unknown token kind %v", tok.Kind))
}

// countValue counts array elements; object members are counted by key.
func (d *Driver) countValue() {
	if n := len(d.open); n > 0 && d.open[n-1].array {
		d.open[n-1].members++
	}
}

func (d *Driver) pop() int {
	n := len(d.open)
	if n == 0 {
		return 0
	}
	c := d.open[n-1].members
	d.open = d.open[:n-1]
	return c
}
