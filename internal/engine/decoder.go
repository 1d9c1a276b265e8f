package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Tokenizer is the streaming surface shared by encoding/json and go-json
// decoders. Both return encoding/json token types.
type Tokenizer interface {
	Token() (json.Token, error)
	InputOffset() int64
}

type frame struct {
	object       bool
	expectingKey bool
}

type decoderSource struct {
	dec        Tokenizer
	stack      []frame
	lastOffset int64
}

// NewDecoderSource adapts a Tokenizer to a TokenSource, telling object keys
// apart from string values.
func NewDecoderSource(dec Tokenizer) TokenSource {
	return &decoderSource{dec: dec, lastOffset: -1}
}

func (s *decoderSource) NextToken() (Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Token{}, io.EOF
		}
		return Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{object: true, expectingKey: true})
			return Token{Kind: KindBeginObject, Offset: s.lastOffset}, nil
		case '[':
			s.stack = append(s.stack, frame{})
			return Token{Kind: KindBeginArray, Offset: s.lastOffset}, nil
		case '}', ']':
			if n := len(s.stack); n > 0 {
				s.stack = s.stack[:n-1]
			}
			s.valueDone()
			if v == '}' {
				return Token{Kind: KindEndObject, Offset: s.lastOffset}, nil
			}
			return Token{Kind: KindEndArray, Offset: s.lastOffset}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.object && top.expectingKey {
				top.expectingKey = false
				return Token{Kind: KindKey, String: v, Offset: s.lastOffset}, nil
			}
		}
		s.valueDone()
		return Token{Kind: KindString, String: v, Offset: s.lastOffset}, nil
	case bool:
		s.valueDone()
		return Token{Kind: KindBool, Bool: v, Offset: s.lastOffset}, nil
	case json.Number:
		s.valueDone()
		return Token{Kind: KindNumber, Number: string(v), Offset: s.lastOffset}, nil
	case float64:
		s.valueDone()
		return Token{Kind: KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: s.lastOffset}, nil
	case nil:
		s.valueDone()
		return Token{Kind: KindNull, Offset: s.lastOffset}, nil
	}
	return Token{}, fmt.Errorf("unexpected token %T at offset %d", tok, s.lastOffset)
}

// valueDone flips the enclosing object back to key position.
func (s *decoderSource) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.object && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *decoderSource) Location() int64 { return s.lastOffset }
