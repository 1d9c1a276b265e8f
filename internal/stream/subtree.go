package stream

import (
	"io"

	eng "github.com/reoring/jsonrec/internal/engine"
)

// SubtreeSource exposes exactly one JSON value of inner: a primitive or a
// whole object/array. After the value closes it returns io.EOF without
// reading further, so trailing input stays in inner for the next value.
type SubtreeSource struct {
	inner eng.TokenSource
	depth int
	done  bool
}

// NewSubtreeSource constructs a subtree view over the next value in inner.
func NewSubtreeSource(inner eng.TokenSource) *SubtreeSource { return &SubtreeSource{inner: inner} }

func (s *SubtreeSource) NextToken() (eng.Token, error) {
	if s.done {
		return eng.Token{}, io.EOF
	}
	tok, err := s.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	switch tok.Kind {
	case eng.KindBeginObject, eng.KindBeginArray:
		s.depth++
	case eng.KindEndObject, eng.KindEndArray:
		if s.depth > 0 {
			s.depth--
		}
	case eng.KindKey, eng.KindString, eng.KindNumber, eng.KindBool, eng.KindNull:
	}
	if s.depth == 0 {
		s.done = true
	}
	return tok, nil
}

// Done reports whether the value has been fully read.
func (s *SubtreeSource) Done() bool { return s.done }

func (s *SubtreeSource) Location() int64 { return s.inner.Location() }
