// Package query resolves JSON Pointer paths against a parsed JSON document
// and converts the addressed node into a requested Go type, reporting how
// the value was obtained as a Status.
package query

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/reoring/jsonrec/logger"
)

// ParseErrorCode classifies a failed parse. Values are stable.
type ParseErrorCode int

const (
	ParseErrNone          ParseErrorCode = 0
	ParseErrDocumentEmpty ParseErrorCode = 1
	ParseErrValueInvalid  ParseErrorCode = 3
	ParseErrUnspecific    ParseErrorCode = 17
)

func (c ParseErrorCode) String() string {
	switch c {
	case ParseErrNone:
		return "no error"
	case ParseErrDocumentEmpty:
		return "the document is empty"
	case ParseErrValueInvalid:
		return "invalid value"
	}
	return "unspecific syntax error"
}

// ParseError is returned by Context.Parse.
type ParseError struct {
	Code   ParseErrorCode
	Offset int64
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("query: parse: %s at offset %d", e.Code, e.Offset)
	}
	return fmt.Sprintf("query: parse: %s at offset %d: %v", e.Code, e.Offset, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// ErrNotParsed is returned by queries on a Context that never parsed.
var ErrNotParsed = errors.New("query: no document parsed in this context")

// Context holds the document most recently parsed by one worker. A failed
// parse leaves an empty object behind, so later queries report missing
// values instead of answers from an older document.
//
// A Context must not be shared between goroutines; give each worker its own.
type Context struct {
	doc    any
	parsed bool
}

func NewContext() *Context { return &Context{} }

// Parse replaces the document with the first JSON value in text. Content
// after that value is not examined.
func (c *Context) Parse(text []byte) error {
	c.parsed = true
	c.doc = map[string]any{}

	trimmed := bytes.TrimLeft(text, " \t\r\n")
	if len(trimmed) == 0 {
		return &ParseError{Code: ParseErrDocumentEmpty, Offset: int64(len(text))}
	}

	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return classify(err, text)
	}
	c.doc = doc
	logger.TraceMessage("query: parsed %s document", nodeKind(doc))
	return nil
}

// ParseString is Parse for string input.
func (c *Context) ParseString(text string) error { return c.Parse([]byte(text)) }

// ParseCode parses text and returns only the error code, logging failures.
func (c *Context) ParseCode(text string) ParseErrorCode {
	err := c.ParseString(text)
	if err == nil {
		return ParseErrNone
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		logger.ErrorMessage("query: %v", err)
		return ParseErrUnspecific
	}
	logger.ErrorMessage("query: %s at offset %d", pe.Code, pe.Offset)
	return pe.Code
}

// Parsed reports whether Parse was called at least once.
func (c *Context) Parsed() bool { return c.parsed }

// Document returns the current tree; nil before the first parse.
func (c *Context) Document() any { return c.doc }

// Lookup resolves path. The status is StatusExact when a non-null node was
// found, otherwise it tells why not.
func (c *Context) Lookup(path string) (any, Status, error) {
	if !c.parsed {
		return nil, StatusMissing, ErrNotParsed
	}
	p, err := ParsePointer(path)
	if err != nil {
		var pe *PointerError
		if errors.As(err, &pe) {
			return nil, syntaxStatus(pe.Code), nil
		}
		return nil, StatusMissing, nil
	}
	node, ok := p.Resolve(c.doc)
	switch {
	case !ok:
		return nil, StatusMissing, nil
	case node == nil:
		return nil, StatusNull, nil
	}
	return node, StatusExact, nil
}

func classify(err error, text []byte) *ParseError {
	var se *json.SyntaxError
	switch {
	case errors.As(err, &se):
		return &ParseError{Code: ParseErrValueInvalid, Offset: se.Offset, Cause: err}
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return &ParseError{Code: ParseErrValueInvalid, Offset: int64(len(text)), Cause: err}
	}
	return &ParseError{Code: ParseErrUnspecific, Offset: -1, Cause: err}
}
