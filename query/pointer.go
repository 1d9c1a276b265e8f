package query

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

// PointerErrorCode classifies a malformed pointer expression.
type PointerErrorCode int

const (
	PointerOK PointerErrorCode = iota
	// PointerMissingSolidus: a non-empty pointer must start with '/' (or "#/").
	PointerMissingSolidus
	// PointerInvalidEscape: '~' must be followed by '0' or '1'.
	PointerInvalidEscape
	// PointerInvalidPercentEncoding: bad %XX sequence or non UTF-8 result.
	PointerInvalidPercentEncoding
	// PointerUnencodedCharacter: the fragment form requires percent-encoding.
	PointerUnencodedCharacter
)

var pointerErrorText = map[PointerErrorCode]string{
	PointerOK:                     "ok",
	PointerMissingSolidus:         "token must begin with '/'",
	PointerInvalidEscape:          "invalid escape",
	PointerInvalidPercentEncoding: "invalid percent encoding in URI fragment",
	PointerUnencodedCharacter:     "character must be percent encoded in URI fragment",
}

func (c PointerErrorCode) String() string {
	if s, ok := pointerErrorText[c]; ok {
		return s
	}
	return "pointer error " + strconv.Itoa(int(c))
}

// PointerError reports where a pointer expression stopped being valid.
type PointerError struct {
	Path   string
	Code   PointerErrorCode
	Offset int
}

func (e *PointerError) Error() string {
	return fmt.Sprintf("query: pointer %q: %s at offset %d", e.Path, e.Code, e.Offset)
}

// Pointer is a parsed JSON Pointer (RFC 6901), plain or URI fragment form.
type Pointer struct {
	source string
	tokens []string
}

// ParsePointer parses expr. The empty string addresses the whole document.
// Expressions starting with '#' are URI fragments and are percent-decoded.
func ParsePointer(expr string) (Pointer, error) {
	p := Pointer{source: expr}
	i := 0
	fragment := strings.HasPrefix(expr, "#")
	if fragment {
		i++
	}
	if i == len(expr) {
		return p, nil
	}
	fail := func(code PointerErrorCode, at int) (Pointer, error) {
		return Pointer{source: expr}, &PointerError{Path: expr, Code: code, Offset: at}
	}
	if expr[i] != '/' {
		return fail(PointerMissingSolidus, i)
	}
	for i < len(expr) {
		// expr[i] is the separator
		i++
		var tok []byte
		for i < len(expr) && expr[i] != '/' {
			c := expr[i]
			if fragment {
				if c == '%' {
					b, n, ok := percentDecode(expr[i:])
					if !ok {
						return fail(PointerInvalidPercentEncoding, i)
					}
					tok = append(tok, b...)
					i += n
					continue
				}
				if needsPercentEncoding(c) {
					return fail(PointerUnencodedCharacter, i)
				}
			}
			i++
			if c == '~' {
				if i == len(expr) {
					return fail(PointerInvalidEscape, i)
				}
				switch expr[i] {
				case '0':
					c = '~'
				case '1':
					c = '/'
				default:
					return fail(PointerInvalidEscape, i)
				}
				i++
			}
			tok = append(tok, c)
		}
		p.tokens = append(p.tokens, string(tok))
	}
	return p, nil
}

// percentDecode decodes the run of %XX sequences at the start of s that
// forms one UTF-8 character.
func percentDecode(s string) ([]byte, int, bool) {
	var out []byte
	n := 0
	for {
		if n+3 > len(s) || s[n] != '%' {
			return nil, 0, false
		}
		b, err := strconv.ParseUint(s[n+1:n+3], 16, 8)
		if err != nil {
			return nil, 0, false
		}
		out = append(out, byte(b))
		n += 3
		if utf8.FullRune(out) {
			break
		}
	}
	if r, _ := utf8.DecodeRune(out); r == utf8.RuneError {
		return nil, 0, false
	}
	return out, n, true
}

func needsPercentEncoding(c byte) bool {
	switch {
	case '0' <= c && c <= '9', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		return false
	case c == '-', c == '.', c == '_', c == '~':
		return false
	}
	return true
}

// MustParsePointer is ParsePointer that panics on error.
func MustParsePointer(expr string) Pointer {
	p, err := ParsePointer(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Tokens returns the unescaped reference tokens.
func (p Pointer) Tokens() []string { return append([]string(nil), p.tokens...) }

func (p Pointer) String() string { return p.source }

// Resolve walks doc, a tree of map[string]any, []any and scalars as produced
// by a UseNumber decoder. It reports false when a token does not address an
// existing node. "-" and indexes with leading zeros address nothing.
func (p Pointer) Resolve(doc any) (any, bool) {
	cur := doc
	for _, tok := range p.tokens {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[tok]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, ok := arrayIndex(tok)
			if !ok || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

func arrayIndex(tok string) (int, bool) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return i, true
}

// nodeKind names the JSON kind of a tree node for diagnostics.
func nodeKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
