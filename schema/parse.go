package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolver maps a record type name to its definition.
type Resolver func(name string) (*RecordType, error)

// SyntaxError reports a malformed type expression.
type SyntaxError struct {
	Expr   string
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("type %q: %s at offset %d", e.Expr, e.Msg, e.Offset)
}

// ParseType parses a type expression such as "list<optional<int32>>",
// "map<rstring,Address>" or "rstring[16]". Names that are not builtin are
// handed to resolve; a nil resolver rejects them.
func ParseType(expr string, resolve Resolver) (*Type, error) {
	p := &typeParser{src: expr, resolve: resolve}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("type %q: %w", expr, err)
	}
	return t, nil
}

// MustParseType is ParseType for builtin-only expressions; it panics on error.
func MustParseType(expr string) *Type {
	t, err := ParseType(expr, nil)
	if err != nil {
		panic(err)
	}
	return t
}

var builtinScalars = map[string]Kind{
	"boolean": KindBool,
	"bool":    KindBool,
	"int8":    KindInt8,
	"int16":   KindInt16,
	"int32":   KindInt32,
	"int64":   KindInt64,
	"uint8":   KindUint8,
	"uint16":  KindUint16,
	"uint32":  KindUint32,
	"uint64":  KindUint64,
	"float32": KindFloat32,
	"float64": KindFloat64,
	"rstring": KindString,
	"ustring": KindString,
	"string":  KindString,
}

type typeParser struct {
	src     string
	pos     int
	resolve Resolver
}

func (p *typeParser) errorf(format string, args ...any) error {
	return &SyntaxError{Expr: p.src, Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '_' || c == '.' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9' && p.pos > start) {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *typeParser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != c {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

func (p *typeParser) peek(c byte) bool {
	p.skipSpace()
	return p.pos < len(p.src) && p.src[p.pos] == c
}

func (p *typeParser) parse() (*Type, error) {
	name := p.ident()
	if name == "" {
		return nil, p.errorf("expected type name")
	}
	switch name {
	case "list", "set", "optional":
		if err := p.expect('<'); err != nil {
			return nil, err
		}
		elem, err := p.parse()
		if err != nil {
			return nil, err
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		switch name {
		case "list":
			return List(elem), nil
		case "set":
			return Set(elem), nil
		default:
			return Optional(elem), nil
		}
	case "map":
		if err := p.expect('<'); err != nil {
			return nil, err
		}
		key, err := p.parse()
		if err != nil {
			return nil, err
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
		val, err := p.parse()
		if err != nil {
			return nil, err
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		return Map(key, val), nil
	}
	if k, ok := builtinScalars[name]; ok {
		if k == KindString && p.peek('[') {
			return p.bound()
		}
		return Scalar(k), nil
	}
	if p.resolve == nil {
		return nil, fmt.Errorf("type %q: unknown type name %q", p.src, name)
	}
	rt, err := p.resolve(name)
	if err != nil {
		return nil, err
	}
	return Of(rt), nil
}

func (p *typeParser) bound() (*Type, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && '0' <= p.src[p.pos] && p.src[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil || n <= 0 {
		p.pos = start
		return nil, p.errorf("expected positive bound")
	}
	if err := p.expect(']'); err != nil {
		return nil, err
	}
	return BoundedString(n), nil
}

// IsBuiltin reports whether name is a builtin scalar or collection keyword.
func IsBuiltin(name string) bool {
	if _, ok := builtinScalars[name]; ok {
		return true
	}
	switch strings.TrimSpace(name) {
	case "list", "set", "map", "optional":
		return true
	}
	return false
}
