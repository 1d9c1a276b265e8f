package query

import "strconv"

// Status tells how a query obtained its value. Codes 0 to 4 are stable.
// Codes above StatusMissing are pointer syntax errors: the PointerErrorCode
// plus StatusMissing. Treat unknown codes above StatusMissing as "some
// syntax error".
type Status int

const (
	// StatusExact: the node had the requested kind.
	StatusExact Status = iota
	// StatusCoerced: the node was converted from another kind.
	StatusCoerced
	// StatusMismatch: the node exists but cannot become the requested kind.
	StatusMismatch
	// StatusNull: the node is JSON null.
	StatusNull
	// StatusMissing: no document, or the path addresses nothing.
	StatusMissing
)

func syntaxStatus(code PointerErrorCode) Status { return StatusMissing + Status(code) }

// IsSyntaxError reports whether the path could not be parsed.
func (s Status) IsSyntaxError() bool { return s > StatusMissing }

// PointerError returns the pointer error behind a syntax status.
func (s Status) PointerError() PointerErrorCode {
	if !s.IsSyntaxError() {
		return PointerOK
	}
	return PointerErrorCode(s - StatusMissing)
}

// OK reports whether a value was obtained, exactly or by coercion.
func (s Status) OK() bool { return s == StatusExact || s == StatusCoerced }

func (s Status) String() string {
	switch s {
	case StatusExact:
		return "exact"
	case StatusCoerced:
		return "coerced"
	case StatusMismatch:
		return "mismatch"
	case StatusNull:
		return "null"
	case StatusMissing:
		return "missing"
	}
	if s.IsSyntaxError() {
		return "syntax error: " + s.PointerError().String()
	}
	return "status " + strconv.Itoa(int(s))
}
