package jsonrec

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes.
const (
	CodeUnknownKey       = "unknown_key"
	CodeDuplicateKey     = "duplicate_key"
	CodeInvalidType      = "invalid_type"
	CodeUnsupportedShape = "unsupported_shape"
	CodeNullIgnored      = "null_ignored"
	CodeOverflow         = "overflow"
	CodeTruncated        = "truncated"
	CodeStopped          = "stopped"
	CodeParseError       = "parse_error"
)

// Issue represents a single diagnostic entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	Offset  int64 // Byte offset in the input source (-1 when unknown).
	// Params carries structured parameters (e.g., {"key":"x", "expected":"int32"}).
	Params map[string]any
}

func (i Issue) String() string {
	if i.Message == "" {
		return i.Code + " at " + i.Path
	}
	return i.Code + " at " + i.Path + ": " + i.Message
}

// Issues is a collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the causes so errors.Is sees tokenizer errors.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// Codes returns the issue codes in order.
func (iss Issues) Codes() []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.Code
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Report summarizes one extraction.
type Report struct {
	// Stopped is set when extraction ended early because the outermost
	// record had bound every field and another key arrived.
	Stopped bool
	// Tokens counts the tokens delivered to the handler.
	Tokens int
	// Issues lists the dropped or adjusted input in arrival order.
	Issues Issues
}

// Clean reports whether the input mapped onto the record without issues.
func (r Report) Clean() bool { return len(r.Issues) == 0 }
