package schema

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrNotNumber is returned by SetNumber for text that is not a JSON number.
	ErrNotNumber = errors.New("not a JSON number")
	// ErrInexact is returned when an integer destination receives a fraction.
	ErrInexact = errors.New("number has a fractional part")
)

// SetNumber stores JSON number text into a numeric value without losing
// information: integers accept integral literals (including exponent forms
// such as 1e3) within range, floats accept any literal within range.
func (v *Value) SetNumber(text string) error {
	if !IsJSONNumber(text) {
		return fmt.Errorf("%q: %w", text, ErrNotNumber)
	}
	k := v.typ.Kind
	switch {
	case k.IsSigned():
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			f, ferr := integral(text)
			if ferr != nil {
				return ferr
			}
			if f < -(1<<63) || f >= 1<<63 {
				return fmt.Errorf("%s into %s: %w", text, v.typ, ErrOverflow)
			}
			i = int64(f)
		}
		return v.SetInt(i)
	case k.IsUnsigned():
		u, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			f, ferr := integral(text)
			if ferr != nil {
				return ferr
			}
			if f < 0 || f >= 1<<64 {
				return fmt.Errorf("%s into %s: %w", text, v.typ, ErrOverflow)
			}
			u = uint64(f)
		}
		return v.SetUint(u)
	case k.IsFloat():
		f, err := strconv.ParseFloat(text, k.BitSize())
		if err != nil {
			return fmt.Errorf("%s into %s: %w", text, v.typ, ErrOverflow)
		}
		return v.SetFloat(f)
	}
	return fmt.Errorf("set number on %s: %w", v.typ, ErrKindMismatch)
}

// integral parses text as a float and requires an integral result.
func integral(text string) (float64, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", text, ErrOverflow)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%s: %w", text, ErrInexact)
	}
	return f, nil
}

// IsJSONNumber reports whether s matches the JSON number grammar.
func IsJSONNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && '1' <= s[i] && s[i] <= '9':
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		if i >= len(s) || !isDigit(s[i]) {
			return false
		}
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if i >= len(s) || !isDigit(s[i]) {
			return false
		}
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
