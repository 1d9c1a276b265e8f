package query

import (
	"strconv"

	"github.com/goccy/go-json"

	"github.com/reoring/jsonrec/logger"
	"github.com/reoring/jsonrec/schema"
)

// Scalar lists the Go types a query can produce.
type Scalar interface {
	bool | int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64 | string
}

// Coerce converts a tree node into a value of the scalar type t.
//
// Numbers convert to numeric kinds only when they fit without loss. Strings
// holding a JSON number convert to numeric kinds, "true" and "false" convert
// to boolean, and booleans and numbers convert to their text. Objects and
// arrays never convert.
func Coerce(node any, t *schema.Type) (*schema.Value, Status) {
	if node == nil {
		return nil, StatusNull
	}
	if !t.Kind.IsScalar() {
		return nil, StatusMismatch
	}
	v := schema.New(t)
	switch n := node.(type) {
	case bool:
		switch {
		case t.Kind == schema.KindBool:
			_ = v.SetBool(n)
			return v, StatusExact
		case t.Kind.IsString():
			_, _ = v.SetText(strconv.FormatBool(n))
			return v, StatusCoerced
		}
	case json.Number:
		return coerceNumber(v, string(n))
	case float64:
		return coerceNumber(v, strconv.FormatFloat(n, 'g', -1, 64))
	case string:
		switch {
		case t.Kind.IsString():
			if cut, _ := v.SetText(n); cut {
				return v, StatusCoerced
			}
			return v, StatusExact
		case t.Kind == schema.KindBool:
			b, ok := map[string]bool{"true": true, "false": false}[n]
			if !ok {
				return nil, StatusMismatch
			}
			_ = v.SetBool(b)
			return v, StatusCoerced
		case t.Kind.IsNumeric():
			if err := v.SetNumber(n); err != nil {
				logger.TraceMessage("query: %q as %s: %v", n, t, err)
				return nil, StatusMismatch
			}
			return v, StatusCoerced
		}
	}
	return nil, StatusMismatch
}

func coerceNumber(v *schema.Value, text string) (*schema.Value, Status) {
	t := v.Type()
	switch {
	case t.Kind.IsNumeric():
		if err := v.SetNumber(text); err != nil {
			logger.TraceMessage("query: %s as %s: %v", text, t, err)
			return nil, StatusMismatch
		}
		return v, StatusExact
	case t.Kind.IsString():
		_, _ = v.SetText(text)
		return v, StatusCoerced
	}
	return nil, StatusMismatch
}

// Value resolves path and converts the node into type t. The value is nil
// unless the status is StatusExact or StatusCoerced.
func (c *Context) Value(path string, t *schema.Type) (*schema.Value, Status, error) {
	node, st, err := c.Lookup(path)
	if err != nil || st != StatusExact {
		return nil, st, err
	}
	v, st := Coerce(node, t)
	return v, st, nil
}

// List resolves path to an array and converts every element into elem.
// Elements that do not convert are left out; the status is the worst
// element status, or StatusMismatch when the node is not an array.
func (c *Context) List(path string, elem *schema.Type) ([]*schema.Value, Status, error) {
	node, st, err := c.Lookup(path)
	if err != nil || st != StatusExact {
		return nil, st, err
	}
	arr, ok := node.([]any)
	if !ok {
		return nil, StatusMismatch, nil
	}
	out := make([]*schema.Value, 0, len(arr))
	worst := StatusExact
	for _, item := range arr {
		v, est := Coerce(item, elem)
		if est > worst {
			worst = est
		}
		if est.OK() {
			out = append(out, v)
		}
	}
	return out, worst, nil
}

// Get returns the node at path as T, or def with the status explaining why
// not. The error is ErrNotParsed when c never parsed a document.
func Get[T Scalar](c *Context, path string, def T) (T, Status, error) {
	v, st, err := c.Value(path, typeOf[T]())
	if err != nil || !st.OK() {
		return def, st, err
	}
	return valueOf[T](v), st, nil
}

// GetList returns the array at path as []T. def is returned only when no
// array is found.
func GetList[T Scalar](c *Context, path string, def []T) ([]T, Status, error) {
	vs, st, err := c.List(path, typeOf[T]())
	if err != nil || vs == nil {
		return def, st, err
	}
	out := make([]T, len(vs))
	for i, v := range vs {
		out[i] = valueOf[T](v)
	}
	return out, st, nil
}

func typeOf[T Scalar]() *schema.Type {
	var zero T
	switch any(zero).(type) {
	case bool:
		return schema.Bool()
	case int8:
		return schema.Int8()
	case int16:
		return schema.Int16()
	case int32:
		return schema.Int32()
	case int64:
		return schema.Int64()
	case uint8:
		return schema.Uint8()
	case uint16:
		return schema.Uint16()
	case uint32:
		return schema.Uint32()
	case uint64:
		return schema.Uint64()
	case float32:
		return schema.Float32()
	case float64:
		return schema.Float64()
	}
	return schema.String()
}

func valueOf[T Scalar](v *schema.Value) T {
	var out T
	switch p := any(&out).(type) {
	case *bool:
		*p = v.Bool()
	case *int8:
		*p = int8(v.Int())
	case *int16:
		*p = int16(v.Int())
	case *int32:
		*p = int32(v.Int())
	case *int64:
		*p = v.Int()
	case *uint8:
		*p = uint8(v.Uint())
	case *uint16:
		*p = uint16(v.Uint())
	case *uint32:
		*p = uint32(v.Uint())
	case *uint64:
		*p = v.Uint()
	case *float32:
		*p = float32(v.Float())
	case *float64:
		*p = v.Float()
	case *string:
		*p = v.Text()
	}
	return out
}
