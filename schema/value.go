package schema

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// ErrKindMismatch is returned when a setter does not match the value kind.
	ErrKindMismatch = errors.New("kind mismatch")
	// ErrOverflow is returned when a number does not fit the value width.
	ErrOverflow = errors.New("value out of range")
)

// Value is the storage of one typed value. The payload used depends on the
// kind of its type: scalars use the scalar fields, records use rec, lists and
// sets use items, maps use entries and optionals use inner (nil when absent).
type Value struct {
	typ     *Type
	b       bool
	i       int64
	u       uint64
	f       float64
	s       string
	rec     *Record
	items   []*Value
	members map[string]struct{}
	entries map[string]*Value
	inner   *Value
}

// New returns the default value of t: zero scalars, empty collections,
// default records and absent optionals.
func New(t *Type) *Value {
	v := &Value{typ: t}
	v.reset()
	return v
}

func (v *Value) reset() {
	t := v.typ
	*v = Value{typ: t}
	switch t.Kind {
	case KindRecord:
		v.rec = NewRecord(t.Record)
	case KindSet:
		v.members = map[string]struct{}{}
	case KindMap:
		v.entries = map[string]*Value{}
	case KindInvalid, KindBool, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64, KindFloat32, KindFloat64,
		KindString, KindBoundedString, KindList, KindOptional:
	}
}

// Reset restores the default value of the type.
func (v *Value) Reset() { v.reset() }

func (v *Value) Type() *Type { return v.typ }

func (v *Value) Kind() Kind { return v.typ.Kind }

func (v *Value) Bool() bool { return v.b }

// Int returns the payload of signed integer values.
func (v *Value) Int() int64 { return v.i }

// Uint returns the payload of unsigned integer values.
func (v *Value) Uint() uint64 { return v.u }

func (v *Value) Float() float64 { return v.f }

// Text returns the payload of string values.
func (v *Value) Text() string { return v.s }

// Record returns the payload of record values.
func (v *Value) Record() *Record { return v.rec }

func (v *Value) SetBool(b bool) error {
	if v.typ.Kind != KindBool {
		return fmt.Errorf("set boolean on %s: %w", v.typ, ErrKindMismatch)
	}
	v.b = b
	return nil
}

// SetInt stores a signed integer after checking the width of the kind.
func (v *Value) SetInt(i int64) error {
	if !v.typ.Kind.IsSigned() {
		return fmt.Errorf("set integer on %s: %w", v.typ, ErrKindMismatch)
	}
	bits := v.typ.Kind.BitSize()
	if bits < 64 {
		limit := int64(1) << (bits - 1)
		if i < -limit || i >= limit {
			return fmt.Errorf("%d into %s: %w", i, v.typ, ErrOverflow)
		}
	}
	v.i = i
	return nil
}

// SetUint stores an unsigned integer after checking the width of the kind.
func (v *Value) SetUint(u uint64) error {
	if !v.typ.Kind.IsUnsigned() {
		return fmt.Errorf("set unsigned on %s: %w", v.typ, ErrKindMismatch)
	}
	bits := v.typ.Kind.BitSize()
	if bits < 64 && u >= uint64(1)<<bits {
		return fmt.Errorf("%d into %s: %w", u, v.typ, ErrOverflow)
	}
	v.u = u
	return nil
}

// SetFloat stores a float; float32 values are rounded to single precision.
func (v *Value) SetFloat(f float64) error {
	switch v.typ.Kind {
	case KindFloat32:
		if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
			return fmt.Errorf("%g into %s: %w", f, v.typ, ErrOverflow)
		}
		v.f = float64(float32(f))
	case KindFloat64:
		v.f = f
	default:
		return fmt.Errorf("set float on %s: %w", v.typ, ErrKindMismatch)
	}
	return nil
}

// SetText stores a string. Bounded strings keep at most Bound bytes, cut at a
// rune boundary; truncated reports whether anything was dropped.
func (v *Value) SetText(s string) (truncated bool, err error) {
	switch v.typ.Kind {
	case KindString:
		v.s = s
	case KindBoundedString:
		if len(s) > v.typ.Bound {
			cut := v.typ.Bound
			for cut > 0 && !utf8.RuneStart(s[cut]) {
				cut--
			}
			s = s[:cut]
			truncated = true
		}
		v.s = s
	default:
		return false, fmt.Errorf("set string on %s: %w", v.typ, ErrKindMismatch)
	}
	return truncated, nil
}

// Present reports whether an optional holds a value.
func (v *Value) Present() bool { return v.inner != nil }

// Get returns the wrapped value of an optional, nil when absent.
func (v *Value) Get() *Value { return v.inner }

// Clear makes an optional absent.
func (v *Value) Clear() {
	if v.typ.Kind == KindOptional {
		v.inner = nil
	}
}

// Materialize makes an optional present with a default value when it is
// absent and returns the wrapped value.
func (v *Value) Materialize() *Value {
	if v.typ.Kind != KindOptional {
		return nil
	}
	if v.inner == nil {
		v.inner = New(v.typ.Elem)
	}
	return v.inner
}

// Wrap makes an optional present holding inner.
func (v *Value) Wrap(inner *Value) error {
	if v.typ.Kind != KindOptional {
		return fmt.Errorf("wrap on %s: %w", v.typ, ErrKindMismatch)
	}
	v.inner = inner
	return nil
}

// Assign copies the payload of src, which must have the same kind.
func (v *Value) Assign(src *Value) error {
	if v.typ.Kind != src.typ.Kind {
		return fmt.Errorf("assign %s to %s: %w", src.typ, v.typ, ErrKindMismatch)
	}
	typ := v.typ
	*v = *src.Clone()
	v.typ = typ
	return nil
}

// Len returns the number of items of lists and sets or entries of maps.
func (v *Value) Len() int {
	if v.typ.Kind == KindMap {
		return len(v.entries)
	}
	return len(v.items)
}

// Items returns list elements in order or set members in insertion order.
func (v *Value) Items() []*Value { return v.items }

// NewElem returns a default element for a list, set or map value.
func (v *Value) NewElem() *Value {
	if !v.typ.Kind.IsCollection() {
		return nil
	}
	return New(v.typ.Elem)
}

// Append adds an element at the end of a list.
func (v *Value) Append(elem *Value) error {
	if v.typ.Kind != KindList {
		return fmt.Errorf("append on %s: %w", v.typ, ErrKindMismatch)
	}
	v.items = append(v.items, elem)
	return nil
}

// Insert adds an element to a set; it reports whether the set grew.
func (v *Value) Insert(elem *Value) (bool, error) {
	if v.typ.Kind != KindSet {
		return false, fmt.Errorf("insert on %s: %w", v.typ, ErrKindMismatch)
	}
	key := elem.canonical()
	if _, ok := v.members[key]; ok {
		return false, nil
	}
	v.members[key] = struct{}{}
	v.items = append(v.items, elem)
	return true, nil
}

// Contains reports whether a set holds an element equal to elem.
func (v *Value) Contains(elem *Value) bool {
	_, ok := v.members[elem.canonical()]
	return ok
}

// Put stores elem under key in a map. Existing keys are kept unless replace
// is set; the result reports whether elem was stored.
func (v *Value) Put(key string, elem *Value, replace bool) (bool, error) {
	if v.typ.Kind != KindMap {
		return false, fmt.Errorf("put on %s: %w", v.typ, ErrKindMismatch)
	}
	if _, ok := v.entries[key]; ok && !replace {
		return false, nil
	}
	v.entries[key] = elem
	return true, nil
}

// Entry returns the map value stored under key.
func (v *Value) Entry(key string) (*Value, bool) {
	e, ok := v.entries[key]
	return e, ok
}

// Keys returns the map keys in ascending order.
func (v *Value) Keys() []string {
	keys := make([]string, 0, len(v.entries))
	for k := range v.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy.
func (v *Value) Clone() *Value {
	c := &Value{typ: v.typ, b: v.b, i: v.i, u: v.u, f: v.f, s: v.s}
	if v.rec != nil {
		c.rec = v.rec.clone()
	}
	if v.items != nil {
		c.items = make([]*Value, len(v.items))
		for i, item := range v.items {
			c.items[i] = item.Clone()
		}
	}
	if v.members != nil {
		c.members = make(map[string]struct{}, len(v.members))
		for k := range v.members {
			c.members[k] = struct{}{}
		}
	}
	if v.entries != nil {
		c.entries = make(map[string]*Value, len(v.entries))
		for k, e := range v.entries {
			c.entries[k] = e.Clone()
		}
	}
	if v.inner != nil {
		c.inner = v.inner.Clone()
	}
	return c
}

// Interface converts the value into plain Go values: bool, int64, uint64,
// float64, string, map[string]any, []any, or nil for absent optionals.
func (v *Value) Interface() any {
	switch v.typ.Kind {
	case KindBool:
		return v.b
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return v.i
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return v.u
	case KindFloat32, KindFloat64:
		return v.f
	case KindString, KindBoundedString:
		return v.s
	case KindRecord:
		return v.rec.Interface()
	case KindList, KindSet:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.entries))
		for k, e := range v.entries {
			out[k] = e.Interface()
		}
		return out
	case KindOptional:
		if v.inner == nil {
			return nil
		}
		return v.inner.Interface()
	case KindInvalid:
	}
	return nil
}

func (v *Value) String() string { return v.canonical() }

// canonical renders the value deterministically; sets use it as member key.
func (v *Value) canonical() string {
	var sb strings.Builder
	v.writeCanonical(&sb)
	return sb.String()
}

func (v *Value) writeCanonical(sb *strings.Builder) {
	switch v.typ.Kind {
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindInt8, KindInt16, KindInt32, KindInt64:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindUint8, KindUint16, KindUint32, KindUint64:
		sb.WriteString(strconv.FormatUint(v.u, 10))
	case KindFloat32:
		sb.WriteString(strconv.FormatFloat(v.f, 'g', -1, 32))
	case KindFloat64:
		sb.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case KindString, KindBoundedString:
		sb.WriteString(strconv.Quote(v.s))
	case KindRecord:
		sb.WriteByte('{')
		for i, f := range v.rec.typ.fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(f.Name)
			sb.WriteByte('=')
			v.rec.fields[i].writeCanonical(sb)
		}
		sb.WriteByte('}')
	case KindList, KindSet:
		sb.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				sb.WriteByte(',')
			}
			item.writeCanonical(sb)
		}
		sb.WriteByte(']')
	case KindMap:
		sb.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteByte(':')
			v.entries[k].writeCanonical(sb)
		}
		sb.WriteByte('}')
	case KindOptional:
		if v.inner == nil {
			sb.WriteString("null")
			return
		}
		v.inner.writeCanonical(sb)
	case KindInvalid:
		sb.WriteString("?")
	}
}
