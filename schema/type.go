package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Type describes a destination type. Elem is the element type of lists and
// sets, the value type of maps and the wrapped type of optionals.
type Type struct {
	Kind   Kind
	Bound  int
	Key    *Type
	Elem   *Type
	Record *RecordType
}

var (
	boolType    = &Type{Kind: KindBool}
	int8Type    = &Type{Kind: KindInt8}
	int16Type   = &Type{Kind: KindInt16}
	int32Type   = &Type{Kind: KindInt32}
	int64Type   = &Type{Kind: KindInt64}
	uint8Type   = &Type{Kind: KindUint8}
	uint16Type  = &Type{Kind: KindUint16}
	uint32Type  = &Type{Kind: KindUint32}
	uint64Type  = &Type{Kind: KindUint64}
	float32Type = &Type{Kind: KindFloat32}
	float64Type = &Type{Kind: KindFloat64}
	stringType  = &Type{Kind: KindString}
)

func Bool() *Type    { return boolType }
func Int8() *Type    { return int8Type }
func Int16() *Type   { return int16Type }
func Int32() *Type   { return int32Type }
func Int64() *Type   { return int64Type }
func Uint8() *Type   { return uint8Type }
func Uint16() *Type  { return uint16Type }
func Uint32() *Type  { return uint32Type }
func Uint64() *Type  { return uint64Type }
func Float32() *Type { return float32Type }
func Float64() *Type { return float64Type }
func String() *Type  { return stringType }

// Scalar returns the shared type for a scalar kind; nil for other kinds.
func Scalar(k Kind) *Type {
	switch k {
	case KindBool:
		return boolType
	case KindInt8:
		return int8Type
	case KindInt16:
		return int16Type
	case KindInt32:
		return int32Type
	case KindInt64:
		return int64Type
	case KindUint8:
		return uint8Type
	case KindUint16:
		return uint16Type
	case KindUint32:
		return uint32Type
	case KindUint64:
		return uint64Type
	case KindFloat32:
		return float32Type
	case KindFloat64:
		return float64Type
	case KindString:
		return stringType
	case KindInvalid, KindBoundedString, KindRecord, KindList, KindSet, KindMap, KindOptional:
		return nil
	}
	return nil
}

// BoundedString returns a string type holding at most n bytes.
func BoundedString(n int) *Type { return &Type{Kind: KindBoundedString, Bound: n} }

func List(elem *Type) *Type { return &Type{Kind: KindList, Elem: elem} }

func Set(elem *Type) *Type { return &Type{Kind: KindSet, Elem: elem} }

func Map(key, value *Type) *Type { return &Type{Kind: KindMap, Key: key, Elem: value} }

// StringMap is shorthand for map<rstring,V>.
func StringMap(value *Type) *Type { return Map(stringType, value) }

func Optional(inner *Type) *Type { return &Type{Kind: KindOptional, Elem: inner} }

// Of returns the type of values of the record type.
func Of(rt *RecordType) *Type { return &Type{Kind: KindRecord, Record: rt} }

// Unwrap strips exactly one optional level.
func (t *Type) Unwrap() (*Type, bool) {
	if t != nil && t.Kind == KindOptional {
		return t.Elem, true
	}
	return t, false
}

// IsOptional reports whether t is an optional wrapper.
func (t *Type) IsOptional() bool { return t != nil && t.Kind == KindOptional }

// HasStringKey reports whether t is a map keyed by strings.
func (t *Type) HasStringKey() bool {
	return t != nil && t.Kind == KindMap && t.Key != nil && t.Key.Kind.IsString()
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindBoundedString:
		return "rstring[" + strconv.Itoa(t.Bound) + "]"
	case KindRecord:
		if t.Record == nil {
			return "tuple<>"
		}
		if t.Record.name != "" {
			return t.Record.name
		}
		return t.Record.String()
	case KindList, KindSet, KindOptional:
		return t.Kind.String() + "<" + t.Elem.String() + ">"
	case KindMap:
		return "map<" + t.Key.String() + "," + t.Elem.String() + ">"
	case KindInvalid, KindBool, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64, KindFloat32, KindFloat64, KindString:
		return t.Kind.String()
	}
	return t.Kind.String()
}

func (t *Type) validate() error {
	if t == nil {
		return fmt.Errorf("missing type")
	}
	switch t.Kind {
	case KindBool, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64, KindString:
		return nil
	case KindBoundedString:
		if t.Bound <= 0 {
			return fmt.Errorf("bounded string needs a positive bound, got %d", t.Bound)
		}
		return nil
	case KindRecord:
		if t.Record == nil {
			return fmt.Errorf("record type is not set")
		}
		return nil
	case KindList:
		return t.Elem.validate()
	case KindSet:
		if t.Elem.IsOptional() {
			return fmt.Errorf("set elements cannot be optional: %s", t)
		}
		return t.Elem.validate()
	case KindMap:
		if t.Key == nil || !t.Key.Kind.IsScalar() {
			return fmt.Errorf("map key must be a scalar type: %s", t)
		}
		if err := t.Key.validate(); err != nil {
			return err
		}
		return t.Elem.validate()
	case KindOptional:
		if t.Elem.IsOptional() {
			return fmt.Errorf("optional cannot wrap optional: %s", t)
		}
		return t.Elem.validate()
	case KindInvalid:
	}
	return fmt.Errorf("invalid type kind %d", int(t.Kind))
}

func joinFields(fields []Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Type.String() + " " + f.Name
	}
	return strings.Join(parts, ", ")
}
