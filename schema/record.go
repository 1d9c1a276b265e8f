package schema

import (
	"errors"
	"fmt"
)

// NotFound is returned by RecordType.Lookup for unknown names.
const NotFound = -1

// Field describes one named attribute of a record type.
type Field struct {
	Name string
	Type *Type
}

// Optional reports whether the field accepts null as "absent".
func (f Field) Optional() bool { return f.Type.IsOptional() }

// RecordType is an ordered set of uniquely named fields.
type RecordType struct {
	name   string
	fields []Field
	index  map[string]int
}

// NewRecordType validates fields and builds a record type. name may be empty.
func NewRecordType(name string, fields ...Field) (*RecordType, error) {
	rt := &RecordType{name: name, fields: make([]Field, 0, len(fields)), index: make(map[string]int, len(fields))}
	for _, f := range fields {
		if f.Name == "" {
			return nil, errors.New("field name is empty")
		}
		if _, ok := rt.index[f.Name]; ok {
			return nil, fmt.Errorf("duplicate field %q", f.Name)
		}
		if err := f.Type.validate(); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		rt.index[f.Name] = len(rt.fields)
		rt.fields = append(rt.fields, f)
	}
	return rt, nil
}

// MustRecordType is NewRecordType that panics on invalid definitions.
func MustRecordType(name string, fields ...Field) *RecordType {
	rt, err := NewRecordType(name, fields...)
	if err != nil {
		panic(err)
	}
	return rt
}

func (r *RecordType) Name() string { return r.name }

// Len returns the number of fields.
func (r *RecordType) Len() int { return len(r.fields) }

func (r *RecordType) Field(i int) Field { return r.fields[i] }

// Fields returns a copy of the field list.
func (r *RecordType) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Lookup returns the index of the named field or NotFound.
func (r *RecordType) Lookup(name string) int {
	if i, ok := r.index[name]; ok {
		return i
	}
	return NotFound
}

func (r *RecordType) String() string { return "tuple<" + joinFields(r.fields) + ">" }

// Record is a record type bound to storage.
type Record struct {
	typ    *RecordType
	fields []*Value
}

// NewRecord returns a record with every field set to its default.
func NewRecord(rt *RecordType) *Record {
	r := &Record{typ: rt, fields: make([]*Value, len(rt.fields))}
	for i, f := range rt.fields {
		r.fields[i] = New(f.Type)
	}
	return r
}

func (r *Record) Type() *RecordType { return r.typ }

// Field returns the storage of the i-th field.
func (r *Record) Field(i int) *Value { return r.fields[i] }

// Get returns the storage of the named field, nil when unknown.
func (r *Record) Get(name string) *Value {
	i := r.typ.Lookup(name)
	if i == NotFound {
		return nil
	}
	return r.fields[i]
}

// Interface converts the record into a map of plain Go values.
func (r *Record) Interface() map[string]any {
	out := make(map[string]any, len(r.fields))
	for i, f := range r.typ.fields {
		out[f.Name] = r.fields[i].Interface()
	}
	return out
}

func (r *Record) clone() *Record {
	c := &Record{typ: r.typ, fields: make([]*Value, len(r.fields))}
	for i, v := range r.fields {
		c.fields[i] = v.Clone()
	}
	return c
}
