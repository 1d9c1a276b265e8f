package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Registry holds named record types in definition order.
type Registry struct {
	types map[string]*RecordType
	order []string
}

// Lookup returns the named record type.
func (r *Registry) Lookup(name string) (*RecordType, bool) {
	rt, ok := r.types[name]
	return rt, ok
}

// Names returns the record type names in definition order.
func (r *Registry) Names() []string { return append([]string(nil), r.order...) }

// DuplicateTypeError reports a record type defined twice with both positions.
type DuplicateTypeError struct {
	Name      string
	FirstLine int
	Line      int
}

func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("duplicate type %q at line %d (first at line %d)", e.Name, e.Line, e.FirstLine)
}

// CycleError reports record types that reference themselves.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string { return "type cycle: " + strings.Join(e.Path, " -> ") }

type fieldDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type document struct {
	Types yaml.Node `yaml:"types"`
}

type pendingType struct {
	line   int
	fields []fieldDef
}

// LoadYAML reads record type definitions:
//
//	types:
//	  Address:
//	    - {name: street, type: rstring}
//	  Person:
//	    - {name: address, type: optional<Address>}
//
// References may point forward; cycles are rejected.
func LoadYAML(r io.Reader) (*Registry, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("schema: empty document")
		}
		return nil, fmt.Errorf("schema: %w", err)
	}
	if doc.Types.Kind != yaml.MappingNode {
		return nil, errors.New("schema: 'types' must be a mapping")
	}

	pending := make(map[string]pendingType, len(doc.Types.Content)/2)
	var order []string
	for i := 0; i+1 < len(doc.Types.Content); i += 2 {
		k, v := doc.Types.Content[i], doc.Types.Content[i+1]
		if prev, dup := pending[k.Value]; dup {
			return nil, &DuplicateTypeError{Name: k.Value, FirstLine: prev.line, Line: k.Line}
		}
		if IsBuiltin(k.Value) {
			return nil, fmt.Errorf("schema: line %d: %q is a builtin type name", k.Line, k.Value)
		}
		var fields []fieldDef
		if err := v.Decode(&fields); err != nil {
			return nil, fmt.Errorf("schema: type %q: %w", k.Value, err)
		}
		pending[k.Value] = pendingType{line: k.Line, fields: fields}
		order = append(order, k.Value)
	}

	b := &registryBuilder{pending: pending, reg: &Registry{types: map[string]*RecordType{}, order: order}}
	for _, name := range order {
		if _, err := b.build(name); err != nil {
			return nil, err
		}
	}
	return b.reg, nil
}

// LoadFile reads a YAML definition file from fs.
func LoadFile(fs afero.Fs, path string) (*Registry, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	reg, err := LoadYAML(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

type registryBuilder struct {
	pending  map[string]pendingType
	reg      *Registry
	visiting []string
}

func (b *registryBuilder) build(name string) (*RecordType, error) {
	if rt, ok := b.reg.types[name]; ok {
		return rt, nil
	}
	def, ok := b.pending[name]
	if !ok {
		return nil, fmt.Errorf("schema: unknown type name %q", name)
	}
	for i, v := range b.visiting {
		if v == name {
			path := append(append([]string(nil), b.visiting[i:]...), name)
			return nil, &CycleError{Path: path}
		}
	}
	b.visiting = append(b.visiting, name)
	defer func() { b.visiting = b.visiting[:len(b.visiting)-1] }()

	fields := make([]Field, 0, len(def.fields))
	for _, fd := range def.fields {
		t, err := ParseType(fd.Type, b.build)
		if err != nil {
			return nil, fmt.Errorf("schema: type %q field %q: %w", name, fd.Name, err)
		}
		fields = append(fields, Field{Name: fd.Name, Type: t})
	}
	rt, err := NewRecordType(name, fields...)
	if err != nil {
		return nil, fmt.Errorf("schema: type %q: %w", name, err)
	}
	b.reg.types[name] = rt
	return rt, nil
}
