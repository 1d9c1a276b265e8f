package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personYAML = `
types:
  Person:
    - {name: name, type: rstring}
    - {name: address, type: optional<Address>}
    - {name: phones, type: "map<rstring,Phone>"}
  Address:
    - {name: street, type: "rstring[32]"}
    - {name: zip, type: uint32}
  Phone:
    - {name: number, type: rstring}
`

func TestLoadYAML_ForwardReferences(t *testing.T) {
	reg, err := LoadYAML(strings.NewReader(personYAML))
	require.NoError(t, err)
	assert.Equal(t, []string{"Person", "Address", "Phone"}, reg.Names())

	person, ok := reg.Lookup("Person")
	require.True(t, ok)
	addr, _ := reg.Lookup("Address")
	inner, isOpt := person.Field(1).Type.Unwrap()
	assert.True(t, isOpt)
	assert.Same(t, addr, inner.Record)
	assert.Equal(t, "rstring[32]", addr.Field(0).Type.String())
}

func TestLoadYAML_Errors(t *testing.T) {
	cases := map[string]string{
		"cycle": `
types:
  A:
    - {name: b, type: B}
  B:
    - {name: a, type: optional<A>}
`,
		"unknown": `
types:
  A:
    - {name: b, type: Missing}
`,
		"duplicate field": `
types:
  A:
    - {name: x, type: int32}
    - {name: x, type: int64}
`,
		"not a mapping": `
types: [1, 2]
`,
		"builtin name": `
types:
  list:
    - {name: x, type: int32}
`,
		"unknown top level": `
schemas: {}
`,
	}
	for name, src := range cases {
		_, err := LoadYAML(strings.NewReader(src))
		assert.Error(t, err, name)
	}

	_, err := LoadYAML(strings.NewReader(cases["cycle"]))
	var ce *CycleError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []string{"A", "B", "A"}, ce.Path)
}

func TestLoadYAML_DuplicateTypeName(t *testing.T) {
	src := "types:\n  A:\n    - {name: x, type: int32}\n  A:\n    - {name: y, type: int32}\n"
	_, err := LoadYAML(strings.NewReader(src))
	var de *DuplicateTypeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "A", de.Name)
	assert.Equal(t, 2, de.FirstLine)
	assert.Equal(t, 4, de.Line)
}

func TestLoadFile_UsesFilesystem(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/defs/types.yaml", []byte(personYAML), 0o644))

	reg, err := LoadFile(fs, "/defs/types.yaml")
	require.NoError(t, err)
	_, ok := reg.Lookup("Phone")
	assert.True(t, ok)

	_, err = LoadFile(fs, "/defs/missing.yaml")
	assert.Error(t, err)
}
