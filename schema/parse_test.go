package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType_Builtins(t *testing.T) {
	cases := map[string]string{
		"boolean":                     "boolean",
		"int8":                        "int8",
		"uint64":                      "uint64",
		"float32":                     "float32",
		"ustring":                     "rstring",
		"string":                      "rstring",
		"rstring[16]":                 "rstring[16]",
		"list<int32>":                 "list<int32>",
		"set< rstring >":              "set<rstring>",
		"map<rstring, list<int64>>":   "map<rstring,list<int64>>",
		"optional<map<rstring,bool>>": "optional<map<rstring,boolean>>",
		"list<optional<float64>>":     "list<optional<float64>>",
	}
	for in, want := range cases {
		got, err := ParseType(in, nil)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.String(), in)
	}
}

func TestParseType_Errors(t *testing.T) {
	for _, in := range []string{
		"",
		"list<int32",
		"map<rstring>",
		"rstring[0]",
		"rstring[x]",
		"int32 extra",
		"set<optional<int32>>",
		"Person",
	} {
		_, err := ParseType(in, nil)
		assert.Error(t, err, in)
	}

	_, err := ParseType("list<", nil)
	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 5, se.Offset)
}

func TestParseType_ResolvesRecords(t *testing.T) {
	addr := MustRecordType("Address", Field{Name: "street", Type: String()})
	resolve := func(name string) (*RecordType, error) {
		if name == "Address" {
			return addr, nil
		}
		return nil, errors.New("unknown " + name)
	}
	typ, err := ParseType("map<rstring,Address>", resolve)
	require.NoError(t, err)
	assert.True(t, typ.HasStringKey())
	assert.Same(t, addr, typ.Elem.Record)

	_, err = ParseType("list<Other>", resolve)
	assert.EqualError(t, err, "unknown Other")
}

func TestType_Unwrap(t *testing.T) {
	inner, ok := Optional(Int32()).Unwrap()
	assert.True(t, ok)
	assert.Equal(t, KindInt32, inner.Kind)
	same, ok := Int32().Unwrap()
	assert.False(t, ok)
	assert.Same(t, Int32(), same)
}
