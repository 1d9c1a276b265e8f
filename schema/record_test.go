package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordType_Validation(t *testing.T) {
	cases := []struct {
		name   string
		fields []Field
	}{
		{"empty name", []Field{{Name: "", Type: Int32()}}},
		{"duplicate", []Field{{Name: "a", Type: Int32()}, {Name: "a", Type: String()}}},
		{"missing type", []Field{{Name: "a"}}},
		{"zero bound", []Field{{Name: "a", Type: BoundedString(0)}}},
		{"optional set element", []Field{{Name: "a", Type: Set(Optional(Int32()))}}},
		{"record map key", []Field{{Name: "a", Type: Map(List(Int32()), Int32())}}},
		{"optional of optional", []Field{{Name: "a", Type: Optional(Optional(Int32()))}}},
	}
	for _, c := range cases {
		_, err := NewRecordType("T", c.fields...)
		assert.Error(t, err, c.name)
	}
}

func TestRecordType_LookupAndOrder(t *testing.T) {
	rt, err := NewRecordType("T",
		Field{Name: "b", Type: Bool()},
		Field{Name: "a", Type: Optional(Float64())},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, rt.Len())
	assert.Equal(t, 0, rt.Lookup("b"))
	assert.Equal(t, 1, rt.Lookup("a"))
	assert.True(t, rt.Field(1).Optional())
	assert.False(t, rt.Field(0).Optional())
	assert.Equal(t, "tuple<boolean b, optional<float64> a>", rt.String())
	assert.Equal(t, "T", Of(rt).String())
}

func TestRecord_Interface(t *testing.T) {
	rt := MustRecordType("T",
		Field{Name: "n", Type: Int32()},
		Field{Name: "s", Type: Optional(String())},
	)
	r := NewRecord(rt)
	require.NoError(t, r.Get("n").SetInt(3))
	assert.Equal(t, map[string]any{"n": int64(3), "s": nil}, r.Interface())
}

func TestKind_Classification(t *testing.T) {
	assert.True(t, KindBoundedString.IsScalar())
	assert.True(t, KindBoundedString.IsString())
	assert.False(t, KindOptional.IsScalar())
	assert.True(t, KindUint16.IsNumeric())
	assert.Equal(t, 16, KindUint16.BitSize())
	assert.True(t, KindMap.IsCollection())
	assert.Equal(t, "boolean", KindBool.String())
	assert.Equal(t, "invalid", Kind(99).String())
}
