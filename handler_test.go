package jsonrec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsonrec"
	"github.com/reoring/jsonrec/schema"
)

func TestHandler_DrivenByEvents(t *testing.T) {
	rt := recordOf(t, "a", "int32", "m", "map<rstring,int32>")
	rec := schema.NewRecord(rt)
	h := jsonrec.NewHandler(rec)

	steps := []func() bool{
		h.StartObject,
		func() bool { return h.Key("m") },
		h.StartObject,
		func() bool { return h.Key("k1") },
		func() bool { return h.Number("1") },
		func() bool { return h.Key("k2") },
		func() bool { return h.Number("2") },
		func() bool { return h.EndObject(2) },
		func() bool { return h.Key("a") },
		func() bool { return h.Number("7") },
		func() bool { return h.EndObject(2) },
	}
	for i, step := range steps {
		require.True(t, step(), "step %d", i)
	}
	assert.True(t, h.Done())
	assert.Equal(t, 0, h.Depth())
	assert.Equal(t, map[string]any{
		"a": int64(7),
		"m": map[string]any{"k1": int64(1), "k2": int64(2)},
	}, rec.Interface())
	assert.True(t, h.Report().Clean())
}

func TestHandler_StopSignal(t *testing.T) {
	rec := schema.NewRecord(recordOf(t, "a", "bool"))
	h := jsonrec.NewHandler(rec)
	require.True(t, h.StartObject())
	require.True(t, h.Key("a"))
	require.True(t, h.Bool(true))
	assert.False(t, h.Key("b"))
	assert.True(t, h.Stopped())
	assert.False(t, h.Done())
	assert.True(t, rec.Get("a").Bool())
}

func TestHandler_IssuesWithoutLocatorUseRoot(t *testing.T) {
	h := jsonrec.NewHandler(schema.NewRecord(recordOf(t, "a", "bool")))
	require.True(t, h.StartObject())
	require.True(t, h.Key("zz"))
	iss := h.Report().Issues
	require.Len(t, iss, 1)
	assert.Equal(t, "/", iss[0].Path)
	assert.Equal(t, int64(-1), iss[0].Offset)
}
