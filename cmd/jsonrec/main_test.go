package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const typesYAML = `
types:
  Person:
    - {name: name, type: rstring}
    - {name: age, type: int32}
    - {name: address, type: optional<Address>}
  Address:
    - {name: city, type: rstring}
`

func newFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/types.yaml", []byte(typesYAML), 0o644))
	return fs
}

func runCLI(t *testing.T, fs afero.Fs, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	rc := run(args, fs, strings.NewReader(stdin), &out, &errOut)
	return rc, out.String(), errOut.String()
}

func TestExtractCmd(t *testing.T) {
	fs := newFs(t)
	require.NoError(t, afero.WriteFile(fs, "/in.json", []byte(`{"name":"Ann","extra":[1],"address":{"city":"Oslo"},"age":"x"}`), 0o644))

	rc, out, errOut := runCLI(t, fs, "", "extract", "-schema", "/types.yaml", "-type", "Person", "-in", "/in.json")
	require.Equal(t, 0, rc, errOut)
	assert.JSONEq(t, `{"name":"Ann","age":0,"address":{"city":"Oslo"}}`, out)
	assert.Contains(t, errOut, "issue: unknown_key at /extra")
	assert.Contains(t, errOut, "issue: invalid_type at /age")
}

func TestExtractCmd_NDJSON(t *testing.T) {
	rc, out, errOut := runCLI(t, newFs(t), "{\"name\":\"a\"}\n\n{\"age\":2,\"address\":null}\n",
		"extract", "-schema", "/types.yaml", "-type", "Person", "-ndjson", "-lastwins")
	require.Equal(t, 0, rc, errOut)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"name":"a","age":0,"address":null}`, lines[0])
	assert.JSONEq(t, `{"name":"","age":2,"address":null}`, lines[1])
}

func TestExtractCmd_Errors(t *testing.T) {
	fs := newFs(t)

	rc, _, errOut := runCLI(t, fs, "{}", "extract", "-schema", "/types.yaml", "-type", "Nope")
	assert.Equal(t, 1, rc)
	assert.Contains(t, errOut, `no type "Nope"`)

	rc, _, _ = runCLI(t, fs, "{}", "extract", "-schema", "/missing.yaml", "-type", "Person")
	assert.Equal(t, 1, rc)

	rc, _, errOut = runCLI(t, fs, `{"name":"a","name":"b"}`, "extract", "-schema", "/types.yaml", "-type", "Person", "-strict")
	assert.Equal(t, 1, rc)
	assert.Contains(t, errOut, "duplicate_key")

	rc, _, _ = runCLI(t, fs, "", "extract", "-type", "Person")
	assert.Equal(t, 2, rc)
}

func TestQueryCmd(t *testing.T) {
	fs := newFs(t)
	const doc = `{"a":{"b":"5"},"l":[1,"x",2]}`

	rc, out, errOut := runCLI(t, fs, doc, "query", "-path", "/a/b", "-as", "int32")
	require.Equal(t, 0, rc, errOut)
	assert.JSONEq(t, `{"value":5,"status":1,"reason":"coerced"}`, out)

	rc, out, _ = runCLI(t, fs, doc, "query", "-path", "/zz", "-as", "int32", "-default", "7")
	require.Equal(t, 0, rc)
	assert.JSONEq(t, `{"value":7,"status":4,"reason":"missing"}`, out)

	rc, out, _ = runCLI(t, fs, doc, "query", "-path", "/l", "-as", "int64", "-list")
	require.Equal(t, 0, rc)
	assert.JSONEq(t, `{"value":[1,2],"status":2,"reason":"mismatch"}`, out)

	rc, out, _ = runCLI(t, fs, "not json", "query", "-path", "/a", "-default", "none")
	require.Equal(t, 0, rc)
	assert.JSONEq(t, `{"value":"none","status":4,"reason":"missing"}`, out)

	rc, _, _ = runCLI(t, fs, doc, "query", "-path", "/a", "-as", "list<int32>")
	assert.Equal(t, 1, rc)
}

func TestRun_Usage(t *testing.T) {
	rc, _, errOut := runCLI(t, afero.NewMemMapFs(), "")
	assert.Equal(t, 2, rc)
	assert.Contains(t, errOut, "Usage:")

	rc, _, _ = runCLI(t, afero.NewMemMapFs(), "", "bogus")
	assert.Equal(t, 2, rc)
}

func TestDupsCmd(t *testing.T) {
	rc, out, _ := runCLI(t, afero.NewMemMapFs(), `{"a":1,"b":{"c":1,"c":2}}`, "dups")
	assert.Equal(t, 1, rc)
	assert.Contains(t, out, "duplicate_key at /b/c")

	rc, out, _ = runCLI(t, afero.NewMemMapFs(), `{"a":1}`, "dups")
	assert.Equal(t, 0, rc)
	assert.Empty(t, out)
}
