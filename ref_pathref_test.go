package jsonrec

import "testing"

func TestPathRef_Pointer(t *testing.T) {
	tests := []struct {
		ref  PathRef
		want string
	}{
		{Root(), "/"},
		{Root().Field("items").Index(2).Field("price"), "/items/2/price"},
		{Root().Field("a/b").Field("m~n"), "/a~1b/m~0n"},
		{Root().Field(""), "/"},
		{At("/x/0"), "/x/0"},
		{At("/"), "/"},
	}
	for _, tt := range tests {
		if got := tt.ref.Pointer(); got != tt.want {
			t.Fatalf("Pointer() = %q, want %q", got, tt.want)
		}
	}
}

func TestPathRef_Issue(t *testing.T) {
	is := At("/a").Issue(CodeUnknownKey, "unknown key", "key", "a")
	if is.Path != "/a" || is.Code != CodeUnknownKey || is.Offset != -1 {
		t.Fatalf("unexpected issue %+v", is)
	}
	if is.Params["key"] != "a" {
		t.Fatalf("params = %v", is.Params)
	}
	if plain := Root().Issue(CodeStopped, ""); plain.Params != nil {
		t.Fatalf("expected no params, got %v", plain.Params)
	}
}
