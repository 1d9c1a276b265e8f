package jsonrec

import (
	"strings"
	"testing"
)

func TestDetectDuplicateKeysBytes_NoDup(t *testing.T) {
	js := []byte(`{"a":1,"b":{"a":2}}`)
	iss, err := DetectDuplicateKeysBytes(js, Strictness{OnDuplicateKey: Warn}, -1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 0 {
		t.Fatalf("expected 0 issues, got %d: %v", len(iss), iss)
	}
}

func TestDetectDuplicateKeysBytes_WithDup(t *testing.T) {
	js := []byte(`{"a":1,"a":2,"o":{"b":1,"b":2},"a":3}`)
	iss, err := DetectDuplicateKeysBytes(js, Strictness{OnDuplicateKey: Warn}, -1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 3 {
		t.Fatalf("expected 3 issues, got %v", iss)
	}
	if iss[0].Code != CodeDuplicateKey || iss[0].Path != "/a" || iss[1].Path != "/o/b" {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestDetectDuplicateKeysBytes_MaxIssues(t *testing.T) {
	js := []byte(`{"a":1,"a":2,"a":3,"a":4}`)
	iss, err := DetectDuplicateKeysBytes(js, Strictness{OnDuplicateKey: Warn}, 2)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(iss))
	}
}

func TestDetectDuplicateKeysReader_ErrorMode(t *testing.T) {
	iss, err := DetectDuplicateKeysReader(strings.NewReader(`[{"x":1,"x":1}]`), Strictness{OnDuplicateKey: Error}, -1)
	if iss != nil {
		t.Fatalf("expected no issue list, got %v", iss)
	}
	got, ok := AsIssues(err)
	if !ok || got[0].Path != "/0/x" {
		t.Fatalf("expected duplicate at /0/x, got %v", err)
	}
}

func TestDetectDuplicateKeys_IgnoreMode(t *testing.T) {
	iss, err := DetectDuplicateKeysBytes([]byte(`{"a":1,"a":2}`), Strictness{}, -1)
	if err != nil || len(iss) != 0 {
		t.Fatalf("expected nothing, got %v %v", iss, err)
	}
}
