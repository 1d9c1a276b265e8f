package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	jsonsrc "github.com/reoring/jsonrec/source/json"
)

type recorder struct {
	events []string
	stopAt string
}

func (r *recorder) add(ev string) bool {
	r.events = append(r.events, ev)
	return ev != r.stopAt
}

func (r *recorder) Key(name string) bool       { return r.add("key:" + name) }
func (r *recorder) Null() bool                 { return r.add("null") }
func (r *recorder) Bool(b bool) bool           { return r.add(fmt.Sprintf("bool:%v", b)) }
func (r *recorder) Number(text string) bool    { return r.add("num:" + text) }
func (r *recorder) String(s string) bool       { return r.add("str:" + s) }
func (r *recorder) StartObject() bool          { return r.add("{") }
func (r *recorder) EndObject(members int) bool { return r.add(fmt.Sprintf("}%d", members)) }
func (r *recorder) StartArray() bool           { return r.add("[") }
func (r *recorder) EndArray(elements int) bool { return r.add(fmt.Sprintf("]%d", elements)) }

func TestDriver_DeliversEventsWithCounts(t *testing.T) {
	rec := &recorder{}
	src := jsonsrc.NewBytes([]byte(`{"a":1,"b":[true,null,"x",{}],"c":{"d":-2.5}}`))
	res, err := NewDriver(rec).Run(context.Background(), src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "{ key:a num:1 key:b [ bool:true null str:x { }0 ]4 key:c { key:d num:-2.5 }1 }3"
	if got := strings.Join(rec.events, " "); got != want {
		t.Fatalf("events\n got: %s\nwant: %s", got, want)
	}
	if res.Stopped || res.Tokens != len(rec.events) {
		t.Fatalf("result = %+v", res)
	}
}

func TestDriver_StopsWhenHandlerRefuses(t *testing.T) {
	rec := &recorder{stopAt: "key:b"}
	res, err := NewDriver(rec).Run(context.Background(), jsonsrc.NewBytes([]byte(`{"a":1,"b":2,"c":3}`)))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !res.Stopped || rec.events[len(rec.events)-1] != "key:b" {
		t.Fatalf("result = %+v events = %v", res, rec.events)
	}
}

func TestDriver_ReadsOneValueAtATime(t *testing.T) {
	src := jsonsrc.NewBytes([]byte("{\"a\":1}\n{\"a\":2}\n7"))
	var all []string
	for i := 0; ; i++ {
		rec := &recorder{}
		_, err := NewDriver(rec).Run(context.Background(), src)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("value %d: %v", i, err)
		}
		all = append(all, strings.Join(rec.events, " "))
	}
	want := []string{"{ key:a num:1 }1", "{ key:a num:2 }1", "num:7"}
	if strings.Join(all, "|") != strings.Join(want, "|") {
		t.Fatalf("values = %q", all)
	}
}

func TestDriver_ReportsTruncatedInput(t *testing.T) {
	_, err := NewDriver(&recorder{}).Run(context.Background(), jsonsrc.NewBytes([]byte(`{"a":[1,2`)))
	if err == nil {
		t.Fatalf("expected error for truncated input")
	}
}

func TestDriver_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := &recorder{}
	_, err := NewDriver(rec).Run(ctx, jsonsrc.NewBytes([]byte(`{"a":1}`)))
	if !errors.Is(err, context.Canceled) || len(rec.events) != 0 {
		t.Fatalf("err = %v events = %v", err, rec.events)
	}
}
