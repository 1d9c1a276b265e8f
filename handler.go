package jsonrec

import (
	"errors"

	"github.com/reoring/jsonrec/i18n"
	"github.com/reoring/jsonrec/logger"
	"github.com/reoring/jsonrec/schema"
)

// Locator reports where the token being handled sits in the input.
type Locator interface {
	Path() string
	Location() int64
}

type collectionMode int

const (
	modeNone collectionMode = iota
	modeList
	modeMap
)

const noField = schema.NotFound

// frame is one record being filled.
type frame struct {
	rec      *schema.Record
	field    int // selected field or noField
	consumed []bool
	count    int

	// open collection of the selected field
	mode    collectionMode
	coll    *schema.Value
	elem    *schema.Type // element type without its optional wrapper
	elemOpt bool
	key     string // pending map key

	// skip counts open containers whose content is dropped.
	skip int

	// set elements are inserted once complete
	intoSet *schema.Value
	self    *schema.Value
}

// Handler fills a caller-owned record from JSON events. It never fails on
// input that does not fit the record: such input is dropped and reported as
// an Issue. The only early exit is the stop signal returned once the
// outermost record has bound every field and another key arrives.
//
// A Handler is not safe for concurrent use.
type Handler struct {
	root    *schema.Record
	opt     ExtractOpt
	loc     Locator
	frames  []frame
	started bool
	done    bool
	stopped bool
	fatal   *Issue
	issues  Issues
}

// NewHandler returns a Handler that fills rec.
func NewHandler(rec *schema.Record, opts ...ExtractOpt) *Handler {
	return &Handler{root: rec, opt: lastOpt(opts)}
}

// SetLocator attaches the source of issue paths and offsets.
func (h *Handler) SetLocator(l Locator) { h.loc = l }

// Done reports whether the root object has been closed.
func (h *Handler) Done() bool { return h.done }

// Stopped reports whether the handler returned the stop signal.
func (h *Handler) Stopped() bool { return h.stopped }

// Depth returns the number of records currently being filled.
func (h *Handler) Depth() int { return len(h.frames) }

// Report returns the issues collected so far.
func (h *Handler) Report() Report {
	return Report{Stopped: h.stopped, Issues: h.issues}
}

func (h *Handler) top() *frame {
	if n := len(h.frames); n > 0 {
		return &h.frames[n-1]
	}
	return nil
}

func (h *Handler) push(rec *schema.Record, set, self *schema.Value) {
	h.frames = append(h.frames, frame{
		rec:      rec,
		field:    noField,
		consumed: make([]bool, rec.Type().Len()),
		intoSet:  set,
		self:     self,
	})
}

func (h *Handler) pop() {
	n := len(h.frames)
	f := h.frames[n-1]
	h.frames = h.frames[:n-1]
	if f.intoSet != nil {
		if added, _ := f.intoSet.Insert(f.self); !added {
			logger.TraceMessage("jsonrec: set already holds %s", f.self)
		}
	}
	if len(h.frames) == 0 {
		h.done = true
	}
}

// proceed is the continue signal returned by every event.
func (h *Handler) proceed() bool { return h.fatal == nil }

func (h *Handler) add(is Issue) {
	h.issues = append(h.issues, is)
	if h.opt.IssueSink != nil {
		h.opt.IssueSink(is)
	}
}

// issue records a dropped or adjusted input. kv holds detail pairs such as
// "key", name.
func (h *Handler) issue(code string, kv ...string) {
	data := make(map[string]string, len(kv)/2)
	params := make([]any, 0, len(kv))
	for i := 0; i+1 < len(kv); i += 2 {
		data[kv[i]] = kv[i+1]
		params = append(params, kv[i], kv[i+1])
	}
	path, off := "/", int64(-1)
	if h.loc != nil {
		path, off = h.loc.Path(), h.loc.Location()
	}
	is := At(path).Issue(code, i18n.T(code, data), params...)
	is.Offset = off
	logger.DebugMessage("jsonrec: %s", is)
	h.add(is)
	if h.opt.FailFast && code != CodeStopped && h.fatal == nil {
		h.fatal = &is
	}
}

// outside handles events that arrive while no record is open.
func (h *Handler) outside() bool {
	if !h.started {
		h.started = true
		h.done = true
		h.issue(CodeUnsupportedShape, "expected", "object")
	}
	return h.proceed()
}

func (h *Handler) Key(name string) bool {
	f := h.top()
	if f == nil {
		return h.outside()
	}
	if f.skip > 0 {
		return h.proceed()
	}
	if f.mode == modeMap {
		f.key = name
		return h.proceed()
	}
	if h.opt.Duplicates == FirstWins && f.count == len(f.consumed) {
		if len(h.frames) > 1 {
			logger.TraceMessage("jsonrec: %s complete, skipping the rest of its object", f.rec.Type())
			h.pop()
			h.top().skip++
			return h.proceed()
		}
		h.stopped = true
		h.issue(CodeStopped, "key", name)
		return false
	}
	i := f.rec.Type().Lookup(name)
	switch {
	case i == schema.NotFound:
		f.field = noField
		h.issue(CodeUnknownKey, "key", name)
	case f.consumed[i]:
		f.field = noField
		if h.opt.Duplicates == LastWins {
			f.rec.Field(i).Reset()
			f.field = i
		}
		h.issue(CodeDuplicateKey, "key", name)
	default:
		f.consumed[i] = true
		f.count++
		f.field = i
	}
	return h.proceed()
}

func (h *Handler) Null() bool {
	f := h.top()
	if f == nil {
		return h.outside()
	}
	if f.skip > 0 {
		return h.proceed()
	}
	switch f.mode {
	case modeList:
		if f.elemOpt && f.coll.Kind() == schema.KindList {
			_ = f.coll.Append(f.coll.NewElem())
		} else {
			h.issue(CodeNullIgnored, "expected", f.elem.String())
		}
	case modeMap:
		if f.elemOpt {
			h.put(f, f.coll.NewElem())
		} else {
			h.issue(CodeNullIgnored, "expected", f.elem.String())
		}
	case modeNone:
		if f.field == noField {
			break
		}
		dst := f.rec.Field(f.field)
		if dst.Type().IsOptional() {
			dst.Clear()
		} else {
			h.issue(CodeNullIgnored, "expected", dst.Type().String())
		}
	}
	return h.proceed()
}

func (h *Handler) Bool(b bool) bool {
	return h.scalar(scalarToken{kind: scalarBool, b: b})
}

// Number receives the literal text of a JSON number.
func (h *Handler) Number(text string) bool {
	return h.scalar(scalarToken{kind: scalarNumber, text: text})
}

func (h *Handler) String(s string) bool {
	return h.scalar(scalarToken{kind: scalarString, text: s})
}

func (h *Handler) scalar(s scalarToken) bool {
	f := h.top()
	if f == nil {
		return h.outside()
	}
	if f.skip > 0 {
		return h.proceed()
	}
	switch f.mode {
	case modeList, modeMap:
		v, ok := h.convert(f.elem, s)
		if !ok {
			break
		}
		e := v
		if f.elemOpt {
			e = f.coll.NewElem()
			_ = e.Wrap(v)
		}
		switch f.coll.Kind() {
		case schema.KindList:
			_ = f.coll.Append(e)
		case schema.KindSet:
			_, _ = f.coll.Insert(e)
		default:
			h.put(f, e)
		}
	case modeNone:
		if f.field == noField {
			break
		}
		dst := f.rec.Field(f.field)
		t, opt := dst.Type().Unwrap()
		v, ok := h.convert(t, s)
		if !ok {
			break
		}
		if opt {
			_ = dst.Wrap(v)
		} else {
			_ = dst.Assign(v)
		}
	}
	return h.proceed()
}

func (h *Handler) StartObject() bool {
	f := h.top()
	if f == nil {
		if !h.started {
			h.started = true
			h.push(h.root, nil, nil)
		}
		return h.proceed()
	}
	if f.skip > 0 {
		f.skip++
		return h.proceed()
	}
	if f.mode != modeNone {
		if f.elem.Kind != schema.KindRecord {
			h.issue(CodeInvalidType, "expected", f.elem.String())
			f.skip++
			return h.proceed()
		}
		e := f.coll.NewElem()
		target := e
		if f.elemOpt {
			target = e.Materialize()
		}
		switch f.coll.Kind() {
		case schema.KindList:
			_ = f.coll.Append(e)
			h.push(target.Record(), nil, nil)
		case schema.KindSet:
			h.push(target.Record(), f.coll, e)
		default:
			if !h.put(f, e) {
				f.skip++
				return h.proceed()
			}
			h.push(target.Record(), nil, nil)
		}
		return h.proceed()
	}
	if f.field == noField {
		f.skip++
		return h.proceed()
	}
	dst := f.rec.Field(f.field)
	t, opt := dst.Type().Unwrap()
	target := dst
	switch {
	case t.Kind == schema.KindRecord:
		if opt {
			target = dst.Materialize()
		}
		h.push(target.Record(), nil, nil)
	case t.Kind == schema.KindMap && t.HasStringKey():
		if opt {
			target = dst.Materialize()
		}
		f.open(modeMap, target)
	case t.Kind == schema.KindMap:
		h.issue(CodeUnsupportedShape, "expected", t.String())
		f.skip++
	default:
		h.issue(CodeInvalidType, "expected", t.String())
		f.skip++
	}
	return h.proceed()
}

// EndObject closes the innermost object; members is unused.
func (h *Handler) EndObject(members int) bool {
	f := h.top()
	if f == nil {
		return h.proceed()
	}
	switch {
	case f.skip > 0:
		f.skip--
	case f.mode == modeMap:
		f.close()
	default:
		h.pop()
	}
	return h.proceed()
}

func (h *Handler) StartArray() bool {
	f := h.top()
	if f == nil {
		return h.outside()
	}
	if f.skip > 0 {
		f.skip++
		return h.proceed()
	}
	if f.mode != modeNone {
		h.issue(CodeUnsupportedShape, "expected", f.elem.String())
		f.skip++
		return h.proceed()
	}
	if f.field == noField {
		f.skip++
		return h.proceed()
	}
	dst := f.rec.Field(f.field)
	t, opt := dst.Type().Unwrap()
	if t.Kind != schema.KindList && t.Kind != schema.KindSet {
		h.issue(CodeInvalidType, "expected", t.String())
		f.skip++
		return h.proceed()
	}
	target := dst
	if opt {
		target = dst.Materialize()
	}
	f.open(modeList, target)
	return h.proceed()
}

// EndArray closes the innermost array; elements is unused.
func (h *Handler) EndArray(elements int) bool {
	f := h.top()
	if f == nil {
		return h.proceed()
	}
	switch {
	case f.skip > 0:
		f.skip--
	case f.mode == modeList:
		f.close()
	}
	return h.proceed()
}

func (f *frame) open(mode collectionMode, coll *schema.Value) {
	f.mode = mode
	f.coll = coll
	f.elem, f.elemOpt = coll.Type().Elem.Unwrap()
	f.key = ""
}

func (f *frame) close() {
	f.mode = modeNone
	f.coll = nil
	f.elem = nil
	f.elemOpt = false
	f.key = ""
}

// put stores e under the pending map key following the duplicate policy.
func (h *Handler) put(f *frame, e *schema.Value) bool {
	if _, exists := f.coll.Entry(f.key); exists {
		h.issue(CodeDuplicateKey, "key", f.key)
		if h.opt.Duplicates == FirstWins {
			return false
		}
	}
	_, _ = f.coll.Put(f.key, e, true)
	return true
}

type scalarKind int

const (
	scalarBool scalarKind = iota
	scalarNumber
	scalarString
)

type scalarToken struct {
	kind scalarKind
	b    bool
	text string
}

func (s scalarToken) describe() string {
	switch s.kind {
	case scalarBool:
		return "boolean"
	case scalarNumber:
		return "number"
	}
	return "string"
}

// convert builds a value of type t from s. Mismatches, lossy numbers and
// out of range numbers are reported and rejected.
func (h *Handler) convert(t *schema.Type, s scalarToken) (*schema.Value, bool) {
	v := schema.New(t)
	switch s.kind {
	case scalarBool:
		if t.Kind != schema.KindBool {
			h.issue(CodeInvalidType, "expected", t.String(), "got", s.describe())
			return nil, false
		}
		_ = v.SetBool(s.b)
	case scalarNumber:
		if !t.Kind.IsNumeric() {
			h.issue(CodeInvalidType, "expected", t.String(), "got", s.describe())
			return nil, false
		}
		if err := v.SetNumber(s.text); err != nil {
			code := CodeOverflow
			if errors.Is(err, schema.ErrNotNumber) {
				code = CodeInvalidType
			}
			h.issue(code, "expected", t.String(), "got", s.text)
			return nil, false
		}
	case scalarString:
		if !t.Kind.IsString() {
			h.issue(CodeInvalidType, "expected", t.String(), "got", s.describe())
			return nil, false
		}
		if cut, _ := v.SetText(s.text); cut {
			h.issue(CodeTruncated, "expected", t.String())
		}
	}
	return v, true
}
