package query

import "sort"

// Workspace keeps one Context per document name, so a worker can hold
// several parsed documents at once. Like Context, a Workspace belongs to a
// single goroutine.
type Workspace struct {
	contexts map[string]*Context
}

func NewWorkspace() *Workspace {
	return &Workspace{contexts: map[string]*Context{}}
}

// Context returns the Context registered under name, creating it on first use.
func (w *Workspace) Context(name string) *Context {
	c, ok := w.contexts[name]
	if !ok {
		c = NewContext()
		w.contexts[name] = c
	}
	return c
}

// Parse parses text into the Context registered under name.
func (w *Workspace) Parse(name string, text []byte) error {
	return w.Context(name).Parse(text)
}

// Drop forgets the document registered under name.
func (w *Workspace) Drop(name string) { delete(w.contexts, name) }

// Names returns the registered names in ascending order.
func (w *Workspace) Names() []string {
	names := make([]string, 0, len(w.contexts))
	for n := range w.contexts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
