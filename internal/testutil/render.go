package testutil

import (
	"net/http"
	"sync"
)

// Rendered is one captured template render.
type Rendered struct {
	Name    string
	Data    any
	Snippet bool
}

// RenderRecorder implements viewdata.Renderer and records every render.
// It writes a marker comment so response bodies are non-empty.
type RenderRecorder struct {
	mu    sync.Mutex
	calls []Rendered
}

func (rr *RenderRecorder) Page(w http.ResponseWriter, _ *http.Request, name string, data any) {
	rr.record(Rendered{Name: name, Data: data})
	_, _ = w.Write([]byte("<!-- " + name + " -->"))
}

func (rr *RenderRecorder) Snippet(w http.ResponseWriter, name string, data any) {
	rr.record(Rendered{Name: name, Data: data, Snippet: true})
	_, _ = w.Write([]byte("<!-- " + name + " -->"))
}

func (rr *RenderRecorder) record(c Rendered) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	rr.calls = append(rr.calls, c)
}

// Calls returns every render so far.
func (rr *RenderRecorder) Calls() []Rendered {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return append([]Rendered(nil), rr.calls...)
}

// Last returns the most recent render; ok is false when nothing rendered.
func (rr *RenderRecorder) Last() (Rendered, bool) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	if len(rr.calls) == 0 {
		return Rendered{}, false
	}
	return rr.calls[len(rr.calls)-1], true
}

// LastData returns the most recent view model asserted to T.
func LastData[T any](rr *RenderRecorder) (T, bool) {
	var zero T
	c, ok := rr.Last()
	if !ok {
		return zero, false
	}
	v, ok := c.Data.(T)
	return v, ok
}
