package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dalemusser/coursehub/internal/app/api"
	"go.uber.org/zap"
)

// Call is one request received by a FakeAPI.
type Call struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   []byte
}

// FakeAPI is an in-process stand-in for the platform REST API. Routes are
// registered as "METHOD /path" relative to the API root; unregistered routes
// answer 404 with an API-style error body.
type FakeAPI struct {
	Server *httptest.Server

	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  []Call
}

// NewFakeAPI starts a FakeAPI that is closed when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{routes: map[string]http.HandlerFunc{}}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// Handle registers h for "METHOD /path".
func (f *FakeAPI) Handle(route string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[route] = h
}

// Client returns an API client pointed at the fake with no token source.
func (f *FakeAPI) Client(t *testing.T) *api.Client {
	t.Helper()
	c, err := api.New(api.Config{BaseURL: f.Server.URL}, zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	return c
}

// Calls returns a copy of every request received so far.
func (f *FakeAPI) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Hits counts requests to "METHOD /path".
func (f *FakeAPI) Hits(route string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Method+" "+c.Path == route {
			n++
		}
	}
	return n
}

// Last returns the most recent request to "METHOD /path".
func (f *FakeAPI) Last(route string) (Call, bool) {
	calls := f.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method+" "+calls[i].Path == route {
			return calls[i], true
		}
	}
	return Call{}, false
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	route := r.Method + " " + r.URL.Path

	f.mu.Lock()
	f.calls = append(f.calls, Call{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Auth:   r.Header.Get("Authorization"),
		Body:   body,
	})
	h := f.routes[route]
	f.mu.Unlock()

	if h == nil {
		Fail(http.StatusNotFound, "no route "+route)(w, r)
		return
	}
	h(w, r)
}

// OK answers with the standard success envelope around data.
func OK(data any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
	}
}

// Fail answers with status and an API error message.
func Fail(status int, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
	}
}

// File answers with a binary attachment.
func File(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = io.WriteString(w, body)
	}
}
