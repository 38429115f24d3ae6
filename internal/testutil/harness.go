package testutil

import (
	"net/http"
	"sync"
	"testing"
	"time"

	uierrors "github.com/dalemusser/coursehub/internal/app/features/errors"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/mutation"
	"github.com/dalemusser/coursehub/internal/app/system/notify"
	"github.com/dalemusser/coursehub/internal/app/system/querycache"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Harness bundles a FakeAPI with a feature Base that talks to it.
type Harness struct {
	API     *FakeAPI
	Base    shared.Base
	Cache   *querycache.Cache
	Render  *RenderRecorder
	Flashes *notify.Flashes

	mu      sync.Mutex
	notices []notify.Message
	expired int
}

// NewHarness builds a Harness with a 1-minute cache. A rejected token
// redirects to /login and is counted by Expired. Error pages render into
// the same RenderRecorder as feature pages.
func NewHarness(t *testing.T) *Harness {
	t.Helper()
	h := &Harness{
		API:    NewFakeAPI(t),
		Cache:  querycache.New(time.Minute, nil),
		Render: &RenderRecorder{},
	}
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	errLog.Expire = func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		h.expired++
		h.mu.Unlock()
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
	h.Base = shared.NewBase(
		h.API.Client(t),
		h.Cache,
		mutation.NewRunner(h.Cache, nil, nil, logger),
		errLog,
		logger,
	)
	h.Base.Render = h.Render

	prev := uierrors.Renderer
	uierrors.Renderer = h.Render
	t.Cleanup(func() { uierrors.Renderer = prev })

	h.Flashes = notify.New(sessions.NewCookieStore(securecookie.GenerateRandomKey(32)), "", logger)
	return h
}

// Do serves req through the flash middleware and records every
// notification the handler raised.
func (h *Harness) Do(handler http.HandlerFunc, req *http.Request) *ResponseRecorder {
	rec := NewRecorder()
	h.Flashes.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler(w, r)
		h.mu.Lock()
		h.notices = notify.Raised(r)
		h.mu.Unlock()
	})).ServeHTTP(rec, req)
	return rec
}

// Notices returns the notifications raised by the last Do.
func (h *Harness) Notices() []notify.Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]notify.Message(nil), h.notices...)
}

// Expired counts sessions ended because the API rejected the token.
func (h *Harness) Expired() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.expired
}

// Cached reports whether key is currently cached for scope.
func (h *Harness) Cached(scope string, key querycache.Key) bool {
	for _, k := range h.Cache.Keys(scope) {
		if k == key {
			return true
		}
	}
	return false
}
