// internal/app/system/notify/notify.go

// Package notify carries user-facing success and error notifications.
// A notification raised while handling a request is shown by the page that
// request renders; if the request redirects instead, the notification is
// parked in a flash cookie and shown by the next page.
package notify

import (
	"context"
	"encoding/gob"
	"net/http"
	"sync"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Kind is the notification style.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// Message is one notification.
type Message struct {
	Kind Kind
	Text string
}

func init() {
	gob.Register(Message{})
}

// Notifier receives notifications.
type Notifier interface {
	Notify(kind Kind, text string)
}

// Flashes binds notifications to a session store.
type Flashes struct {
	store sessions.Store
	name  string
	log   *zap.Logger
}

// New creates a Flashes that keeps parked notifications in cookie name.
func New(store sessions.Store, name string, logger *zap.Logger) *Flashes {
	if name == "" {
		name = "coursehub-flash"
	}
	return &Flashes{store: store, name: name, log: logger}
}

type box struct {
	mu       sync.Mutex
	f        *Flashes
	messages []Message
	consumed int
}

func (b *box) Notify(kind Kind, text string) {
	if text == "" {
		return
	}
	b.mu.Lock()
	b.messages = append(b.messages, Message{Kind: kind, Text: text})
	b.mu.Unlock()
}

type ctxKey struct{}

// Middleware loads parked notifications into the request and clears them
// from the cookie.
func (f *Flashes) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := &box{f: f}
		if sess, err := f.store.Get(r, f.name); err == nil {
			if flashes := sess.Flashes(); len(flashes) > 0 {
				for _, v := range flashes {
					if m, ok := v.(Message); ok {
						b.messages = append(b.messages, m)
					}
				}
				if err := sess.Save(r, w); err != nil {
					f.log.Warn("clear flash cookie failed", zap.Error(err))
				}
			}
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, b)))
	})
}

func fromRequest(r *http.Request) *box {
	b, _ := r.Context().Value(ctxKey{}).(*box)
	return b
}

type discard struct{}

func (discard) Notify(Kind, string) {}

// From returns the request's notifier. Without the middleware it discards.
func From(r *http.Request) Notifier {
	if b := fromRequest(r); b != nil {
		return b
	}
	return discard{}
}

// Take returns the notifications not yet shown and marks them shown.
func Take(r *http.Request) []Message {
	b := fromRequest(r)
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := append([]Message(nil), b.messages[b.consumed:]...)
	b.consumed = len(b.messages)
	return out
}

// Raised returns every notification raised during the request, shown or
// not.
func Raised(r *http.Request) []Message {
	b := fromRequest(r)
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Message(nil), b.messages...)
}

// park saves unshown notifications into the flash cookie.
func park(w http.ResponseWriter, r *http.Request) {
	b := fromRequest(r)
	if b == nil {
		return
	}
	pending := Take(r)
	if len(pending) == 0 {
		return
	}
	sess, _ := b.f.store.Get(r, b.f.name)
	for _, m := range pending {
		sess.AddFlash(m)
	}
	if err := sess.Save(r, w); err != nil {
		b.f.log.Warn("save flash cookie failed", zap.Error(err))
	}
}

// Redirect parks pending notifications and redirects. HTMX requests get an
// HX-Redirect header so the whole page navigates.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	park(w, r)
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
