// internal/app/features/shared/remote.go

// Package shared holds what every remote-collection feature needs: the
// per-request API client, cached collection loads, and mutations that
// invalidate those collections.
package shared

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/api"
	uierrors "github.com/dalemusser/coursehub/internal/app/features/errors"
	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/app/system/authz"
	"github.com/dalemusser/coursehub/internal/app/system/listview"
	"github.com/dalemusser/coursehub/internal/app/system/mutation"
	"github.com/dalemusser/coursehub/internal/app/system/notify"
	"github.com/dalemusser/coursehub/internal/app/system/querycache"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Query-cache collection names.
const (
	Users           = "users"
	Courses         = "courses"
	Course          = "course"
	MyCourses       = "my-courses"
	Bookings        = "bookings"
	MyBookings      = "my-bookings"
	Sessions        = "sessions"
	Students        = "students"
	AdminStats      = "admin-stats"
	Revenue         = "revenue"
	InstructorStats = "instructor-stats"
	Settings        = "settings"
	Backups         = "backups"
)

// InFlightMessage is shown when the same action is submitted twice.
const InFlightMessage = "That request is already being processed."

// Base is embedded by feature handlers.
type Base struct {
	API    *api.Client
	Cache  *querycache.Cache
	Runner *mutation.Runner
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
	Render viewdata.Renderer
}

// NewBase wires a Base that renders through the template engine.
func NewBase(client *api.Client, cache *querycache.Cache, runner *mutation.Runner,
	errLog *uierrors.ErrorLogger, logger *zap.Logger) Base {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Base{
		API:    client,
		Cache:  cache,
		Runner: runner,
		ErrLog: errLog,
		Log:    logger,
		Render: viewdata.Templates{},
	}
}

// Client returns an API client carrying the signed-in user's token.
func (b *Base) Client(r *http.Request) *api.Client {
	return b.API.WithTokenSource(auth.TokenSource(r))
}

// Load returns the collection named by key for the signed-in user, from the
// cache when fresh. Errors are never cached.
func Load[T any](b *Base, r *http.Request, key querycache.Key, fetch func(ctx context.Context, c *api.Client) (T, error)) (T, error) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.API(), b.Log, "load "+key.String())
	defer cancel()

	c := b.Client(r)
	call := func(ctx context.Context) (T, error) { return fetch(ctx, c) }
	if b.Cache == nil {
		return call(ctx)
	}
	return querycache.Fetch(ctx, b.Cache, authz.CacheScope(r), key, call)
}

// Mutate runs fn through the mutation runner with the request's scope,
// actor, and notifier filled in. A duplicate submit is reported to the
// user as info and returns mutation.ErrInFlight.
func (b *Base) Mutate(r *http.Request, act mutation.Action, fn func(ctx context.Context, c *api.Client) error) error {
	d := act.Timeout
	if d <= 0 {
		d = timeouts.API()
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), d, b.Log, act.Name)
	defer cancel()

	c := b.Client(r)
	err := b.Runner.Run(ctx, mutation.For(r, act), func(ctx context.Context) error { return fn(ctx, c) })
	if errors.Is(err, mutation.ErrInFlight) {
		notify.From(r).Notify(notify.Info, InFlightMessage)
	}
	return err
}

// SessionRejected ends the session when err says the API no longer
// accepts the token, and reports whether it did.
func (b *Base) SessionRejected(w http.ResponseWriter, r *http.Request, err error) bool {
	if !api.IsUnauthorized(err) {
		return false
	}
	b.ErrLog.LogAPIError(w, r, "api rejected session", err, "", auth.LoginPath)
	return true
}

// LoadError is the inline message shown when a list cannot be fetched.
func LoadError(err error, what string) string {
	return api.Message(err, "Could not load "+what+". Please try again.")
}

// ListURL is path with the list state encoded, used as the "return"
// target of row actions.
func ListURL(path string, q listview.Query) string {
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

// RenderList renders the full list page, or only its table when an htmx
// request targets the table element.
func (b *Base) RenderList(w http.ResponseWriter, r *http.Request, page, table string, data any) {
	if r.Header.Get("HX-Request") == "true" && r.Header.Get("HX-Target") == table {
		b.Render.Snippet(w, table, data)
		return
	}
	b.Render.Page(w, r, page, data)
}

// Find returns the row whose id is want.
func Find[T any](rows []T, id func(T) string, want string) (T, bool) {
	for _, row := range rows {
		if id(row) == want {
			return row, true
		}
	}
	var zero T
	return zero, false
}

// FailureStatus is the response code for a form re-rendered after a
// failed mutation: the API's 4xx, 409 for a duplicate submit, else 502.
func FailureStatus(err error) int {
	if errors.Is(err, mutation.ErrInFlight) {
		return http.StatusConflict
	}
	if code := api.StatusCode(err); code >= 400 && code < 500 {
		return code
	}
	return http.StatusBadGateway
}

// IsHTMX reports whether the request came from htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
