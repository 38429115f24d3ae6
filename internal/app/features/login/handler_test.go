package login_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/coursehub/internal/app/features/errors"
	"github.com/dalemusser/coursehub/internal/app/features/login"
	"github.com/dalemusser/coursehub/internal/app/store/audit"
	"github.com/dalemusser/coursehub/internal/app/system/auditlog"
	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/app/system/ratelimit"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/dalemusser/coursehub/internal/testutil"
	"go.uber.org/zap"
)

type memSink struct{ events []audit.Event }

func (m *memSink) Log(_ context.Context, e audit.Event) error {
	m.events = append(m.events, e)
	return nil
}

type fixture struct {
	h    *login.Handler
	api  *testutil.FakeAPI
	rr   *testutil.RenderRecorder
	sink *memSink
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	fake := testutil.NewFakeAPI(t)
	sink := &memSink{}
	logger := zap.NewNop()
	h := login.NewHandler(
		fake.Client(t),
		testutil.NewSessionManager(t),
		ratelimit.NewLoginLimiter(60, 10),
		auditlog.New(sink, logger, auditlog.Config{Auth: "db"}),
		uierrors.NewErrorLogger(logger),
		logger,
	)
	rr := &testutil.RenderRecorder{}
	h.Render = rr
	return fixture{h: h, api: fake, rr: rr, sink: sink}
}

func postLogin(h *login.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "10.1.1.1:5000"
	rec := httptest.NewRecorder()
	h.HandleLoginPost(rec, req)
	return rec
}

func okLogin(role string) any {
	return map[string]any{
		"token": "tok-123",
		"user":  models.User{ID: "u-7", Name: "Ann Admin", Email: "ann@example.com", Role: role, IsActive: true},
	}
}

func TestHandleLoginPost_Success(t *testing.T) {
	f := newFixture(t)
	f.api.Handle("POST /auth/login", testutil.OK(okLogin("admin")))

	rec := postLogin(f.h, url.Values{"email": {"ann@example.com"}, "password": {"secret-pass"}})

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dashboard" {
		t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if _, ok := testutil.FindCookie(rec.Result(), testutil.SessionCookieName); !ok {
		t.Error("expected session cookie")
	}
	if len(f.sink.events) != 1 || f.sink.events[0].EventType != audit.EventLoginSuccess {
		t.Errorf("audit events = %+v", f.sink.events)
	}
}

func TestHandleLoginPost_SessionCarriesToken(t *testing.T) {
	f := newFixture(t)
	f.api.Handle("POST /auth/login", testutil.OK(okLogin("instructor")))

	rec := postLogin(f.h, url.Values{"email": {"ann@example.com"}, "password": {"secret-pass"}})
	cookie, ok := testutil.FindCookie(rec.Result(), testutil.SessionCookieName)
	if !ok {
		t.Fatal("no session cookie")
	}

	var got *auth.SessionUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { got, _ = auth.CurrentUser(r) })
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	f.h.SessionMgr.LoadSessionUser(next).ServeHTTP(httptest.NewRecorder(), req)

	if got == nil || got.Token != "tok-123" || got.Role != "instructor" || got.ID != "u-7" {
		t.Errorf("session user = %+v", got)
	}
}

func TestHandleLoginPost_TokenOnlyFetchesProfile(t *testing.T) {
	f := newFixture(t)
	f.api.Handle("POST /auth/login", testutil.OK(map[string]any{"token": "tok-9"}))
	f.api.Handle("GET /auth/me", testutil.OK(models.User{ID: "u-9", Name: "Ian", Email: "ian@example.com", Role: "instructor", IsActive: true}))

	rec := postLogin(f.h, url.Values{"email": {"ian@example.com"}, "password": {"secret-pass"}})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	call, ok := f.api.Last("GET /auth/me")
	if !ok || call.Auth != "Bearer tok-9" {
		t.Errorf("me call = %+v, %v", call, ok)
	}
}

func TestHandleLoginPost_ProfileLookupFailure(t *testing.T) {
	f := newFixture(t)
	f.api.Handle("POST /auth/login", testutil.OK(map[string]any{"token": "tok-9"}))
	f.api.Handle("GET /auth/me", testutil.Fail(http.StatusInternalServerError, "boom"))

	rec := postLogin(f.h, url.Values{"email": {"ian@example.com"}, "password": {"secret-pass"}})

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	if _, ok := testutil.FindCookie(rec.Result(), testutil.SessionCookieName); ok {
		t.Error("session cookie set on failed lookup")
	}
}

func TestHandleLoginPost_WithReturnURL(t *testing.T) {
	f := newFixture(t)
	f.api.Handle("POST /auth/login", testutil.OK(okLogin("admin")))

	rec := postLogin(f.h, url.Values{"email": {"ann@example.com"}, "password": {"pw-123456"}, "return": {"/bookings?status=pending"}})
	if loc := rec.Header().Get("Location"); loc != "/bookings?status=pending" {
		t.Errorf("Location = %q", loc)
	}
}

func TestHandleLoginPost_MissingFieldsSkipsAPI(t *testing.T) {
	f := newFixture(t)

	rec := postLogin(f.h, url.Values{"email": {""}, "password": {""}})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", rec.Code)
	}
	if len(f.api.Calls()) != 0 {
		t.Errorf("API called %d times", len(f.api.Calls()))
	}
	if c, _ := f.rr.Last(); c.Name != "login_form" {
		t.Errorf("rendered %q", c.Name)
	}
}

func TestHandleLoginPost_BadCredentialsShowsServerMessage(t *testing.T) {
	f := newFixture(t)
	f.api.Handle("POST /auth/login", testutil.Fail(http.StatusUnauthorized, "Invalid credentials"))

	rec := postLogin(f.h, url.Values{"email": {"ann@example.com"}, "password": {"wrong-pass"}})

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", rec.Code)
	}
	if _, ok := testutil.FindCookie(rec.Result(), testutil.SessionCookieName); ok {
		t.Error("no session expected on failure")
	}
	if len(f.sink.events) != 1 || f.sink.events[0].EventType != audit.EventLoginFailed {
		t.Errorf("audit events = %+v", f.sink.events)
	}
}

func TestHandleLoginPost_StudentRejected(t *testing.T) {
	f := newFixture(t)
	f.api.Handle("POST /auth/login", testutil.OK(okLogin("student")))

	rec := postLogin(f.h, url.Values{"email": {"sam@example.com"}, "password": {"pw-123456"}})
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandleLoginPost_RateLimited(t *testing.T) {
	f := newFixture(t)
	f.h.Limiter = ratelimit.NewLoginLimiter(1, 1)
	f.api.Handle("POST /auth/login", testutil.Fail(http.StatusUnauthorized, "Invalid credentials"))

	postLogin(f.h, url.Values{"email": {"ann@example.com"}, "password": {"wrong-pass"}})
	rec := postLogin(f.h, url.Values{"email": {"ann@example.com"}, "password": {"wrong-pass"}})

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d", rec.Code)
	}
	if hits := f.api.Hits("POST /auth/login"); hits != 1 {
		t.Errorf("API hits = %d, want 1", hits)
	}
}

func TestServeLogin_SignedInRedirects(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.h.ServeLogin(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/login", testutil.AdminUser()))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dashboard" {
		t.Errorf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}
