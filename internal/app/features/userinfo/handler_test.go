package userinfo_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/coursehub/internal/app/features/userinfo"
	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/golang-jwt/jwt/v5"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to parse response JSON: %v", err)
	}
	return out
}

func TestServeUserInfo_Unauthenticated(t *testing.T) {
	h := userinfo.NewHandler()
	rec := httptest.NewRecorder()

	h.ServeUserInfo(rec, httptest.NewRequest("GET", "/api/user", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	resp := decode(t, rec)
	if resp["isAuthenticated"] != false || resp["name"] != "" || resp["role"] != "" {
		t.Errorf("unexpected body %v", resp)
	}
	if _, ok := resp["expiresAt"]; ok {
		t.Error("expiresAt should be omitted")
	}
}

func TestServeUserInfo_Authenticated(t *testing.T) {
	exp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test"))
	if err != nil {
		t.Fatal(err)
	}

	req := auth.WithTestUser(httptest.NewRequest("GET", "/api/user", nil), &auth.SessionUser{
		ID:    "u-1",
		Name:  "Ada Admin",
		Email: "ada@example.com",
		Role:  "admin",
		Token: token,
	})
	rec := httptest.NewRecorder()
	userinfo.NewHandler().ServeUserInfo(rec, req)

	resp := decode(t, rec)
	if resp["isAuthenticated"] != true {
		t.Errorf("isAuthenticated = %v", resp["isAuthenticated"])
	}
	for k, want := range map[string]string{"id": "u-1", "name": "Ada Admin", "email": "ada@example.com", "role": "admin"} {
		if resp[k] != want {
			t.Errorf("%s = %v, want %q", k, resp[k], want)
		}
	}
	if resp["expiresAt"] != "2026-03-01T12:00:00Z" {
		t.Errorf("expiresAt = %v", resp["expiresAt"])
	}
}

func TestServeUserInfo_OpaqueToken(t *testing.T) {
	req := auth.WithTestUser(httptest.NewRequest("GET", "/api/user", nil), &auth.SessionUser{
		ID: "u-2", Role: "instructor", Token: "opaque-token",
	})
	rec := httptest.NewRecorder()
	userinfo.NewHandler().ServeUserInfo(rec, req)

	if _, ok := decode(t, rec)["expiresAt"]; ok {
		t.Error("opaque tokens have no expiry")
	}
}
