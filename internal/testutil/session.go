package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"go.uber.org/zap"
)

// SessionCookieName is the cookie name used by NewSessionManager.
const SessionCookieName = "test-session"

// NewSessionManager builds a cookie session manager with a fixed test key.
func NewSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("test-session-key-must-be-32-chars-long", SessionCookieName, "", 24*time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sm
}

// FindCookie returns the named cookie from a response.
func FindCookie(resp *http.Response, name string) (*http.Cookie, bool) {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
