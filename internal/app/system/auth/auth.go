// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/auditlog"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
	"golang.org/x/crypto/hkdf"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session keys                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	isAuthKey  = "is_authenticated"
	userIDKey  = "user_id"
	userName   = "user_name"
	userEmail  = "user_email"
	userRole   = "user_role"
	userToken  = "api_token"
	signedInAt = "signed_in_at"
)

// LoginPath is where unauthenticated browsers are sent.
const LoginPath = "/login"

// ForbiddenPath is where signed-in users without the needed role are sent.
const ForbiddenPath = "/forbidden"

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is what we cache in the session & inject into r.Context().
// Token is the bearer token issued by the platform API at login.
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Role  string
	Token string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects u into the request context the way LoadSessionUser
// does. Handler tests use it to bypass the cookie round-trip.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Session manager                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager owns the encrypted cookie store that carries the signed-in
// user and their API token.
type SessionManager struct {
	store  *sessions.CookieStore
	name   string
	maxAge time.Duration
	logger *zap.Logger
	now    func() time.Time
	audit  *auditlog.Logger
}

// NewSessionManager builds a cookie store whose signing and encryption keys
// are derived from sessionKey with HKDF-SHA256.
//
// In production (secure=true), cookies are Secure + SameSite=Lax.
// In local dev over http://localhost, use secure=false so cookies are accepted.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, errors.New("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = "coursehub-session"
	}

	hashKey, err := deriveKey(sessionKey, "coursehub session signing")
	if err != nil {
		return nil, err
	}
	blockKey, err := deriveKey(sessionKey, "coursehub session encryption")
	if err != nil {
		return nil, err
	}

	store := &sessions.CookieStore{
		Codecs: securecookie.CodecsFromPairs(hashKey, blockKey),
		Options: &sessions.Options{
			Domain:   domain,
			Path:     "/",
			Secure:   secure,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
	if maxAge > 0 {
		store.MaxAge(int(maxAge.Seconds()))
	}

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{
		store:  store,
		name:   name,
		maxAge: maxAge,
		logger: logger,
		now:    time.Now,
	}, nil
}

// CSRFKey derives the 32-byte gorilla/csrf authentication key from the
// same secret as the session cookies.
func CSRFKey(sessionKey string) ([]byte, error) {
	return deriveKey(sessionKey, "coursehub csrf")
}

func deriveKey(secret, info string) ([]byte, error) {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(info))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	return key, nil
}

// SetAudit records session expiry in the audit log.
func (sm *SessionManager) SetAudit(l *auditlog.Logger) { sm.audit = l }

func (sm *SessionManager) auditExpired(r *http.Request, userID string) {
	if sm.audit != nil {
		sm.audit.SessionExpired(r.Context(), r, userID)
	}
}

// Store exposes the cookie store so other session-backed helpers (flash
// notifications) share the same keys and options.
func (sm *SessionManager) Store() sessions.Store { return sm.store }

// Name is the session cookie name.
func (sm *SessionManager) Name() string { return sm.name }

// SignIn writes u into the session.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u SessionUser) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[userName] = u.Name
	sess.Values[userEmail] = u.Email
	sess.Values[userRole] = strings.ToLower(u.Role)
	sess.Values[userToken] = u.Token
	sess.Values[signedInAt] = sm.now().Unix()
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// SignOut expires the session cookie.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// LoadSessionUser injects the user into context if they are logged in.
// A session whose token has expired is cleared and treated as signed out.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			// Undecodable cookie (rotated key, tampering). Start over.
			sm.logger.Debug("session decode failed", zap.Error(err))
		}

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:    getString(sess, userIDKey),
				Name:  getString(sess, userName),
				Email: getString(sess, userEmail),
				Role:  getString(sess, userRole),
				Token: getString(sess, userToken),
			}
			if TokenExpired(u.Token, sm.now()) {
				sm.logger.Info("api token expired; signing out", zap.String("user_id", u.ID))
				_ = sm.SignOut(w, r)
				sm.auditExpired(r, u.ID)
			} else {
				r = withUser(r, u)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// If not signed in:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - other callers: 401 Unauthorized with a plain error body.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		sendToLogin(w, r)
	})
}

// RequireRole ensures there is a user with one of the allowed roles in
// context. Role comparison is case-insensitive.
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				sendToLogin(w, r)
				return
			}

			if _, has := set[strings.ToLower(u.Role)]; !has {
				if r.Header.Get("HX-Request") == "true" {
					w.Header().Set("HX-Redirect", ForbiddenPath)
					w.WriteHeader(http.StatusForbidden)
					return
				}
				if wantsHTML(r) {
					http.Redirect(w, r, ForbiddenPath, http.StatusSeeOther)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Expire clears the session and sends the browser to the login page. Handlers
// call it when the API rejects the stored token.
func (sm *SessionManager) Expire(w http.ResponseWriter, r *http.Request) {
	if u, ok := CurrentUser(r); ok {
		sm.auditExpired(r, u.ID)
	}
	if err := sm.SignOut(w, r); err != nil {
		sm.logger.Warn("clear session after 401 failed", zap.Error(err))
	}
	sendToLogin(w, r)
}

// helpers

func sendToLogin(w http.ResponseWriter, r *http.Request) {
	ret := url.QueryEscape(currentURI(r))

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", LoginPath+"?return="+ret)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if wantsHTML(r) {
		http.Redirect(w, r, LoginPath+"?return="+ret, http.StatusSeeOther)
		return
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
