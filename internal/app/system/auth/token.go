// internal/app/system/auth/token.go
package auth

import (
	"net/http"
	"time"

	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// The API is the authority on validity; the console only uses exp to avoid
// sending a token it already knows is stale. ok is false for opaque tokens
// and tokens without exp.
func TokenExpiry(token string) (exp time.Time, ok bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// TokenExpired reports whether token is a JWT whose exp is not after now.
func TokenExpired(token string, now time.Time) bool {
	exp, ok := TokenExpiry(token)
	return ok && !exp.After(now)
}

type sessionTokenSource struct {
	token string
}

// Token returns the bearer token stored for the signed-in user, or
// api.ErrNoToken when there is none.
func (s sessionTokenSource) Token() (*oauth2.Token, error) {
	if s.token == "" {
		return nil, api.ErrNoToken
	}
	t := &oauth2.Token{AccessToken: s.token, TokenType: "Bearer"}
	if exp, ok := TokenExpiry(s.token); ok {
		t.Expiry = exp
	}
	return t, nil
}

// TokenSource returns the token source for the request's signed-in user.
func TokenSource(r *http.Request) oauth2.TokenSource {
	u, ok := CurrentUser(r)
	if !ok {
		return sessionTokenSource{}
	}
	return sessionTokenSource{token: u.Token}
}
