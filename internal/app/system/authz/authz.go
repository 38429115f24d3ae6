// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/domain/models"
)

// UserCtx returns the user's role (lowercased), name, API user id, and a
// found flag. With no user in context, or a session missing its id, it
// returns "visitor", "", "", false.
func UserCtx(r *http.Request) (role string, name string, userID string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok || user.ID == "" {
		return "visitor", "", "", false
	}
	return strings.ToLower(user.Role), user.Name, user.ID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

// IsInstructor reports whether the current request's user is an instructor.
func IsInstructor(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleInstructor
}

// CacheScope is the query-cache scope for the current user. Cached
// collections are never shared between users.
func CacheScope(r *http.Request) string {
	_, _, id, ok := UserCtx(r)
	if !ok {
		return ""
	}
	return id
}
