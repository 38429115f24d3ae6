// internal/app/features/userinfo/handler.go
package userinfo

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/auth"
)

// Handler serves the signed-in console user as JSON.
type Handler struct{}

// NewHandler creates a new userinfo handler.
func NewHandler() *Handler {
	return &Handler{}
}

type response struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	// ExpiresAt is the API token's expiry in RFC 3339, empty when the
	// token carries none.
	ExpiresAt string `json:"expiresAt,omitempty"`
}

// ServeUserInfo returns the current user's identity. The page shell polls it
// to warn before the API token runs out.
//
//	{ "isAuthenticated": true, "id": "...", "name": "...", "email": "...", "role": "admin", "expiresAt": "..." }
func (h *Handler) ServeUserInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	user, ok := auth.CurrentUser(r)
	if !ok {
		_ = json.NewEncoder(w).Encode(response{})
		return
	}

	resp := response{
		IsAuthenticated: true,
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Role:            user.Role,
	}
	if exp, ok := auth.TokenExpiry(user.Token); ok {
		resp.ExpiresAt = exp.UTC().Format(time.RFC3339)
	}
	_ = json.NewEncoder(w).Encode(resp)
}
