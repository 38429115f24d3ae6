package api

import (
	"context"
	"net/http"

	"github.com/dalemusser/coursehub/internal/domain/models"
)

// LoginInput is posted to the auth provider.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required" label:"Password"`
}

// LoginResult is the token plus the signed-in account. Some deployments
// answer with the token only; User is nil then.
type LoginResult struct {
	Token string       `json:"token" validate:"required"`
	User  *models.User `json:"user,omitempty" validate:"omitempty"`
}

// Login exchanges credentials for a bearer token. It does not need a token
// source.
func (c *Client) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, "auth.login", http.MethodPost, "/auth/login", nil, in, &out)
	return out, err
}

// Me returns the account behind the current token.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var out models.User
	err := c.do(ctx, "auth.me", http.MethodGet, "/auth/me", nil, nil, &out)
	return out, err
}

// Ping checks that the API answers at all.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "health", http.MethodGet, "/health", nil, nil, nil)
}
