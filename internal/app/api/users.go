package api

import (
	"context"
	"net/http"

	"github.com/dalemusser/coursehub/internal/domain/models"
)

// ListUsers returns every user (admin).
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := c.do(ctx, "users.list", http.MethodGet, "/admin/users", nil, nil, &out)
	return out, err
}

// GetUser returns one user (admin).
func (c *Client) GetUser(ctx context.Context, id string) (models.User, error) {
	var out models.User
	err := c.do(ctx, "users.get", http.MethodGet, "/admin/users/"+pathID(id), nil, nil, &out)
	return out, err
}

// CreateUser creates an account (admin).
func (c *Client) CreateUser(ctx context.Context, in models.UserInput) (models.User, error) {
	var out models.User
	err := c.do(ctx, "users.create", http.MethodPost, "/admin/users", nil, in, &out)
	return out, err
}

// UpdateUser replaces the editable fields of an account (admin).
func (c *Client) UpdateUser(ctx context.Context, id string, in models.UserInput) error {
	in.Password = ""
	return c.do(ctx, "users.update", http.MethodPut, "/admin/users/"+pathID(id), nil, in, nil)
}

// SetUserActive enables or disables an account (admin).
func (c *Client) SetUserActive(ctx context.Context, id string, active bool) error {
	body := struct {
		IsActive bool `json:"isActive"`
	}{active}
	return c.do(ctx, "users.status", http.MethodPatch, "/admin/users/"+pathID(id)+"/status", nil, body, nil)
}

// DeleteUser removes an account (admin).
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, "users.delete", http.MethodDelete, "/admin/users/"+pathID(id), nil, nil, nil)
}
