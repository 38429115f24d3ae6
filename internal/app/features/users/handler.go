// internal/app/features/users/handler.go
package users

import (
	"errors"

	"github.com/dalemusser/coursehub/internal/app/features/shared"
)

// Handler serves the admin user pages. Routes are admin-only.
type Handler struct {
	shared.Base
}

func NewHandler(base shared.Base) *Handler {
	return &Handler{Base: base}
}

// errSelf marks an action an admin may not take on their own account.
var errSelf = errors.New("users: action not allowed on own account")
