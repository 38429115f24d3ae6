// internal/app/features/courses/handler.go
package courses

import (
	"github.com/dalemusser/coursehub/internal/app/features/shared"
)

// Handler serves the admin course review pages.
type Handler struct {
	shared.Base
}

func NewHandler(base shared.Base) *Handler {
	return &Handler{Base: base}
}
