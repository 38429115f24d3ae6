// internal/app/features/mycourses/handler.go
package mycourses

import (
	"github.com/dalemusser/coursehub/internal/app/features/shared"
)

// Handler serves an instructor's own courses.
type Handler struct {
	shared.Base
}

func NewHandler(base shared.Base) *Handler {
	return &Handler{Base: base}
}
