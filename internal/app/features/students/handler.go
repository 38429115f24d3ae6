// internal/app/features/students/handler.go
package students

import (
	"github.com/dalemusser/coursehub/internal/app/features/shared"
)

// Handler serves the students enrolled in an instructor's courses.
type Handler struct {
	shared.Base
}

func NewHandler(base shared.Base) *Handler {
	return &Handler{Base: base}
}
