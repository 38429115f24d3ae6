// internal/app/features/coursesessions/handler.go
package coursesessions

import (
	"github.com/dalemusser/coursehub/internal/app/features/shared"
)

// Handler serves the schedule of one instructor course.
type Handler struct {
	shared.Base
}

func NewHandler(base shared.Base) *Handler {
	return &Handler{Base: base}
}
