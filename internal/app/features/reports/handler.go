// internal/app/features/reports/handler.go
package reports

import (
	"github.com/dalemusser/coursehub/internal/app/features/shared"
)

// Handler serves the admin report exports.
type Handler struct {
	shared.Base
}

func NewHandler(base shared.Base) *Handler {
	return &Handler{Base: base}
}
