// internal/app/features/settings/handler.go
package settings

import (
	"github.com/dalemusser/coursehub/internal/app/features/shared"
)

// Handler owns all admin-facing Settings handlers: platform settings and
// backups.
type Handler struct {
	shared.Base
}

// NewHandler constructs a settings Handler.
func NewHandler(base shared.Base) *Handler {
	return &Handler{Base: base}
}
