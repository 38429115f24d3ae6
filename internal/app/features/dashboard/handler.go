// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/app/system/authz"
	"github.com/dalemusser/coursehub/internal/domain/models"
)

type Handler struct {
	shared.Base
}

func NewHandler(base shared.Base) *Handler {
	return &Handler{Base: base}
}

// ServeDashboard dispatches to the view for the signed-in role.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
		return
	}

	switch role {
	case models.RoleAdmin:
		h.ServeAdmin(w, r)
	case models.RoleInstructor:
		h.ServeInstructor(w, r)
	default:
		http.Redirect(w, r, auth.ForbiddenPath, http.StatusSeeOther)
	}
}
