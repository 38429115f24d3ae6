// internal/app/features/courses/routes.go
package courses

import (
	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the admin course pages, typically at "/courses".
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleAdmin))

		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeView)

		pr.Post("/{id}/approve", h.HandleApprove)
		pr.Get("/{id}/reject", h.ServeRejectModal)
		pr.Post("/{id}/reject", h.HandleReject)
		pr.Post("/{id}/toggle", h.HandleToggle)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
