// internal/app/features/students/routes.go
package students

import (
	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the students pages, typically at "/instructor/students".
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleInstructor))

		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeEnrollment)
	})

	return r
}
