// internal/app/features/bookings/routes.go
package bookings

import (
	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the admin bookings pages, typically at "/bookings".
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleAdmin))

		pr.Get("/", h.ServeList)
		pr.Get("/export", h.ServeExport)

		pr.Get("/{id}/status", h.ServeStatusModal)
		pr.Post("/{id}/status", h.HandleStatus)
		pr.Get("/{id}/refund", h.ServeRefundModal)
		pr.Post("/{id}/refund", h.HandleRefund)
	})

	return r
}

// InstructorRoutes mounts the read-only list, typically at
// "/instructor/bookings".
func InstructorRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleInstructor))

		pr.Get("/", h.ServeMyList)
	})

	return r
}
