// internal/app/features/settings/routes.go
package settings

import "github.com/go-chi/chi/v5"

// MountRoutes mounts all settings routes on the given router.
// The caller is responsible for admin gating.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.ServeSettings)
	r.Post("/", h.HandleSettings)

	r.Post("/backups", h.HandleCreateBackup)
	r.Post("/backups/restore", h.HandleRestore)
	r.Get("/backups/{id}/download", h.ServeDownload)
	r.Post("/backups/{id}/delete", h.HandleDeleteBackup)
}
