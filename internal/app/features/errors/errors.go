// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Status  int
	Message string
}

// inlineData is the view model for the htmx error fragment.
type inlineData struct {
	Message string
	BackURL string
}

// Renderer draws error pages. Tests replace it.
var Renderer viewdata.Renderer = viewdata.Templates{}

// Handler is the errors feature handler.
// No API access needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	RenderForbidden(w, r, "You don't have permission to view this page.", "/")
}

// NotFound renders the 404 page for unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	RenderNotFound(w, r, "The page you were looking for doesn't exist.", "/")
}
