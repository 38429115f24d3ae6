// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
)

func render(w http.ResponseWriter, r *http.Request, status int, title, msg, backURL string) {
	if backURL == "" {
		backURL = "/"
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, title, backURL),
		Status:  status,
		Message: msg,
	}
	data.BackURL = backURL
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	Renderer.Page(w, r, "error_page", data)
}

// RenderUnauthorized shows a friendly "sign in required" page.
// If backURL is empty, it will default to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}
	render(w, r, http.StatusUnauthorized, "Sign in required", "Please sign in to continue.", backURL)
}

// RenderForbidden shows a friendly access error page with a message.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	render(w, r, http.StatusForbidden, "Access denied", msg, backURL)
}

// RenderNotFound shows a not-found page.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	render(w, r, http.StatusNotFound, "Not found", msg, backURL)
}

// RenderBadRequest shows a bad-request page.
func RenderBadRequest(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	render(w, r, http.StatusBadRequest, "Bad request", msg, backURL)
}

// RenderServerError shows a generic failure page.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	render(w, r, http.StatusInternalServerError, "Something went wrong", msg, backURL)
}

// IsHTMX reports whether r was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// HTMXError answers an htmx request with an inline alert swapped into the
// page's alert region; plain requests get fallback instead.
func HTMXError(w http.ResponseWriter, r *http.Request, status int, msg string, fallback func()) {
	if !IsHTMX(r) {
		fallback()
		return
	}
	w.Header().Set("HX-Retarget", "#page-alert")
	w.Header().Set("HX-Reswap", "innerHTML")
	w.WriteHeader(status)
	Renderer.Snippet(w, "error_inline", inlineData{Message: msg})
}

// HTMXBadRequest is HTMXError with a bad-request page as fallback.
func HTMXBadRequest(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	HTMXError(w, r, http.StatusBadRequest, msg, func() { RenderBadRequest(w, r, msg, backURL) })
}

// HTMXForbidden is HTMXError with a forbidden page as fallback.
func HTMXForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	HTMXError(w, r, http.StatusForbidden, msg, func() { RenderForbidden(w, r, msg, backURL) })
}

// HTMXNotFound is HTMXError with a not-found page as fallback.
func HTMXNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	HTMXError(w, r, http.StatusNotFound, msg, func() { RenderNotFound(w, r, msg, backURL) })
}

// HTMXServerError is HTMXError with a server-error page as fallback.
func HTMXServerError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	HTMXError(w, r, http.StatusInternalServerError, msg, func() { RenderServerError(w, r, msg, backURL) })
}
