package viewdata

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
)

// Renderer draws a named template. Handlers hold one so tests can capture
// the template name and view model instead of booting the engine.
type Renderer interface {
	Page(w http.ResponseWriter, r *http.Request, name string, data any)
	Snippet(w http.ResponseWriter, name string, data any)
}

// Templates renders through the waffle template engine.
type Templates struct{}

func (Templates) Page(w http.ResponseWriter, r *http.Request, name string, data any) {
	templates.Render(w, r, name, data)
}

func (Templates) Snippet(w http.ResponseWriter, name string, data any) {
	templates.RenderSnippet(w, name, data)
}
