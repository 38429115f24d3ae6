// internal/app/features/coursesessions/templates.go
package coursesessions

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "coursesessions",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
