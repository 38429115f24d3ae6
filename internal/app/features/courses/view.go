// internal/app/features/courses/view.go
package courses

import (
	"context"
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/coursehub/internal/app/system/navigation"
	"github.com/dalemusser/coursehub/internal/app/system/querycache"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// ServeView shows one course with its rendered description.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	course, err := h.loadCourse(r, id)
	if err != nil {
		h.ErrLog.LogAPIError(w, r, "get course failed", err, "Could not load the course.", "/courses")
		return
	}

	back := navigation.SafeBackURL(r, navigation.CoursesBackURL)
	h.Render.Page(w, r, "course_view", viewData{
		BaseVM:      viewdata.NewBaseVM(r, course.Title, back),
		Course:      course,
		Description: htmlsanitize.Markdown(course.Description),
		ReturnURL:   back,
	})
}

func (h *Handler) loadCourse(r *http.Request, id string) (models.Course, error) {
	return shared.Load(&h.Base, r, querycache.K(shared.Course, id), func(ctx context.Context, c *api.Client) (models.Course, error) {
		return c.GetCourse(ctx, id)
	})
}
