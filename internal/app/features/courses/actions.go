// internal/app/features/courses/actions.go
package courses

import (
	"context"
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/mutation"
	"github.com/dalemusser/coursehub/internal/app/system/navigation"
	"github.com/dalemusser/coursehub/internal/app/system/notify"
	"github.com/go-chi/chi/v5"
)

// HandleApprove publishes a pending course.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.Mutate(r, mutation.Action{
		Name:       "course.approve",
		Target:     shared.Courses,
		Instance:   id,
		Invalidate: []string{shared.Courses, shared.Course, shared.AdminStats},
		Success:    "Course approved and published.",
		Failure:    "Could not approve the course.",
	}, func(ctx context.Context, c *api.Client) error {
		return c.ApproveCourse(ctx, id)
	})
	h.finish(w, r, err, navigation.SafeBackURL(r, navigation.CoursesBackURL))
}

// HandleToggle flips a course between active and inactive.
func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.Mutate(r, mutation.Action{
		Name:       "course.toggle",
		Target:     shared.Courses,
		Instance:   id,
		Invalidate: []string{shared.Courses, shared.Course},
		Success:    "Course status updated.",
		Failure:    "Could not change the course status.",
	}, func(ctx context.Context, c *api.Client) error {
		return c.ToggleCourseActive(ctx, id)
	})
	h.finish(w, r, err, navigation.SafeBackURL(r, navigation.CoursesBackURL))
}

// HandleDelete removes a course. A return URL pointing at the deleted
// course's page falls back to the list.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.Mutate(r, mutation.Action{
		Name:       "course.delete",
		Target:     shared.Courses,
		Instance:   id,
		Invalidate: []string{shared.Courses, shared.Course, shared.AdminStats},
		Success:    "Course deleted.",
		Failure:    "Could not delete the course.",
	}, func(ctx context.Context, c *api.Client) error {
		return c.DeleteCourse(ctx, id)
	})

	back := navigation.SafeBackURL(r, navigation.CoursesBackURL)
	if err == nil && back == "/courses/"+id {
		back = navigation.CoursesBackURL.Fallback
	}
	h.finish(w, r, err, back)
}

// finish sends the browser back; the notification raised by the mutation
// rides along in the flash cookie.
func (h *Handler) finish(w http.ResponseWriter, r *http.Request, err error, back string) {
	if err != nil && h.SessionRejected(w, r, err) {
		return
	}
	notify.Redirect(w, r, back)
}
