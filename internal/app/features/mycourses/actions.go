// internal/app/features/mycourses/actions.go
package mycourses

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

// HandleSubmit sends a draft or rejected course for admin review.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.Mutate(r, mutation.Action{
		Name:       "course.submit",
		Target:     shared.MyCourses,
		Instance:   id,
		Invalidate: []string{shared.MyCourses, shared.Course},
		Success:    "Course submitted for review.",
		Failure:    "Could not submit the course.",
	}, func(ctx context.Context, c *api.Client) error {
		return c.SubmitCourse(ctx, id)
	})
	h.finish(w, r, err)
}

// HandleDelete removes one of the instructor's courses.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.Mutate(r, mutation.Action{
		Name:       "course.delete",
		Target:     shared.MyCourses,
		Instance:   id,
		Invalidate: []string{shared.MyCourses, shared.Course, shared.Sessions, shared.InstructorStats},
		Success:    "Course deleted.",
		Failure:    "Could not delete the course.",
	}, func(ctx context.Context, c *api.Client) error {
		return c.DeleteMyCourse(ctx, id)
	})
	h.finish(w, r, err)
}

func (h *Handler) finish(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil && h.SessionRejected(w, r, err) {
		return
	}
	notify.Redirect(w, r, navigation.SafeBackURL(r, navigation.InstructorCoursesBackURL))
}
