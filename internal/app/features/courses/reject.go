// internal/app/features/courses/reject.go
package courses

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/mutation"
	"github.com/dalemusser/coursehub/internal/app/system/navigation"
	"github.com/dalemusser/coursehub/internal/app/system/notify"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
)

// ServeRejectModal renders the reject dialog for a pending course.
func (h *Handler) ServeRejectModal(w http.ResponseWriter, r *http.Request) {
	course, err := h.loadCourse(r, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogAPIError(w, r, "get course failed", err, "Could not load the course.", "/courses")
		return
	}
	h.renderReject(w, r, rejectModalData{Course: course})
}

// HandleReject sends the course back to its instructor with a reason.
// Validation and API failures re-render the dialog.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	in := models.RejectInput{Reason: strings.TrimSpace(r.FormValue("reason"))}
	data := rejectModalData{Course: models.Course{ID: id}, Reason: in.Reason}

	if res := inputval.Validate(in); res.HasErrors() {
		data.FieldErrors = res.Errors
		h.rerenderReject(w, r, data)
		return
	}

	err := h.Mutate(r, mutation.Action{
		Name:       "course.reject",
		Target:     shared.Courses,
		Instance:   id,
		Invalidate: []string{shared.Courses, shared.Course, shared.AdminStats},
		Success:    "Course rejected. The instructor has been notified.",
		Failure:    "Could not reject the course.",
	}, func(ctx context.Context, c *api.Client) error {
		return c.RejectCourse(ctx, id, in)
	})
	if err == nil {
		notify.Redirect(w, r, navigation.SafeBackURL(r, navigation.CoursesBackURL))
		return
	}
	if h.SessionRejected(w, r, err) {
		return
	}
	h.rerenderReject(w, r, data)
}

// rerenderReject fills in the course title from the cache when it can.
func (h *Handler) rerenderReject(w http.ResponseWriter, r *http.Request, data rejectModalData) {
	if rows, err := h.loadCourses(r); err == nil {
		if c, ok := shared.Find(rows, courseID, data.Course.ID); ok {
			data.Course = c
		}
	}
	if !shared.IsHTMX(r) && len(data.FieldErrors) > 0 {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	h.renderReject(w, r, data)
}

func (h *Handler) renderReject(w http.ResponseWriter, r *http.Request, data rejectModalData) {
	data.ReturnURL = navigation.SafeBackURL(r, navigation.CoursesBackURL)
	data.CSRFToken = csrf.Token(r)
	data.Notices = notify.Take(r)
	h.Render.Snippet(w, "course_reject_modal", data)
}
