// internal/app/features/coursesessions/form.go
package coursesessions

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/coursehub/internal/app/api"
	uierrors "github.com/dalemusser/coursehub/internal/app/features/errors"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/mutation"
	"github.com/dalemusser/coursehub/internal/app/system/navigation"
	"github.com/dalemusser/coursehub/internal/app/system/notify"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// ServeNew renders the New Session form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, formData{CourseID: chi.URLParam(r, "courseID")})
}

// HandleCreate validates the form and schedules the session.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	form, ok := h.parseForm(w, r, courseID)
	if !ok {
		return
	}
	if len(form.FieldErrors) > 0 {
		h.renderForm(w, r, http.StatusUnprocessableEntity, form)
		return
	}

	err := h.Mutate(r, mutation.Action{
		Name:       "session.create",
		Target:     shared.Sessions,
		Instance:   courseID + "/new",
		Invalidate: []string{shared.Sessions, shared.InstructorStats},
		Success:    "Session scheduled.",
		Failure:    "Could not schedule the session.",
	}, func(ctx context.Context, c *api.Client) error {
		_, err := c.CreateSession(ctx, courseID, form.Input)
		return err
	})
	h.afterSave(w, r, form, err)
}

// ServeEdit renders the Edit Session form from the cached session list.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	id := chi.URLParam(r, "id")

	rows, err := h.loadSessions(r, courseID)
	if err != nil {
		h.ErrLog.LogAPIError(w, r, "list sessions failed", err, "Could not load sessions.", basePath(courseID))
		return
	}
	s, ok := shared.Find(rows, sessionID, id)
	if !ok {
		uierrors.HTMXNotFound(w, r, "Session not found.", basePath(courseID))
		return
	}

	h.renderForm(w, r, http.StatusOK, formData{
		CourseID: courseID,
		ID:       s.ID,
		IsEdit:   true,
		Input: models.SessionInput{
			Title:      s.Title,
			Date:       s.Date.Format("2006-01-02"),
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
			Location:   s.Location,
			MeetingURL: s.MeetingURL,
		},
	})
}

// HandleEdit validates the form and updates the session.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	form, ok := h.parseForm(w, r, courseID)
	if !ok {
		return
	}
	form.ID = chi.URLParam(r, "id")
	form.IsEdit = true
	if len(form.FieldErrors) > 0 {
		h.renderForm(w, r, http.StatusUnprocessableEntity, form)
		return
	}

	err := h.Mutate(r, mutation.Action{
		Name:       "session.update",
		Target:     shared.Sessions,
		Instance:   form.ID,
		Invalidate: []string{shared.Sessions, shared.InstructorStats},
		Success:    "Session updated.",
		Failure:    "Could not update the session.",
	}, func(ctx context.Context, c *api.Client) error {
		return c.UpdateSession(ctx, form.ID, form.Input)
	})
	h.afterSave(w, r, form, err)
}

// HandleDelete removes a session.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	id := chi.URLParam(r, "id")
	err := h.Mutate(r, mutation.Action{
		Name:       "session.delete",
		Target:     shared.Sessions,
		Instance:   id,
		Invalidate: []string{shared.Sessions, shared.InstructorStats},
		Success:    "Session deleted.",
		Failure:    "Could not delete the session.",
	}, func(ctx context.Context, c *api.Client) error {
		return c.DeleteSession(ctx, id)
	})
	if err != nil && h.SessionRejected(w, r, err) {
		return
	}
	notify.Redirect(w, r, navigation.SafeBackURL(r, navigation.SessionsBackURL(courseID)))
}

func (h *Handler) afterSave(w http.ResponseWriter, r *http.Request, form formData, err error) {
	if err != nil {
		if h.SessionRejected(w, r, err) {
			return
		}
		h.renderForm(w, r, shared.FailureStatus(err), form)
		return
	}
	notify.Redirect(w, r, navigation.SafeBackURL(r, navigation.SessionsBackURL(form.CourseID)))
}

// parseForm reads and validates the session form. A session must end
// after it starts.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request, courseID string) (formData, bool) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", basePath(courseID))
		return formData{}, false
	}
	form := formData{
		CourseID: courseID,
		Input: models.SessionInput{
			Title:      strings.TrimSpace(r.PostFormValue("title")),
			Date:       strings.TrimSpace(r.PostFormValue("date")),
			StartTime:  strings.TrimSpace(r.PostFormValue("startTime")),
			EndTime:    strings.TrimSpace(r.PostFormValue("endTime")),
			Location:   strings.TrimSpace(r.PostFormValue("location")),
			MeetingURL: strings.TrimSpace(r.PostFormValue("meetingUrl")),
		},
	}

	res := inputval.Validate(form.Input)
	if _, bad := res.Errors["endTime"]; !bad && form.Input.StartTime != "" && form.Input.EndTime <= form.Input.StartTime {
		res.Errors["endTime"] = "End time must be after the start time."
	}
	if len(res.Errors) > 0 {
		form.FieldErrors = res.Errors
	}
	return form, true
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, data formData) {
	title := "New Session"
	if data.IsEdit {
		title = "Edit Session"
	}
	data.BaseVM = viewdata.NewBaseVM(r, title, basePath(data.CourseID))
	data.CourseTitle = h.courseTitle(r, data.CourseID)
	data.ReturnURL = navigation.SafeBackURL(r, navigation.SessionsBackURL(data.CourseID))
	if status != http.StatusOK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	h.Render.Page(w, r, "session_form", data)
}
