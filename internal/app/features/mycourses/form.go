// internal/app/features/mycourses/form.go
package mycourses

import (
	"context"
	"net/http"
	"strconv"
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

// ServeNew renders the New Course form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, formData{Price: "0", Capacity: "20"})
}

// HandleCreate validates the form and creates a draft course.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	if len(form.FieldErrors) > 0 {
		h.renderForm(w, r, http.StatusUnprocessableEntity, form)
		return
	}

	err := h.Mutate(r, mutation.Action{
		Name:       "course.create",
		Target:     shared.MyCourses,
		Instance:   "new",
		Invalidate: []string{shared.MyCourses, shared.InstructorStats},
		Success:    "Course created as a draft. Submit it for review when it's ready.",
		Failure:    "Could not create the course.",
	}, func(ctx context.Context, c *api.Client) error {
		_, err := c.CreateCourse(ctx, form.Input)
		return err
	})
	h.afterSave(w, r, form, err)
}

// ServeEdit renders the Edit Course form from the cached course list.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	c, ok := h.findCourse(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	h.renderForm(w, r, http.StatusOK, formData{
		ID:     c.ID,
		IsEdit: true,
		Status: c.Status,
		Input: models.CourseInput{
			Title:       c.Title,
			Description: c.Description,
			Category:    c.Category,
			Price:       c.Price,
			Capacity:    c.Capacity,
		},
		Price:    strconv.FormatFloat(c.Price, 'f', -1, 64),
		Capacity: strconv.Itoa(c.Capacity),
	})
}

// HandleEdit validates the form and updates the course.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	form.ID = chi.URLParam(r, "id")
	form.IsEdit = true
	form.Status = strings.TrimSpace(r.PostFormValue("status"))
	if len(form.FieldErrors) > 0 {
		h.renderForm(w, r, http.StatusUnprocessableEntity, form)
		return
	}

	err := h.Mutate(r, mutation.Action{
		Name:       "course.update",
		Target:     shared.MyCourses,
		Instance:   form.ID,
		Invalidate: []string{shared.MyCourses, shared.Course},
		Success:    "Course updated.",
		Failure:    "Could not update the course.",
	}, func(ctx context.Context, c *api.Client) error {
		return c.UpdateCourse(ctx, form.ID, form.Input)
	})
	h.afterSave(w, r, form, err)
}

func (h *Handler) afterSave(w http.ResponseWriter, r *http.Request, form formData, err error) {
	if err != nil {
		if h.SessionRejected(w, r, err) {
			return
		}
		h.renderForm(w, r, shared.FailureStatus(err), form)
		return
	}
	notify.Redirect(w, r, navigation.SafeBackURL(r, navigation.InstructorCoursesBackURL))
}

// parseForm reads and validates the course form. Number fields that do
// not parse are reported as field errors alongside the struct rules.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) (formData, bool) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/instructor/courses")
		return formData{}, false
	}
	form := formData{
		Input: models.CourseInput{
			Title:       strings.TrimSpace(r.PostFormValue("title")),
			Description: strings.TrimSpace(r.PostFormValue("description")),
			Category:    strings.ToLower(strings.TrimSpace(r.PostFormValue("category"))),
		},
		Price:    strings.TrimSpace(r.PostFormValue("price")),
		Capacity: strings.TrimSpace(r.PostFormValue("capacity")),
	}

	price, perr := strconv.ParseFloat(form.Price, 64)
	capacity, cerr := strconv.Atoi(form.Capacity)
	form.Input.Price, form.Input.Capacity = price, capacity
	res := inputval.Validate(form.Input)
	if perr != nil {
		res.Errors["price"] = "Price must be a number."
	}
	if cerr != nil {
		res.Errors["capacity"] = "Capacity must be a whole number."
	}
	if len(res.Errors) > 0 {
		form.FieldErrors = res.Errors
	}
	return form, true
}

// findCourse writes the error response itself when it returns false.
func (h *Handler) findCourse(w http.ResponseWriter, r *http.Request, id string) (models.Course, bool) {
	rows, err := h.loadCourses(r)
	if err != nil {
		h.ErrLog.LogAPIError(w, r, "list my courses failed", err, "Could not load your courses.", "/instructor/courses")
		return models.Course{}, false
	}
	c, ok := shared.Find(rows, courseID, id)
	if !ok {
		uierrors.HTMXNotFound(w, r, "Course not found.", "/instructor/courses")
		return models.Course{}, false
	}
	return c, true
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, data formData) {
	title := "New Course"
	if data.IsEdit {
		title = "Edit Course"
	}
	data.BaseVM = viewdata.NewBaseVM(r, title, "/instructor/courses")
	data.ReturnURL = navigation.SafeBackURL(r, navigation.InstructorCoursesBackURL)
	if status != http.StatusOK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	h.Render.Page(w, r, "mycourse_form", data)
}
