// internal/app/features/students/students.go
package students

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/dalemusser/coursehub/internal/app/api"
	uierrors "github.com/dalemusser/coursehub/internal/app/features/errors"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/listview"
	"github.com/dalemusser/coursehub/internal/app/system/navigation"
	"github.com/dalemusser/coursehub/internal/app/system/querycache"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type listData struct {
	viewdata.BaseVM

	View      listview.View[models.Enrollment]
	Statuses  []string
	Courses   []models.CourseRef
	ReturnURL string
	LoadError string
}

type enrollmentData struct {
	viewdata.BaseVM

	Enrollment models.Enrollment
}

func enrollmentID(e models.Enrollment) string { return e.ID }

var listSpec = listview.Spec[models.Enrollment]{
	ID: enrollmentID,
	Search: []func(models.Enrollment) string{
		func(e models.Enrollment) string { return e.Student.Name },
		func(e models.Enrollment) string { return e.Student.Email },
		func(e models.Enrollment) string { return e.Course.Title },
	},
	Filters: []listview.Filter[models.Enrollment]{
		{Name: "status", Label: "Status", Options: models.EnrollmentStatuses, Value: models.Enrollment.StatusGroup},
		{Name: "course", Label: "Course", Value: func(e models.Enrollment) string { return e.Course.ID }},
	},
	Date: func(e models.Enrollment) time.Time { return e.EnrolledAt },
	Sorts: []listview.Sort[models.Enrollment]{
		{Key: "name", Label: "Student", Text: func(e models.Enrollment) string { return e.Student.Name }},
		{Key: "progress", Label: "Progress", Number: func(e models.Enrollment) float64 { return e.Progress }},
		{Key: "enrolled", Label: "Enrolled", Time: func(e models.Enrollment) time.Time { return e.EnrolledAt }},
	},
	DefaultSort: "name",
	DefaultDir:  listview.Asc,
}

// ServeList renders enrollments across the instructor's courses.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := listview.ParseQuery(r, listSpec)
	data := listData{
		BaseVM:   viewdata.NewBaseVM(r, "Students", "/dashboard"),
		Statuses: models.EnrollmentStatuses,
	}

	rows, err := h.loadEnrollments(r)
	if err != nil {
		if h.SessionRejected(w, r, err) {
			return
		}
		h.Log.Warn("list students failed", zap.Error(err))
		data.LoadError = shared.LoadError(err, "students")
	}
	data.View = listview.Derive(rows, q, listSpec)
	data.Courses = coursesOf(rows)
	data.ReturnURL = shared.ListURL("/instructor/students", q)

	h.RenderList(w, r, "students_list", "students_table", data)
}

// ServeEnrollment shows one enrollment from the cached list.
func (h *Handler) ServeEnrollment(w http.ResponseWriter, r *http.Request) {
	back := navigation.SafeBackURL(r, navigation.StudentsBackURL)
	rows, err := h.loadEnrollments(r)
	if err != nil {
		h.ErrLog.LogAPIError(w, r, "list students failed", err, "Could not load students.", back)
		return
	}
	e, ok := shared.Find(rows, enrollmentID, chi.URLParam(r, "id"))
	if !ok {
		uierrors.RenderNotFound(w, r, "Enrollment not found.", back)
		return
	}
	h.Render.Page(w, r, "student_enrollment", enrollmentData{
		BaseVM:     viewdata.NewBaseVM(r, e.Student.Name, back),
		Enrollment: e,
	})
}

func (h *Handler) loadEnrollments(r *http.Request) ([]models.Enrollment, error) {
	return shared.Load(&h.Base, r, querycache.K(shared.Students), func(ctx context.Context, c *api.Client) ([]models.Enrollment, error) {
		return c.ListStudents(ctx)
	})
}

// coursesOf lists the distinct courses in rows, by title.
func coursesOf(rows []models.Enrollment) []models.CourseRef {
	seen := map[string]struct{}{}
	var out []models.CourseRef
	for _, e := range rows {
		if e.Course.ID == "" {
			continue
		}
		if _, ok := seen[e.Course.ID]; ok {
			continue
		}
		seen[e.Course.ID] = struct{}{}
		out = append(out, e.Course)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out
}
