// internal/app/features/courses/list.go
package courses

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/listview"
	"github.com/dalemusser/coursehub/internal/app/system/querycache"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"go.uber.org/zap"
)

func courseID(c models.Course) string { return c.ID }

// ListSpec is shared with the instructor's own course list.
var ListSpec = listview.Spec[models.Course]{
	ID: courseID,
	Search: []func(models.Course) string{
		func(c models.Course) string { return c.Title },
		func(c models.Course) string { return c.Instructor.Name },
		func(c models.Course) string { return c.Category },
	},
	Filters: []listview.Filter[models.Course]{
		{Name: "status", Label: "Status", Options: models.CourseStatuses, Value: func(c models.Course) string { return c.Status }},
		{Name: "category", Label: "Category", Value: func(c models.Course) string { return c.Category }},
	},
	Sorts: []listview.Sort[models.Course]{
		{Key: "title", Label: "Title", Text: func(c models.Course) string { return c.Title }},
		{Key: "price", Label: "Price", Number: func(c models.Course) float64 { return c.Price }},
		{Key: "enrolled", Label: "Enrolled", Number: func(c models.Course) float64 { return float64(c.EnrolledCount) }},
		{Key: "rating", Label: "Rating", Number: func(c models.Course) float64 { return c.Rating.Average }},
		{Key: "created", Label: "Created", Time: func(c models.Course) time.Time { return c.CreatedAt }},
	},
	DefaultSort: "created",
	DefaultDir:  listview.Desc,
}

// ServeList renders every course on the platform.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := listview.ParseQuery(r, ListSpec)
	data := listData{
		BaseVM:   viewdata.NewBaseVM(r, "Courses", "/dashboard"),
		Statuses: models.CourseStatuses,
	}

	rows, err := h.loadCourses(r)
	if err != nil {
		if h.SessionRejected(w, r, err) {
			return
		}
		h.Log.Warn("list courses failed", zap.Error(err))
		data.LoadError = shared.LoadError(err, "courses")
	}
	data.View = listview.Derive(rows, q, ListSpec)
	data.Categories = Categories(rows)
	data.ReturnURL = shared.ListURL("/courses", q)

	h.RenderList(w, r, "courses_list", "courses_table", data)
}

func (h *Handler) loadCourses(r *http.Request) ([]models.Course, error) {
	return shared.Load(&h.Base, r, querycache.K(shared.Courses), func(ctx context.Context, c *api.Client) ([]models.Course, error) {
		return c.ListAllCourses(ctx)
	})
}

// Categories lists the distinct non-empty categories in rows, sorted.
func Categories(rows []models.Course) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, c := range rows {
		if c.Category == "" {
			continue
		}
		if _, ok := seen[c.Category]; ok {
			continue
		}
		seen[c.Category] = struct{}{}
		out = append(out, c.Category)
	}
	sort.Strings(out)
	return out
}
