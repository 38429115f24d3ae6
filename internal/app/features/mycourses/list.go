// internal/app/features/mycourses/list.go
package mycourses

import (
	"context"
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/dalemusser/coursehub/internal/app/features/courses"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/listview"
	"github.com/dalemusser/coursehub/internal/app/system/querycache"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"go.uber.org/zap"
)

func courseID(c models.Course) string { return c.ID }

// ServeList renders the signed-in instructor's courses.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := listview.ParseQuery(r, courses.ListSpec)
	data := listData{
		BaseVM:   viewdata.NewBaseVM(r, "My Courses", "/dashboard"),
		Statuses: models.CourseStatuses,
	}

	rows, err := h.loadCourses(r)
	if err != nil {
		if h.SessionRejected(w, r, err) {
			return
		}
		h.Log.Warn("list my courses failed", zap.Error(err))
		data.LoadError = shared.LoadError(err, "your courses")
	}
	data.View = listview.Derive(rows, q, courses.ListSpec)
	data.Categories = courses.Categories(rows)
	data.ReturnURL = shared.ListURL("/instructor/courses", q)

	h.RenderList(w, r, "mycourses_list", "mycourses_table", data)
}

func (h *Handler) loadCourses(r *http.Request) ([]models.Course, error) {
	return shared.Load(&h.Base, r, querycache.K(shared.MyCourses), func(ctx context.Context, c *api.Client) ([]models.Course, error) {
		return c.ListMyCourses(ctx)
	})
}
