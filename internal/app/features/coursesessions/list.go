// internal/app/features/coursesessions/list.go
package coursesessions

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/listview"
	"github.com/dalemusser/coursehub/internal/app/system/querycache"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func sessionID(s models.Session) string { return s.ID }

// startsAt combines the session date with its HH:MM start time.
func startsAt(s models.Session) time.Time {
	t, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return s.Date
	}
	y, m, d := s.Date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, s.Date.Location())
}

var listSpec = listview.Spec[models.Session]{
	ID: sessionID,
	Search: []func(models.Session) string{
		func(s models.Session) string { return s.Title },
		func(s models.Session) string { return s.Location },
	},
	Date: func(s models.Session) time.Time { return s.Date },
	Sorts: []listview.Sort[models.Session]{
		{Key: "date", Label: "Date", Time: startsAt},
		{Key: "title", Label: "Title", Text: func(s models.Session) string { return s.Title }},
	},
	DefaultSort: "date",
	DefaultDir:  listview.Asc,
}

func basePath(courseID string) string {
	return "/instructor/courses/" + courseID + "/sessions"
}

// ServeList renders the sessions of one course, earliest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	q := listview.ParseQuery(r, listSpec)
	data := listData{
		BaseVM:   viewdata.NewBaseVM(r, "Sessions", "/instructor/courses"),
		CourseID: courseID,
	}
	data.CourseTitle = h.courseTitle(r, courseID)

	rows, err := h.loadSessions(r, courseID)
	if err != nil {
		if h.SessionRejected(w, r, err) {
			return
		}
		h.Log.Warn("list sessions failed", zap.String("course", courseID), zap.Error(err))
		data.LoadError = shared.LoadError(err, "sessions")
	}
	data.View = listview.Derive(rows, q, listSpec)
	data.ReturnURL = shared.ListURL(basePath(courseID), q)

	h.RenderList(w, r, "sessions_list", "sessions_table", data)
}

func (h *Handler) loadSessions(r *http.Request, courseID string) ([]models.Session, error) {
	return shared.Load(&h.Base, r, querycache.K(shared.Sessions, courseID), func(ctx context.Context, c *api.Client) ([]models.Session, error) {
		return c.ListSessions(ctx, courseID)
	})
}

// courseTitle looks the course up in the instructor's cached course list.
// It returns "" when the list is unavailable.
func (h *Handler) courseTitle(r *http.Request, courseID string) string {
	rows, err := shared.Load(&h.Base, r, querycache.K(shared.MyCourses), func(ctx context.Context, c *api.Client) ([]models.Course, error) {
		return c.ListMyCourses(ctx)
	})
	if err != nil {
		return ""
	}
	c, _ := shared.Find(rows, func(c models.Course) string { return c.ID }, courseID)
	return c.Title
}
