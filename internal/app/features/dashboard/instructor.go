// internal/app/features/dashboard/instructor.go
package dashboard

import (
	"context"
	"net/http"
	"sort"

	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/querycache"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"go.uber.org/zap"
)

// upcomingLimit caps the sessions listed on the dashboard.
const upcomingLimit = 5

type instructorData struct {
	viewdata.BaseVM

	Stats      models.InstructorStats
	Upcoming   []models.Session
	StatsError string
}

func (h *Handler) ServeInstructor(w http.ResponseWriter, r *http.Request) {
	data := instructorData{BaseVM: viewdata.NewBaseVM(r, "Instructor Dashboard", "/")}

	stats, err := shared.Load(&h.Base, r, querycache.K(shared.InstructorStats), func(ctx context.Context, c *api.Client) (models.InstructorStats, error) {
		return c.InstructorStats(ctx)
	})
	if err != nil {
		if h.SessionRejected(w, r, err) {
			return
		}
		h.Log.Warn("instructor stats failed", zap.Error(err))
		data.StatsError = shared.LoadError(err, "statistics")
	}
	data.Stats = stats
	data.Upcoming = upcoming(stats.UpcomingSessions)

	h.Render.Page(w, r, "instructor_dashboard", data)
}

// upcoming orders sessions by date then start time and keeps the first few.
func upcoming(in []models.Session) []models.Session {
	out := append([]models.Session(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime < out[j].StartTime
	})
	if len(out) > upcomingLimit {
		out = out[:upcomingLimit]
	}
	return out
}
