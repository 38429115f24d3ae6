// internal/app/features/dashboard/admin.go
package dashboard

import (
	"context"
	"encoding/json"
	"math"
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/querycache"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// Periods the revenue chart can show.
var Periods = []string{"week", "month", "year"}

const defaultPeriod = "month"

type revenueBar struct {
	models.RevenuePoint
	Percent int
}

type adminData struct {
	viewdata.BaseVM

	Stats      models.AdminStats
	StatsError string

	Period       string
	Periods      []string
	Bars         []revenueBar
	RevenueError string
}

func (h *Handler) ServeAdmin(w http.ResponseWriter, r *http.Request) {
	data := adminData{
		BaseVM:  viewdata.NewBaseVM(r, "Admin Dashboard", "/"),
		Period:  parsePeriod(r),
		Periods: Periods,
	}

	stats, err := shared.Load(&h.Base, r, querycache.K(shared.AdminStats), func(ctx context.Context, c *api.Client) (models.AdminStats, error) {
		return c.AdminStats(ctx)
	})
	if err != nil {
		if h.SessionRejected(w, r, err) {
			return
		}
		h.Log.Warn("admin stats failed", zap.Error(err))
		data.StatsError = shared.LoadError(err, "statistics")
	}
	data.Stats = stats

	points, err := h.loadRevenue(r, data.Period)
	if err != nil {
		if h.SessionRejected(w, r, err) {
			return
		}
		h.Log.Warn("revenue series failed", zap.String("period", data.Period), zap.Error(err))
		data.RevenueError = shared.LoadError(err, "revenue")
	}
	data.Bars = bars(points)

	h.Render.Page(w, r, "admin_dashboard", data)
}

// ServeRevenueJSON serves the revenue series for the chart script.
func (h *Handler) ServeRevenueJSON(w http.ResponseWriter, r *http.Request) {
	period := parsePeriod(r)
	points, err := h.loadRevenue(r, period)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err != nil {
		if h.SessionRejected(w, r, err) {
			return
		}
		h.Log.Warn("revenue series failed", zap.String("period", period), zap.Error(err))
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": shared.LoadError(err, "revenue")})
		return
	}
	if points == nil {
		points = []models.RevenuePoint{}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"period": period, "points": points})
}

func (h *Handler) loadRevenue(r *http.Request, period string) ([]models.RevenuePoint, error) {
	return shared.Load(&h.Base, r, querycache.K(shared.Revenue, period), func(ctx context.Context, c *api.Client) ([]models.RevenuePoint, error) {
		return c.RevenueSeries(ctx, period)
	})
}

func parsePeriod(r *http.Request) string {
	p := query.Get(r, "period")
	for _, known := range Periods {
		if p == known {
			return p
		}
	}
	return defaultPeriod
}

// bars scales each point against the largest revenue in the series.
func bars(points []models.RevenuePoint) []revenueBar {
	peak := 0.0
	for _, p := range points {
		peak = math.Max(peak, p.Revenue)
	}
	out := make([]revenueBar, 0, len(points))
	for _, p := range points {
		pct := 0
		if peak > 0 && p.Revenue > 0 {
			pct = int(math.Round(p.Revenue / peak * 100))
		}
		out = append(out, revenueBar{RevenuePoint: p, Percent: pct})
	}
	return out
}
