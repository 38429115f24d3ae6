// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/coursehub/internal/app/store/audit"
	"github.com/dalemusser/coursehub/internal/app/system/paging"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// ServeList handles GET /audit: recent audit events with category, event
// type, and date filters.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(query.Get(r, "category"))
	eventType := strings.TrimSpace(query.Get(r, "event_type"))
	startDate := strings.TrimSpace(query.Get(r, "start_date"))
	endDate := strings.TrimSpace(query.Get(r, "end_date"))
	start := paging.ParseStart(r)

	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, "Audit log", "/dashboard"),
		Category:   category,
		EventType:  eventType,
		StartDate:  startDate,
		EndDate:    endDate,
		Categories: allCategories(),
		EventTypes: eventTypesForCategory(category),
	}

	if h.Store == nil {
		data.Disabled = true
		h.Render.Page(w, r, "audit_list", data)
		return
	}

	filter := audit.QueryFilter{
		Category:  category,
		EventType: eventType,
		Limit:     paging.PageSize,
		Offset:    int64(start - 1),
	}
	if t, err := time.Parse("2006-01-02", startDate); err == nil {
		filter.StartTime = &t
	}
	if t, err := time.Parse("2006-01-02", endDate); err == nil {
		endOfDay := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndTime = &endOfDay
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.API(), h.Log, "audit log list")
	defer cancel()

	events, err := h.Store.Query(ctx, filter)
	if err != nil {
		h.Log.Error("failed to query audit events", zap.Error(err))
		data.Error = "The audit log could not be loaded."
		h.Render.Page(w, r, "audit_list", data)
		return
	}
	total, err := h.Store.CountByFilter(ctx, filter)
	if err != nil {
		h.Log.Warn("failed to count audit events", zap.Error(err))
		total = int64(start - 1 + len(events))
	}

	rg := paging.ComputeRange(start, len(events))
	rg.Total = int(total)
	rg.HasPrev = start > 1
	rg.HasNext = int64(start-1+len(events)) < total

	data.Items = events
	data.Range = rg
	h.Render.Page(w, r, "audit_list", data)
}
