// internal/app/features/bookings/export.go
package bookings

import (
	"net/http"
	"net/url"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/download"
	"github.com/dalemusser/coursehub/internal/app/system/listview"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// exportURL carries the list's status filter to the export, the only
// filter the API export understands.
func exportURL(q listview.Query) string {
	status := q.Filter("status")
	if status == "" {
		return "/bookings/export"
	}
	return "/bookings/export?" + url.Values{"status": {status}}.Encode()
}

// ServeExport streams the bookings CSV as bookings-<date>.csv.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	status := query.Get(r, "status")
	if status == listview.FilterAll {
		status = ""
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Export(), h.Log, "export bookings")
	defer cancel()

	blob, err := h.Client(r).ExportBookings(ctx, status)
	if err != nil {
		h.ErrLog.LogAPIError(w, r, "export bookings failed", err, "Could not export bookings.", "/bookings")
		return
	}
	if err := download.Send(w, blob, download.BookingsFilename(time.Now())); err != nil {
		h.Log.Warn("send bookings export failed", zap.Error(err))
	}
}
