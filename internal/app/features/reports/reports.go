// internal/app/features/reports/reports.go
package reports

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/download"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// ServePicker renders the report type and format picker.
func (h *Handler) ServePicker(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageData{Input: exportRequest{Type: Types[0], Format: Formats[0]}})
}

// ServeExport streams the chosen report as report-<type>-<date>.<format>.
// An invalid choice re-renders the picker.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	in := exportRequest{
		Type:   strings.ToLower(query.Get(r, "type")),
		Format: strings.ToLower(query.Get(r, "format")),
	}
	if res := inputval.Validate(in); res.HasErrors() {
		h.render(w, r, http.StatusUnprocessableEntity, pageData{Input: in, FieldErrors: res.Errors})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Export(), h.Log, "export report")
	defer cancel()

	blob, err := h.Client(r).ExportReport(ctx, in.Type, in.Format)
	if err != nil {
		h.ErrLog.LogAPIError(w, r, "export report failed", err, "Could not export the report.", "/reports")
		return
	}
	name := download.ReportFilename(in.Type, in.Format, time.Now())
	if err := download.Send(w, blob, name); err != nil {
		h.Log.Warn("send report failed", zap.String("file", name), zap.Error(err))
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	data.BaseVM = viewdata.NewBaseVM(r, "Reports", "/dashboard")
	data.Types = Types
	data.Formats = Formats
	if status != http.StatusOK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	h.Render.Page(w, r, "reports_page", data)
}
