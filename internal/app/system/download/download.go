// Package download streams API-produced files (CSV exports, reports,
// backups) to the browser. File names are always built here from a fixed
// pattern and the current date; the name the API sends is ignored.
package download

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/coursehub/internal/app/api"
)

const dateLayout = "2006-01-02"

// BookingsFilename is bookings-<YYYY-MM-DD>.csv.
func BookingsFilename(now time.Time) string {
	return "bookings-" + now.Format(dateLayout) + ".csv"
}

// ReportFilename is report-<type>-<YYYY-MM-DD>.<csv|pdf>.
func ReportFilename(reportType, format string, now time.Time) string {
	return fmt.Sprintf("report-%s-%s.%s", slug(reportType), now.Format(dateLayout), slug(format))
}

// BackupFilename is backup-<YYYY-MM-DD>.zip.
func BackupFilename(now time.Time) string {
	return "backup-" + now.Format(dateLayout) + ".zip"
}

// slug keeps [a-z0-9-] so request values cannot shape the header.
func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}

// Send writes blob as an attachment named filename. The blob is closed in
// every case. A copy error after headers are sent can only be logged by the
// caller.
func Send(w http.ResponseWriter, blob *api.Blob, filename string) error {
	defer blob.Close()
	if blob == nil || blob.Body == nil {
		return fmt.Errorf("download %s: empty response", filename)
	}

	ct := blob.ContentType
	if ct == "" {
		ct = contentTypeFor(filename)
	}
	h := w.Header()
	h.Set("Content-Type", ct)
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Cache-Control", "no-store")
	if blob.Size > 0 {
		h.Set("Content-Length", strconv.FormatInt(blob.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, blob.Body); err != nil {
		return fmt.Errorf("download %s: %w", filename, err)
	}
	return nil
}

func contentTypeFor(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".csv"):
		return "text/csv; charset=utf-8"
	case strings.HasSuffix(filename, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(filename, ".zip"):
		return "application/zip"
	}
	return "application/octet-stream"
}
