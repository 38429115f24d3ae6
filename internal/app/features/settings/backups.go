// internal/app/features/settings/backups.go
package settings

import (
	"context"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/download"
	"github.com/dalemusser/coursehub/internal/app/system/limits"
	"github.com/dalemusser/coursehub/internal/app/system/mutation"
	"github.com/dalemusser/coursehub/internal/app/system/navigation"
	"github.com/dalemusser/coursehub/internal/app/system/notify"
	"github.com/dalemusser/coursehub/internal/app/system/querycache"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// restoreInvalidates is every collection a restore can change.
var restoreInvalidates = []string{
	shared.Users, shared.Courses, shared.Course, shared.Bookings,
	shared.AdminStats, shared.Revenue, shared.Settings, shared.Backups,
}

func (h *Handler) loadBackups(r *http.Request) ([]models.Backup, error) {
	rows, err := shared.Load(&h.Base, r, querycache.K(shared.Backups), func(ctx context.Context, c *api.Client) ([]models.Backup, error) {
		return c.ListBackups(ctx)
	})
	out := append([]models.Backup(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

// HandleCreateBackup asks the API to take a backup now.
func (h *Handler) HandleCreateBackup(w http.ResponseWriter, r *http.Request) {
	err := h.Mutate(r, mutation.Action{
		Name:       "backup.create",
		Target:     shared.Backups,
		Instance:   "new",
		Invalidate: []string{shared.Backups},
		Success:    "Backup created.",
		Failure:    "Could not create a backup.",
		Timeout:    timeouts.Export(),
	}, func(ctx context.Context, c *api.Client) error {
		_, err := c.CreateBackup(ctx)
		return err
	})
	h.finish(w, r, err)
}

// ServeDownload streams a backup as backup-<date>.zip.
func (h *Handler) ServeDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Export(), h.Log, "download backup")
	defer cancel()

	blob, err := h.Client(r).DownloadBackup(ctx, id)
	if err != nil {
		h.ErrLog.LogAPIError(w, r, "download backup failed", err, "Could not download the backup.", "/settings")
		return
	}
	if err := download.Send(w, blob, download.BackupFilename(time.Now())); err != nil {
		h.Log.Warn("send backup failed", zap.String("backup", id), zap.Error(err))
	}
}

// HandleRestore uploads a ZIP archive for the API to restore from. The
// archive is passed through unread.
func (h *Handler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxRestoreSize)
	if err := r.ParseMultipartForm(limits.MaxRestoreMemory); err != nil {
		notify.From(r).Notify(notify.Error, "The upload failed or is too large.")
		notify.Redirect(w, r, "/settings")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("archive")
	if err != nil || header.Size == 0 {
		notify.From(r).Notify(notify.Error, "Choose a backup archive to restore.")
		notify.Redirect(w, r, "/settings")
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if !strings.EqualFold(filepath.Ext(name), ".zip") {
		notify.From(r).Notify(notify.Error, "Backups are .zip archives.")
		notify.Redirect(w, r, "/settings")
		return
	}

	err = h.Mutate(r, mutation.Action{
		Name:       "backup.restore",
		Target:     shared.Backups,
		Instance:   "restore",
		Invalidate: restoreInvalidates,
		Success:    "Restore started from " + name + ".",
		Failure:    "Could not restore the backup.",
		Timeout:    timeouts.Export(),
	}, func(ctx context.Context, c *api.Client) error {
		return c.RestoreBackup(ctx, name, file)
	})
	h.finish(w, r, err)
}

// HandleDeleteBackup removes a stored backup.
func (h *Handler) HandleDeleteBackup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.Mutate(r, mutation.Action{
		Name:       "backup.delete",
		Target:     shared.Backups,
		Instance:   id,
		Invalidate: []string{shared.Backups},
		Success:    "Backup deleted.",
		Failure:    "Could not delete the backup.",
	}, func(ctx context.Context, c *api.Client) error {
		return c.DeleteBackup(ctx, id)
	})
	h.finish(w, r, err)
}

func (h *Handler) finish(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil && h.SessionRejected(w, r, err) {
		return
	}
	notify.Redirect(w, r, navigation.SafeBackURL(r, navigation.SettingsBackURL))
}
