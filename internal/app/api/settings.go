package api

import (
	"context"
	"io"
	"net/http"

	"github.com/dalemusser/coursehub/internal/domain/models"
)

// GetSettings returns the platform settings (admin).
func (c *Client) GetSettings(ctx context.Context) (models.PlatformSettings, error) {
	var out models.PlatformSettings
	err := c.do(ctx, "settings.get", http.MethodGet, "/admin/settings", nil, nil, &out)
	return out, err
}

// UpdateSettings saves the platform settings (admin).
func (c *Client) UpdateSettings(ctx context.Context, in models.PlatformSettings) error {
	return c.do(ctx, "settings.update", http.MethodPut, "/admin/settings", nil, in, nil)
}

// ListBackups returns the stored backups (admin).
func (c *Client) ListBackups(ctx context.Context) ([]models.Backup, error) {
	var out []models.Backup
	err := c.do(ctx, "backups.list", http.MethodGet, "/admin/backups", nil, nil, &out)
	return out, err
}

// CreateBackup asks the API to take a new backup (admin).
func (c *Client) CreateBackup(ctx context.Context) (models.Backup, error) {
	var out models.Backup
	err := c.do(ctx, "backups.create", http.MethodPost, "/admin/backups", nil, nil, &out)
	return out, err
}

// DownloadBackup streams a backup archive (admin).
func (c *Client) DownloadBackup(ctx context.Context, id string) (*Blob, error) {
	return c.blob(ctx, "backups.download", "/admin/backups/"+pathID(id)+"/download", nil)
}

// RestoreBackup uploads an archive to restore from (admin). The archive is
// passed through unread.
func (c *Client) RestoreBackup(ctx context.Context, filename string, r io.Reader) error {
	return c.upload(ctx, "backups.restore", "/admin/backups/restore", filename, r, nil)
}

// DeleteBackup removes a stored backup (admin).
func (c *Client) DeleteBackup(ctx context.Context, id string) error {
	return c.do(ctx, "backups.delete", http.MethodDelete, "/admin/backups/"+pathID(id), nil, nil, nil)
}
