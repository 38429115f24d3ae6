package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dalemusser/coursehub/internal/domain/models"
)

// AdminStats returns the admin dashboard totals.
func (c *Client) AdminStats(ctx context.Context) (models.AdminStats, error) {
	var out models.AdminStats
	err := c.do(ctx, "dashboard.admin", http.MethodGet, "/admin/dashboard/stats", nil, nil, &out)
	return out, err
}

// RevenueSeries returns the revenue chart data for a period
// ("week", "month", "year").
func (c *Client) RevenueSeries(ctx context.Context, period string) ([]models.RevenuePoint, error) {
	var out []models.RevenuePoint
	q := url.Values{"period": {period}}
	err := c.do(ctx, "analytics.revenue", http.MethodGet, "/admin/analytics/revenue", q, nil, &out)
	return out, err
}

// InstructorStats returns the instructor dashboard totals.
func (c *Client) InstructorStats(ctx context.Context) (models.InstructorStats, error) {
	var out models.InstructorStats
	err := c.do(ctx, "dashboard.instructor", http.MethodGet, "/instructor/dashboard/stats", nil, nil, &out)
	return out, err
}

// ExportReport streams a report file. format is "csv" or "pdf".
func (c *Client) ExportReport(ctx context.Context, reportType, format string) (*Blob, error) {
	q := url.Values{"format": {format}}
	return c.blob(ctx, "reports.export", "/admin/reports/"+pathID(reportType)+"/export", q)
}
