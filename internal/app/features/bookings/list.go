// internal/app/features/bookings/list.go
package bookings

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
	"go.uber.org/zap"
)

func bookingID(b models.Booking) string { return b.ID }

var listSpec = listview.Spec[models.Booking]{
	ID: bookingID,
	Search: []func(models.Booking) string{
		func(b models.Booking) string { return b.Student.Name },
		func(b models.Booking) string { return b.Student.Email },
		func(b models.Booking) string { return b.Course.Title },
	},
	Filters: []listview.Filter[models.Booking]{
		{Name: "status", Label: "Status", Options: models.BookingStatuses, Value: func(b models.Booking) string { return b.Status }},
		{Name: "payment", Label: "Payment", Options: models.PaymentStatuses, Value: func(b models.Booking) string { return b.PaymentStatus }},
	},
	Date: func(b models.Booking) time.Time { return b.CreatedAt },
	Sorts: []listview.Sort[models.Booking]{
		{Key: "date", Label: "Date", Time: func(b models.Booking) time.Time { return b.CreatedAt }},
		{Key: "amount", Label: "Amount", Number: func(b models.Booking) float64 { return b.Amount }},
		{Key: "student", Label: "Student", Text: func(b models.Booking) string { return b.Student.Name }},
		{Key: "status", Label: "Status", Text: func(b models.Booking) string { return b.Status }},
	},
	DefaultSort: "date",
	DefaultDir:  listview.Desc,
}

// ServeList renders every booking on the platform.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, listData{
		BaseVM:   viewdata.NewBaseVM(r, "Bookings", "/dashboard"),
		BasePath: "/bookings",
	}, h.loadBookings)
}

// ServeMyList renders bookings for the instructor's courses without
// actions.
func (h *Handler) ServeMyList(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, listData{
		BaseVM:   viewdata.NewBaseVM(r, "Bookings", "/dashboard"),
		BasePath: "/instructor/bookings",
		ReadOnly: true,
	}, h.loadMyBookings)
}

func (h *Handler) serveList(w http.ResponseWriter, r *http.Request, data listData, load func(*http.Request) ([]models.Booking, error)) {
	q := listview.ParseQuery(r, listSpec)
	data.Statuses = models.BookingStatuses
	data.Payments = models.PaymentStatuses

	rows, err := load(r)
	if err != nil {
		if h.SessionRejected(w, r, err) {
			return
		}
		h.Log.Warn("list bookings failed", zap.String("path", data.BasePath), zap.Error(err))
		data.LoadError = shared.LoadError(err, "bookings")
	}
	data.View = listview.Derive(rows, q, listSpec)
	data.ReturnURL = shared.ListURL(data.BasePath, q)
	if !data.ReadOnly {
		data.ExportURL = exportURL(q)
	}

	h.RenderList(w, r, "bookings_list", "bookings_table", data)
}

func (h *Handler) loadBookings(r *http.Request) ([]models.Booking, error) {
	return shared.Load(&h.Base, r, querycache.K(shared.Bookings), func(ctx context.Context, c *api.Client) ([]models.Booking, error) {
		return c.ListBookings(ctx)
	})
}

func (h *Handler) loadMyBookings(r *http.Request) ([]models.Booking, error) {
	return shared.Load(&h.Base, r, querycache.K(shared.MyBookings), func(ctx context.Context, c *api.Client) ([]models.Booking, error) {
		return c.ListMyBookings(ctx)
	})
}
