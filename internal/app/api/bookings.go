package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dalemusser/coursehub/internal/domain/models"
)

// ListBookings returns every booking (admin).
func (c *Client) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var out []models.Booking
	err := c.do(ctx, "bookings.list", http.MethodGet, "/admin/bookings", nil, nil, &out)
	return out, err
}

// UpdateBookingStatus requests a status change (admin).
func (c *Client) UpdateBookingStatus(ctx context.Context, id string, in models.BookingStatusInput) error {
	return c.do(ctx, "bookings.status", http.MethodPatch, "/admin/bookings/"+pathID(id)+"/status", nil, in, nil)
}

// RefundBooking requests a refund (admin). The payment provider is driven
// by the API.
func (c *Client) RefundBooking(ctx context.Context, id string, in models.RefundInput) error {
	return c.do(ctx, "bookings.refund", http.MethodPost, "/admin/bookings/"+pathID(id)+"/refund", nil, in, nil)
}

// ExportBookings streams the bookings CSV. status may be empty.
func (c *Client) ExportBookings(ctx context.Context, status string) (*Blob, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	return c.blob(ctx, "bookings.export", "/admin/bookings/export", q)
}

// ListMyBookings returns bookings for the instructor's courses.
func (c *Client) ListMyBookings(ctx context.Context) ([]models.Booking, error) {
	var out []models.Booking
	err := c.do(ctx, "instructor.bookings.list", http.MethodGet, "/instructor/bookings", nil, nil, &out)
	return out, err
}
