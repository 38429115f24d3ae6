// internal/app/features/bookings/modals.go
package bookings

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/coursehub/internal/app/api"
	uierrors "github.com/dalemusser/coursehub/internal/app/features/errors"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/mutation"
	"github.com/dalemusser/coursehub/internal/app/system/navigation"
	"github.com/dalemusser/coursehub/internal/app/system/notify"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
)

// invalidated lists what a booking change can affect.
var invalidated = []string{shared.Bookings, shared.AdminStats, shared.Revenue}

// ServeStatusModal renders the status dialog for one booking.
func (h *Handler) ServeStatusModal(w http.ResponseWriter, r *http.Request) {
	b, ok := h.findBooking(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	h.renderStatus(w, r, statusModalData{Booking: b, Status: b.Status})
}

// HandleStatus requests a booking status change.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	in := models.BookingStatusInput{Status: strings.ToLower(strings.TrimSpace(r.FormValue("status")))}
	data := statusModalData{Status: in.Status}

	if res := inputval.Validate(in); res.HasErrors() {
		data.FieldErrors = res.Errors
		h.rerender(w, r, id, func(b models.Booking) {
			data.Booking = b
			h.renderStatus(w, r, data)
		})
		return
	}

	err := h.Mutate(r, mutation.Action{
		Name:       "booking.status",
		Target:     shared.Bookings,
		Instance:   id,
		Invalidate: invalidated,
		Success:    "Booking marked " + in.Status + ".",
		Failure:    "Could not update the booking.",
	}, func(ctx context.Context, c *api.Client) error {
		return c.UpdateBookingStatus(ctx, id, in)
	})
	h.afterModal(w, r, id, err, func(b models.Booking) {
		data.Booking = b
		h.renderStatus(w, r, data)
	})
}

// ServeRefundModal renders the refund dialog for one booking.
func (h *Handler) ServeRefundModal(w http.ResponseWriter, r *http.Request) {
	b, ok := h.findBooking(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	h.renderRefund(w, r, refundModalData{Booking: b})
}

// HandleRefund requests a refund. Only paid, unrefunded bookings can be
// refunded.
func (h *Handler) HandleRefund(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	in := models.RefundInput{Reason: strings.TrimSpace(r.FormValue("reason"))}
	data := refundModalData{Reason: in.Reason}
	show := func(b models.Booking) {
		data.Booking = b
		h.renderRefund(w, r, data)
	}

	b, ok := h.findBooking(w, r, id)
	if !ok {
		return
	}
	if !b.CanRefund() {
		notify.From(r).Notify(notify.Error, "Only paid bookings that have not been refunded can be refunded.")
		h.afterModal(w, r, id, errNotRefundable, show)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		data.FieldErrors = res.Errors
		h.rerender(w, r, id, show)
		return
	}

	err := h.Mutate(r, mutation.Action{
		Name:       "booking.refund",
		Target:     shared.Bookings,
		Instance:   id,
		Invalidate: invalidated,
		Success:    "Refund requested.",
		Failure:    "Could not refund the booking.",
	}, func(ctx context.Context, c *api.Client) error {
		return c.RefundBooking(ctx, id, in)
	})
	h.afterModal(w, r, id, err, show)
}

// findBooking writes the error response itself when it returns false.
func (h *Handler) findBooking(w http.ResponseWriter, r *http.Request, id string) (models.Booking, bool) {
	rows, err := h.loadBookings(r)
	if err != nil {
		h.ErrLog.LogAPIError(w, r, "list bookings failed", err, "Could not load bookings.", "/bookings")
		return models.Booking{}, false
	}
	b, ok := shared.Find(rows, bookingID, id)
	if !ok {
		uierrors.HTMXNotFound(w, r, "Booking not found.", "/bookings")
		return models.Booking{}, false
	}
	return b, true
}

// rerender shows a dialog again after a validation failure: inline for
// htmx, 422 otherwise.
func (h *Handler) rerender(w http.ResponseWriter, r *http.Request, id string, show func(models.Booking)) {
	b, ok := h.findBooking(w, r, id)
	if !ok {
		return
	}
	if !shared.IsHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	show(b)
}

// afterModal finishes a dialog-triggered mutation: success goes back to
// the list; failure re-renders the dialog for htmx callers.
func (h *Handler) afterModal(w http.ResponseWriter, r *http.Request, id string, err error, show func(models.Booking)) {
	back := navigation.SafeBackURL(r, navigation.BookingsBackURL)
	if err == nil {
		notify.Redirect(w, r, back)
		return
	}
	if h.SessionRejected(w, r, err) {
		return
	}
	if !shared.IsHTMX(r) {
		notify.Redirect(w, r, back)
		return
	}
	b, ok := h.findBooking(w, r, id)
	if !ok {
		return
	}
	show(b)
}

func (h *Handler) renderStatus(w http.ResponseWriter, r *http.Request, data statusModalData) {
	data.Statuses = settableStatuses
	data.ReturnURL = navigation.SafeBackURL(r, navigation.BookingsBackURL)
	data.CSRFToken = csrf.Token(r)
	data.Notices = notify.Take(r)
	h.Render.Snippet(w, "booking_status_modal", data)
}

func (h *Handler) renderRefund(w http.ResponseWriter, r *http.Request, data refundModalData) {
	data.ReturnURL = navigation.SafeBackURL(r, navigation.BookingsBackURL)
	data.CSRFToken = csrf.Token(r)
	data.Notices = notify.Take(r)
	h.Render.Snippet(w, "booking_refund_modal", data)
}
