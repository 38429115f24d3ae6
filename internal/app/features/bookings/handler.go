// internal/app/features/bookings/handler.go
package bookings

import (
	"errors"

	"github.com/dalemusser/coursehub/internal/app/features/shared"
)

var errNotRefundable = errors.New("booking is not refundable")

// Handler serves the admin bookings pages and the instructor's read-only
// bookings list.
type Handler struct {
	shared.Base
}

func NewHandler(base shared.Base) *Handler {
	return &Handler{Base: base}
}
