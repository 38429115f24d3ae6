// internal/domain/models/booking.go
package models

import "time"

// Booking states.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
	BookingRefunded  = "refunded"
)

// BookingStatuses lists every booking state.
var BookingStatuses = []string{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled, BookingRefunded}

// PaymentStatuses lists every payment state.
var PaymentStatuses = []string{"paid", "pending", "failed", "refunded"}

// Booking is a student's reservation of a course.
type Booking struct {
	ID            string    `json:"id" validate:"required"`
	Status        string    `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled refunded"`
	PaymentStatus string    `json:"paymentStatus" validate:"omitempty,oneof=paid pending failed refunded"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency,omitempty"`
	Course        CourseRef `json:"course"`
	Student       Person    `json:"student"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CanRefund reports whether a refund request makes sense for this booking.
func (b Booking) CanRefund() bool {
	return b.PaymentStatus == "paid" && b.Status != BookingRefunded
}

// BookingStatusInput is the admin status-update payload.
type BookingStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled" label:"Status"`
}

// RefundInput is the admin refund payload.
type RefundInput struct {
	Reason string `json:"reason" validate:"required,max=1000" label:"Reason"`
}
