// internal/app/features/bookings/types.go
package bookings

import (
	"github.com/dalemusser/coursehub/internal/app/system/listview"
	"github.com/dalemusser/coursehub/internal/app/system/notify"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/coursehub/internal/domain/models"
)

type listData struct {
	viewdata.BaseVM

	View      listview.View[models.Booking]
	Statuses  []string
	Payments  []string
	ReturnURL string
	ExportURL string
	LoadError string

	// ReadOnly hides row actions and the export button.
	ReadOnly bool
	BasePath string
}

type statusModalData struct {
	Booking     models.Booking
	Statuses    []string
	Status      string
	FieldErrors map[string]string
	ReturnURL   string
	CSRFToken   string
	Notices     []notify.Message
}

type refundModalData struct {
	Booking     models.Booking
	Reason      string
	FieldErrors map[string]string
	ReturnURL   string
	CSRFToken   string
	Notices     []notify.Message
}

// settableStatuses are the states an admin may request; refunds go
// through their own flow.
var settableStatuses = []string{
	models.BookingPending,
	models.BookingConfirmed,
	models.BookingCompleted,
	models.BookingCancelled,
}
