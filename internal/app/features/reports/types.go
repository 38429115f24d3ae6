// internal/app/features/reports/types.go
package reports

import "github.com/dalemusser/coursehub/internal/app/system/viewdata"

// Report types and formats the API can export.
var (
	Types   = []string{"revenue", "bookings", "courses", "users"}
	Formats = []string{"csv", "pdf"}
)

// exportRequest is the picker form.
type exportRequest struct {
	Type   string `json:"type" validate:"required,oneof=revenue bookings courses users" label:"Report"`
	Format string `json:"format" validate:"required,oneof=csv pdf" label:"Format"`
}

type pageData struct {
	viewdata.BaseVM

	Types       []string
	Formats     []string
	Input       exportRequest
	FieldErrors map[string]string
}
