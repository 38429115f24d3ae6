// internal/domain/models/settings.go
package models

import "time"

// DefaultSiteName is shown when settings cannot be loaded.
const DefaultSiteName = "CourseHub"

// PlatformSettings are the admin-editable platform options.
type PlatformSettings struct {
	SiteName           string  `json:"siteName" validate:"required,max=100" label:"Site name"`
	SupportEmail       string  `json:"supportEmail" validate:"omitempty,email" label:"Support email"`
	Currency           string  `json:"currency" validate:"required,len=3,uppercase" label:"Currency"`
	CommissionRate     float64 `json:"commissionRate" validate:"gte=0,lte=100" label:"Commission rate"`
	MaintenanceMode    bool    `json:"maintenanceMode"`
	AllowRegistrations bool    `json:"allowRegistrations"`
	FooterHTML         string  `json:"footerHtml,omitempty" validate:"max=5000" label:"Footer"`
}

// Backup is a server-side snapshot the admin can download or restore.
type Backup struct {
	ID        string    `json:"id" validate:"required"`
	Filename  string    `json:"filename"`
	SizeBytes int64     `json:"sizeBytes"`
	CreatedAt time.Time `json:"createdAt"`
}
