// internal/app/features/users/types.go
package users

import (
	"github.com/dalemusser/coursehub/internal/app/system/listview"
	"github.com/dalemusser/coursehub/internal/app/system/notify"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/coursehub/internal/domain/models"
)

// Statuses are the values of the status filter.
var Statuses = []string{"active", "disabled"}

// View model for the users list page.
type listData struct {
	viewdata.BaseVM

	View      listview.View[models.User]
	Roles     []string
	Statuses  []string
	ReturnURL string
	LoadError string
}

// Form view model for New/Edit user.
type formData struct {
	viewdata.BaseVM

	ID     string
	IsEdit bool
	IsSelf bool

	Input       models.UserInput
	Roles       []string
	FieldErrors map[string]string
	ReturnURL   string
}

// Manage modal snippet.
type manageModalData struct {
	User      models.User
	IsSelf    bool
	ReturnURL string
	CSRFToken string
	Notices   []notify.Message
}
