// internal/app/features/courses/types.go
package courses

import (
	"html/template"

	"github.com/dalemusser/coursehub/internal/app/system/listview"
	"github.com/dalemusser/coursehub/internal/app/system/notify"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/coursehub/internal/domain/models"
)

type listData struct {
	viewdata.BaseVM

	View       listview.View[models.Course]
	Statuses   []string
	Categories []string
	ReturnURL  string
	LoadError  string
}

type viewData struct {
	viewdata.BaseVM

	Course      models.Course
	Description template.HTML
	ReturnURL   string
}

type rejectModalData struct {
	Course      models.Course
	Reason      string
	FieldErrors map[string]string
	ReturnURL   string
	CSRFToken   string
	Notices     []notify.Message
}

// actionsData feeds the course_actions partial.
type actionsData struct {
	Course    models.Course
	ReturnURL string
	CSRFToken string
}

func (d listData) Actions(c models.Course) actionsData {
	return actionsData{Course: c, ReturnURL: d.ReturnURL, CSRFToken: d.CSRFToken}
}

func (d viewData) Actions(c models.Course) actionsData {
	return actionsData{Course: c, ReturnURL: d.ReturnURL, CSRFToken: d.CSRFToken}
}
