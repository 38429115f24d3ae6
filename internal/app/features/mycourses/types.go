// internal/app/features/mycourses/types.go
package mycourses

import (
	"github.com/dalemusser/coursehub/internal/app/system/listview"
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

type formData struct {
	viewdata.BaseVM

	ID     string
	IsEdit bool
	Status string

	// Price and Capacity are echoed as typed so a bad number survives
	// the re-render.
	Input       models.CourseInput
	Price       string
	Capacity    string
	FieldErrors map[string]string
	ReturnURL   string
}
