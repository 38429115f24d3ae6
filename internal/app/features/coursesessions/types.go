// internal/app/features/coursesessions/types.go
package coursesessions

import (
	"github.com/dalemusser/coursehub/internal/app/system/listview"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/coursehub/internal/domain/models"
)

type listData struct {
	viewdata.BaseVM

	CourseID    string
	CourseTitle string
	View        listview.View[models.Session]
	ReturnURL   string
	LoadError   string
}

type formData struct {
	viewdata.BaseVM

	CourseID    string
	CourseTitle string
	ID          string
	IsEdit      bool
	Input       models.SessionInput
	FieldErrors map[string]string
	ReturnURL   string
}
