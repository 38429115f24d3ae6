// internal/domain/models/enrollment.go
package models

import "time"

// EnrollmentStatuses lists the states the console filters on. The API may
// send others; those are shown as-is and match only the "other" filter.
var EnrollmentStatuses = []string{"active", "completed", "pending", "other"}

// Enrollment links a student to a course.
type Enrollment struct {
	ID         string    `json:"id" validate:"required"`
	Student    Person    `json:"student"`
	Course     CourseRef `json:"course"`
	Progress   float64   `json:"progress" validate:"gte=0,lte=100"`
	Status     string    `json:"status"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

// StatusGroup folds unknown statuses into "other".
func (e Enrollment) StatusGroup() string {
	switch e.Status {
	case "active", "completed", "pending":
		return e.Status
	}
	return "other"
}
