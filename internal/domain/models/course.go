// internal/domain/models/course.go
package models

import "time"

// Course lifecycle states. Transitions are enforced by the API; the console
// only requests them.
const (
	CourseDraft     = "draft"
	CoursePending   = "pending"
	CoursePublished = "published"
	CourseRejected  = "rejected"
)

// CourseStatuses lists course states in lifecycle order.
var CourseStatuses = []string{CourseDraft, CoursePending, CoursePublished, CourseRejected}

// CourseRef is the short course reference embedded in bookings,
// enrollments, and sessions.
type CourseRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Rating is the aggregate review score for a course.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Course is a bookable course.
type Course struct {
	ID              string    `json:"id" validate:"required"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Price           float64   `json:"price" validate:"gte=0"`
	Capacity        int       `json:"capacity" validate:"gte=0"`
	EnrolledCount   int       `json:"enrolledCount" validate:"gte=0"`
	Status          string    `json:"status" validate:"omitempty,oneof=draft pending published rejected"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	IsActive        bool      `json:"isActive"`
	Instructor      Person    `json:"instructor"`
	Rating          Rating    `json:"rating"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SeatsLeft is capacity minus enrolled, never negative.
func (c Course) SeatsLeft() int {
	if c.EnrolledCount >= c.Capacity {
		return 0
	}
	return c.Capacity - c.EnrolledCount
}

// CanReview reports whether the course is waiting for an approve/reject decision.
func (c Course) CanReview() bool { return c.Status == CoursePending }

// CanSubmit reports whether an instructor may send the course for review.
func (c Course) CanSubmit() bool {
	return c.Status == CourseDraft || c.Status == CourseRejected
}

// CourseInput is the instructor create/edit payload.
type CourseInput struct {
	Title       string  `json:"title" validate:"required,max=200" label:"Title"`
	Description string  `json:"description" validate:"max=20000" label:"Description"`
	Category    string  `json:"category" validate:"required,max=100" label:"Category"`
	Price       float64 `json:"price" validate:"gte=0" label:"Price"`
	Capacity    int     `json:"capacity" validate:"required,gt=0,lte=10000" label:"Capacity"`
}

// RejectInput carries the reason shown to the instructor.
type RejectInput struct {
	Reason string `json:"reason" validate:"required,max=1000" label:"Reason"`
}
