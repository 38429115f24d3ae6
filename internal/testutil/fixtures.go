package testutil

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Day returns noon UTC on the given day of March 2026.
func Day(d int) time.Time {
	return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC)
}

// Users returns a small mixed-role user collection.
func Users() []models.User {
	return []models.User{
		{ID: "u1", Name: "Ann Admin", Email: "ann@example.com", Role: models.RoleAdmin, IsActive: true, CreatedAt: Day(1)},
		{ID: "u2", Name: "Ian Instructor", Email: "ian@example.com", Role: models.RoleInstructor, IsActive: true, CreatedAt: Day(2)},
		{ID: "u3", Name: "Sue Student", Email: "sue@example.com", Role: models.RoleStudent, IsActive: false, CreatedAt: Day(3)},
	}
}

// Courses returns courses in every lifecycle state.
func Courses() []models.Course {
	ian := models.Person{ID: "u2", Name: "Ian Instructor"}
	return []models.Course{
		{ID: "c1", Title: "Math 101", Category: "math", Price: 50, Capacity: 20, EnrolledCount: 5, Status: models.CoursePending, IsActive: true, Instructor: ian, CreatedAt: Day(1)},
		{ID: "c2", Title: "History", Category: "humanities", Price: 30, Capacity: 10, EnrolledCount: 10, Status: models.CoursePublished, IsActive: true, Instructor: ian, Rating: models.Rating{Average: 4.5, Count: 8}, CreatedAt: Day(2)},
		{ID: "c3", Title: "Draft Physics", Category: "science", Price: 80, Capacity: 15, Status: models.CourseDraft, Instructor: ian, CreatedAt: Day(3)},
		{ID: "c4", Title: "Rejected Chemistry", Category: "science", Price: 60, Capacity: 12, Status: models.CourseRejected, RejectionReason: "Needs syllabus", Instructor: ian, CreatedAt: Day(4)},
	}
}

// Bookings returns the bookings used across list tests: one confirmed,
// two pending, one refunded.
func Bookings() []models.Booking {
	return []models.Booking{
		{ID: "b1", Status: models.BookingConfirmed, PaymentStatus: "paid", Amount: 50, Course: models.CourseRef{ID: "c1", Title: "Math 101"}, Student: models.Person{ID: "s1", Name: "Anna Field", Email: "anna@example.com"}, CreatedAt: Day(1)},
		{ID: "b2", Status: models.BookingPending, PaymentStatus: "pending", Amount: 30, Course: models.CourseRef{ID: "c2", Title: "History"}, Student: models.Person{ID: "s2", Name: "Joanne Park", Email: "jo@example.com"}, CreatedAt: Day(2)},
		{ID: "b3", Status: models.BookingPending, PaymentStatus: "pending", Amount: 30, Course: models.CourseRef{ID: "c2", Title: "History"}, Student: models.Person{ID: "s3", Name: "Bob Stone", Email: "bob@example.com"}, CreatedAt: Day(3)},
		{ID: "b4", Status: models.BookingRefunded, PaymentStatus: "refunded", Amount: 50, Course: models.CourseRef{ID: "c1", Title: "Math 101"}, Student: models.Person{ID: "s4", Name: "Hannah Lee", Email: "hannah@example.com"}, CreatedAt: Day(4)},
	}
}

// Sessions returns sessions for course c1.
func Sessions() []models.Session {
	math := models.CourseRef{ID: "c1", Title: "Math 101"}
	return []models.Session{
		{ID: "s1", Course: math, Title: "Intro", Date: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), StartTime: "09:00", EndTime: "11:00", Location: "Room 4"},
		{ID: "s2", Course: math, Title: "Limits", Date: time.Date(2026, time.April, 8, 0, 0, 0, 0, time.UTC), StartTime: "09:00", EndTime: "11:00", MeetingURL: "https://meet.example.com/x"},
	}
}

// Enrollments returns enrollments across two courses.
func Enrollments() []models.Enrollment {
	return []models.Enrollment{
		{ID: "e1", Student: models.Person{ID: "s1", Name: "Anna Field", Email: "anna@example.com"}, Course: models.CourseRef{ID: "c1", Title: "Math 101"}, Progress: 40, Status: "active", EnrolledAt: Day(1)},
		{ID: "e2", Student: models.Person{ID: "s2", Name: "Joanne Park", Email: "jo@example.com"}, Course: models.CourseRef{ID: "c2", Title: "History"}, Progress: 100, Status: "completed", EnrolledAt: Day(2)},
	}
}
