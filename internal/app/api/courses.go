package api

import (
	"context"
	"net/http"

	"github.com/dalemusser/coursehub/internal/domain/models"
)

// ListAllCourses returns every course on the platform (admin).
func (c *Client) ListAllCourses(ctx context.Context) ([]models.Course, error) {
	var out []models.Course
	err := c.do(ctx, "courses.list", http.MethodGet, "/admin/courses", nil, nil, &out)
	return out, err
}

// GetCourse returns one course.
func (c *Client) GetCourse(ctx context.Context, id string) (models.Course, error) {
	var out models.Course
	err := c.do(ctx, "courses.get", http.MethodGet, "/courses/"+pathID(id), nil, nil, &out)
	return out, err
}

// ApproveCourse requests pending → published (admin).
func (c *Client) ApproveCourse(ctx context.Context, id string) error {
	return c.do(ctx, "courses.approve", http.MethodPatch, "/admin/courses/"+pathID(id)+"/approve", nil, nil, nil)
}

// RejectCourse requests pending → rejected with a reason (admin).
func (c *Client) RejectCourse(ctx context.Context, id string, in models.RejectInput) error {
	return c.do(ctx, "courses.reject", http.MethodPatch, "/admin/courses/"+pathID(id)+"/reject", nil, in, nil)
}

// ToggleCourseActive flips a course's isActive flag (admin).
func (c *Client) ToggleCourseActive(ctx context.Context, id string) error {
	return c.do(ctx, "courses.toggle", http.MethodPatch, "/admin/courses/"+pathID(id)+"/toggle-status", nil, nil, nil)
}

// DeleteCourse removes any course (admin).
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.do(ctx, "courses.delete", http.MethodDelete, "/admin/courses/"+pathID(id), nil, nil, nil)
}

// ListMyCourses returns the signed-in instructor's courses.
func (c *Client) ListMyCourses(ctx context.Context) ([]models.Course, error) {
	var out []models.Course
	err := c.do(ctx, "instructor.courses.list", http.MethodGet, "/instructor/courses", nil, nil, &out)
	return out, err
}

// CreateCourse creates a draft course (instructor).
func (c *Client) CreateCourse(ctx context.Context, in models.CourseInput) (models.Course, error) {
	var out models.Course
	err := c.do(ctx, "instructor.courses.create", http.MethodPost, "/instructor/courses", nil, in, &out)
	return out, err
}

// UpdateCourse edits one of the instructor's courses.
func (c *Client) UpdateCourse(ctx context.Context, id string, in models.CourseInput) error {
	return c.do(ctx, "instructor.courses.update", http.MethodPut, "/instructor/courses/"+pathID(id), nil, in, nil)
}

// SubmitCourse sends a draft or rejected course for review (instructor).
func (c *Client) SubmitCourse(ctx context.Context, id string) error {
	return c.do(ctx, "instructor.courses.submit", http.MethodPost, "/instructor/courses/"+pathID(id)+"/submit", nil, nil, nil)
}

// DeleteMyCourse removes one of the instructor's courses.
func (c *Client) DeleteMyCourse(ctx context.Context, id string) error {
	return c.do(ctx, "instructor.courses.delete", http.MethodDelete, "/instructor/courses/"+pathID(id), nil, nil, nil)
}
