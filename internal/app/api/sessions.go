package api

import (
	"context"
	"net/http"

	"github.com/dalemusser/coursehub/internal/domain/models"
)

// ListSessions returns a course's sessions (instructor).
func (c *Client) ListSessions(ctx context.Context, courseID string) ([]models.Session, error) {
	var out []models.Session
	err := c.do(ctx, "sessions.list", http.MethodGet, "/instructor/courses/"+pathID(courseID)+"/sessions", nil, nil, &out)
	return out, err
}

// CreateSession schedules a session for a course (instructor).
func (c *Client) CreateSession(ctx context.Context, courseID string, in models.SessionInput) (models.Session, error) {
	var out models.Session
	err := c.do(ctx, "sessions.create", http.MethodPost, "/instructor/courses/"+pathID(courseID)+"/sessions", nil, in, &out)
	return out, err
}

// UpdateSession edits a session (instructor).
func (c *Client) UpdateSession(ctx context.Context, id string, in models.SessionInput) error {
	return c.do(ctx, "sessions.update", http.MethodPut, "/instructor/sessions/"+pathID(id), nil, in, nil)
}

// DeleteSession removes a session (instructor).
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.do(ctx, "sessions.delete", http.MethodDelete, "/instructor/sessions/"+pathID(id), nil, nil, nil)
}

// ListStudents returns enrollments across the instructor's courses.
func (c *Client) ListStudents(ctx context.Context) ([]models.Enrollment, error) {
	var out []models.Enrollment
	err := c.do(ctx, "students.list", http.MethodGet, "/instructor/students", nil, nil, &out)
	return out, err
}
