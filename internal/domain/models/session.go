// internal/domain/models/session.go
package models

import "time"

// Session is one scheduled meeting of a course.
type Session struct {
	ID         string    `json:"id" validate:"required"`
	Course     CourseRef `json:"course"`
	Title      string    `json:"title"`
	Date       time.Time `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Location   string    `json:"location,omitempty"`
	MeetingURL string    `json:"meetingUrl,omitempty"`
}

// IsOnline reports whether the session has a meeting link.
func (s Session) IsOnline() bool { return s.MeetingURL != "" }

// SessionInput is the instructor create/edit payload. Date is YYYY-MM-DD and
// times are HH:MM in the course's local time.
type SessionInput struct {
	Title      string `json:"title" validate:"required,max=200" label:"Title"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02" label:"Date"`
	StartTime  string `json:"startTime" validate:"required,datetime=15:04" label:"Start time"`
	EndTime    string `json:"endTime" validate:"required,datetime=15:04" label:"End time"`
	Location   string `json:"location,omitempty" validate:"required_without=MeetingURL,max=300" label:"Location"`
	MeetingURL string `json:"meetingUrl,omitempty" validate:"omitempty,url,max=500" label:"Meeting URL"`
}
