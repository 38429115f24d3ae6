// internal/domain/models/user.go
package models

import "time"

// Roles understood by the console. Students never sign in here; they only
// appear in lists and reports.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// Roles lists every role in display order.
var Roles = []string{RoleStudent, RoleInstructor, RoleAdmin}

// User is a platform account as returned by the API.
type User struct {
	ID        string    `json:"id" validate:"required"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role" validate:"omitempty,oneof=student instructor admin"`
	IsActive  bool      `json:"isActive"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatusLabel is "active" or "disabled" for list badges and the status filter.
func (u User) StatusLabel() string {
	if u.IsActive {
		return "active"
	}
	return "disabled"
}

// UserInput is the payload for creating or updating a user.
// Password is only sent on create.
type UserInput struct {
	Name     string `json:"name" validate:"required,max=200" label:"Name"`
	Email    string `json:"email" validate:"required,email,max=254" label:"Email"`
	Role     string `json:"role" validate:"required,oneof=student instructor admin" label:"Role"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=40" label:"Phone"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8,max=128" label:"Password"`
}

// Person is the short reference the API embeds for students and instructors.
type Person struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
