// internal/app/features/auditlog/types.go
package auditlog

import (
	"net/url"
	"strconv"

	"github.com/dalemusser/coursehub/internal/app/store/audit"
	"github.com/dalemusser/coursehub/internal/app/system/paging"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
)

// listData is the view model for the audit log page.
type listData struct {
	viewdata.BaseVM

	Disabled bool
	Items    []audit.Event
	Error    string

	// Filters
	Category  string
	EventType string
	StartDate string
	EndDate   string

	Categories []categoryOption
	EventTypes []string

	Range paging.Range
}

// PageLink keeps the active filters and moves to start.
func (d listData) PageLink(start int) string {
	v := url.Values{}
	for k, val := range map[string]string{
		"category":   d.Category,
		"event_type": d.EventType,
		"start_date": d.StartDate,
		"end_date":   d.EndDate,
	} {
		if val != "" {
			v.Set(k, val)
		}
	}
	if start > 1 {
		v.Set("start", strconv.Itoa(start))
	}
	return v.Encode()
}

type categoryOption struct {
	Value string
	Label string
}

func allCategories() []categoryOption {
	return []categoryOption{
		{Value: audit.CategoryAuth, Label: "Authentication"},
		{Value: audit.CategoryAdmin, Label: "Console changes"},
	}
}

var authEvents = []string{
	audit.EventLoginSuccess,
	audit.EventLoginFailed,
	audit.EventLoginRateLimited,
	audit.EventLogout,
	audit.EventSessionExpired,
}

// adminEvents are the mutation action names recorded by the console.
var adminEvents = []string{
	"backup.create", "backup.delete", "backup.restore",
	"booking.refund", "booking.status",
	"course.approve", "course.create", "course.delete", "course.reject",
	"course.submit", "course.toggle", "course.update",
	"session.create", "session.delete", "session.update",
	"settings.update",
	"user.create", "user.delete", "user.update",
}

// eventTypesForCategory returns the event types for a category, or all of
// them when category is empty.
func eventTypesForCategory(category string) []string {
	switch category {
	case audit.CategoryAuth:
		return authEvents
	case audit.CategoryAdmin:
		return adminEvents
	case "":
		all := make([]string, 0, len(authEvents)+len(adminEvents))
		all = append(all, authEvents...)
		return append(all, adminEvents...)
	default:
		return nil
	}
}
