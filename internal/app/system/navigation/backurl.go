// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures the behavior of SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix is the required URL prefix (e.g., "/users", "/bookings").
	// If empty, any safe URL is allowed.
	AllowedPrefix string

	// ExcludedSubpaths are subpath patterns to reject (e.g., "/edit", "/new").
	// These prevent redirect loops back to action pages.
	ExcludedSubpaths []string

	// Fallback is the default URL if no valid return URL is found.
	Fallback string

	// PreserveQueryParam is an optional query parameter to carry over to the
	// fallback URL, e.g. "course" on the students list.
	PreserveQueryParam string
}

// SafeBackURL extracts and validates a return URL from the request.
//
// It checks both the query parameter and form value for "return", validates
// the URL is safe (not an open redirect), optionally validates the prefix,
// and excludes specified subpaths to prevent redirect loops.
//
// List pages pass their current query (search, filters, sort, page) through
// "return" so a successful mutation lands the user back on the same view.
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}

	if ret != "" {
		valid := true
		if opts.AllowedPrefix != "" && !strings.HasPrefix(ret, opts.AllowedPrefix) {
			valid = false
		}
		for _, excluded := range opts.ExcludedSubpaths {
			if strings.Contains(ret, excluded) {
				valid = false
				break
			}
		}
		if valid {
			return ret
		}
	}

	fallback := opts.Fallback
	if opts.PreserveQueryParam != "" {
		param := query.Get(r, opts.PreserveQueryParam)
		if param == "" {
			param = strings.TrimSpace(r.FormValue(opts.PreserveQueryParam))
		}
		if param != "" && param != "all" {
			sep := "?"
			if strings.Contains(fallback, "?") {
				sep = "&"
			}
			fallback += sep + opts.PreserveQueryParam + "=" + param
		}
	}
	return fallback
}

// SessionsBackURL returns options for a course's sessions pages.
func SessionsBackURL(courseID string) BackURLOptions {
	base := "/instructor/courses/" + courseID + "/sessions"
	return BackURLOptions{
		AllowedPrefix:    base,
		ExcludedSubpaths: []string{"/edit", "/new"},
		Fallback:         base,
	}
}

// Common back URL configurations for reuse across packages.
var (
	UsersBackURL = BackURLOptions{
		AllowedPrefix:    "/users",
		ExcludedSubpaths: []string{"/edit", "/new"},
		Fallback:         "/users",
	}

	CoursesBackURL = BackURLOptions{
		AllowedPrefix:    "/courses",
		ExcludedSubpaths: []string{"/reject"},
		Fallback:         "/courses",
	}

	BookingsBackURL = BackURLOptions{
		AllowedPrefix:    "/bookings",
		ExcludedSubpaths: []string{"/refund", "/status", "/export"},
		Fallback:         "/bookings",
	}

	InstructorCoursesBackURL = BackURLOptions{
		AllowedPrefix:    "/instructor/courses",
		ExcludedSubpaths: []string{"/edit", "/new"},
		Fallback:         "/instructor/courses",
	}

	StudentsBackURL = BackURLOptions{
		AllowedPrefix:      "/instructor/students",
		Fallback:           "/instructor/students",
		PreserveQueryParam: "course",
	}

	SettingsBackURL = BackURLOptions{
		AllowedPrefix:    "/settings",
		ExcludedSubpaths: []string{"/download", "/restore"},
		Fallback:         "/settings",
	}
)
