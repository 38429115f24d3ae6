// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"html/template"
	"net/http"
	"sync"

	"github.com/dalemusser/coursehub/internal/app/system/authz"
	"github.com/dalemusser/coursehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/coursehub/internal/app/system/notify"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/default-back"),
//	}
type BaseVM struct {
	// Site branding (last settings seen by the console)
	SiteName   string
	FooterHTML template.HTML

	// User context (from auth middleware)
	IsLoggedIn bool
	Role       string
	UserName   string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// CSRF protection
	CSRFToken string

	// Flash notifications raised during this request or parked by the
	// previous redirect.
	Notices []notify.Message
}

// IsAdmin and IsInstructor drive the nav menu.
func (vm BaseVM) IsAdmin() bool      { return vm.Role == models.RoleAdmin }
func (vm BaseVM) IsInstructor() bool { return vm.Role == models.RoleInstructor }

type site struct {
	name   string
	footer template.HTML
}

var (
	siteMu  sync.RWMutex
	current = site{name: models.DefaultSiteName}
)

// SetSite updates the branding shown on every page. The settings feature
// calls it whenever it reads or saves platform settings; bootstrap seeds it
// from configuration.
func SetSite(name, footerHTML string) {
	if name == "" {
		name = models.DefaultSiteName
	}
	siteMu.Lock()
	current = site{name: name, footer: htmlsanitize.PrepareForDisplay(footerHTML)}
	siteMu.Unlock()
}

// SiteName returns the current site name.
func SiteName() string {
	siteMu.RLock()
	defer siteMu.RUnlock()
	return current.name
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
//
// Pending notices are consumed; build the BaseVM once per response.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)

	siteMu.RLock()
	s := current
	siteMu.RUnlock()

	return BaseVM{
		SiteName:    s.name,
		FooterHTML:  s.footer,
		IsLoggedIn:  signedIn,
		Role:        role,
		UserName:    name,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
		Notices:     notify.Take(r),
	}
}
