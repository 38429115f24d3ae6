// internal/app/features/settings/settings.go
package settings

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/limits"
	"github.com/dalemusser/coursehub/internal/app/system/mutation"
	"github.com/dalemusser/coursehub/internal/app/system/navigation"
	"github.com/dalemusser/coursehub/internal/app/system/notify"
	"github.com/dalemusser/coursehub/internal/app/system/querycache"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"go.uber.org/zap"
)

type settingsVM struct {
	viewdata.BaseVM

	Input         models.PlatformSettings
	Commission    string
	FieldErrors   map[string]string
	SettingsError string

	Backups      []models.Backup
	BackupsError string
}

// ServeSettings displays the settings form and the backups list.
func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	vm := settingsVM{}

	s, err := h.loadSettings(r)
	if err != nil {
		if h.SessionRejected(w, r, err) {
			return
		}
		h.Log.Warn("load settings failed", zap.Error(err))
		vm.SettingsError = shared.LoadError(err, "settings")
	} else {
		viewdata.SetSite(s.SiteName, s.FooterHTML)
	}
	vm.Input = s
	vm.Commission = strconv.FormatFloat(s.CommissionRate, 'f', -1, 64)

	h.render(w, r, http.StatusOK, vm)
}

// HandleSettings processes the settings form submission.
func (h *Handler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxSettingsFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/settings")
		return
	}

	vm := settingsVM{
		Input: models.PlatformSettings{
			SiteName:           strings.TrimSpace(r.PostFormValue("siteName")),
			SupportEmail:       strings.ToLower(strings.TrimSpace(r.PostFormValue("supportEmail"))),
			Currency:           strings.ToUpper(strings.TrimSpace(r.PostFormValue("currency"))),
			MaintenanceMode:    r.PostFormValue("maintenanceMode") == "on",
			AllowRegistrations: r.PostFormValue("allowRegistrations") == "on",
			FooterHTML:         strings.TrimSpace(r.PostFormValue("footerHtml")),
		},
		Commission: strings.TrimSpace(r.PostFormValue("commissionRate")),
	}
	rate, rateErr := strconv.ParseFloat(vm.Commission, 64)
	vm.Input.CommissionRate = rate

	res := inputval.Validate(vm.Input)
	if rateErr != nil {
		res.Errors["commissionRate"] = "Commission rate must be a number."
	}
	if len(res.Errors) > 0 {
		vm.FieldErrors = res.Errors
		h.render(w, r, http.StatusUnprocessableEntity, vm)
		return
	}

	in := vm.Input
	err := h.Mutate(r, mutation.Action{
		Name:       "settings.update",
		Target:     shared.Settings,
		Instance:   "platform",
		Invalidate: []string{shared.Settings},
		Success:    "Settings saved.",
		Failure:    "Could not save the settings.",
	}, func(ctx context.Context, c *api.Client) error {
		return c.UpdateSettings(ctx, in)
	})
	if err != nil {
		if h.SessionRejected(w, r, err) {
			return
		}
		h.render(w, r, shared.FailureStatus(err), vm)
		return
	}
	viewdata.SetSite(in.SiteName, in.FooterHTML)
	notify.Redirect(w, r, navigation.SafeBackURL(r, navigation.SettingsBackURL))
}

func (h *Handler) loadSettings(r *http.Request) (models.PlatformSettings, error) {
	return shared.Load(&h.Base, r, querycache.K(shared.Settings), func(ctx context.Context, c *api.Client) (models.PlatformSettings, error) {
		return c.GetSettings(ctx)
	})
}

// render fills in the backups list, which is shown on every settings page.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, vm settingsVM) {
	backups, err := h.loadBackups(r)
	if err != nil {
		h.Log.Warn("list backups failed", zap.Error(err))
		vm.BackupsError = shared.LoadError(err, "backups")
	}
	vm.Backups = backups

	vm.BaseVM = viewdata.NewBaseVM(r, "Settings", "/dashboard")
	if status != http.StatusOK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	h.Render.Page(w, r, "settings_page", vm)
}
