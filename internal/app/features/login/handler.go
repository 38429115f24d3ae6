// internal/app/features/login/handler.go
package login

import (
	"net/http"
	"strings"

	"github.com/dalemusser/coursehub/internal/app/api"
	uierrors "github.com/dalemusser/coursehub/internal/app/features/errors"
	"github.com/dalemusser/coursehub/internal/app/system/auditlog"
	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/ratelimit"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

type Handler struct {
	API        *api.Client
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	AuditLog   *auditlog.Logger
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
	Render     viewdata.Renderer
}

type loginFormData struct {
	viewdata.BaseVM
	Error       string
	FieldErrors map[string]string
	Email       string
	ReturnURL   string
}

func NewHandler(client *api.Client, sessionMgr *auth.SessionManager, limiter *ratelimit.LoginLimiter,
	audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		API:        client,
		SessionMgr: sessionMgr,
		Limiter:    limiter,
		AuditLog:   audit,
		ErrLog:     errLog,
		Log:        logger,
		Render:     viewdata.Templates{},
	}
}

// consoleRoles may sign in here. Students use the public site.
var consoleRoles = map[string]bool{models.RoleAdmin: true, models.RoleInstructor: true}

// ServeLogin renders the sign-in form. Signed-in users go straight to
// their dashboard.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, returnURL(r), http.StatusSeeOther)
		return
	}
	h.renderForm(w, r, http.StatusOK, loginFormData{ReturnURL: query.Get(r, "return")})
}

// HandleLoginPost exchanges credentials for an API token and starts a
// session.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse login form failed", err, "Invalid form data.", "/login")
		return
	}
	in := api.LoginInput{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	form := loginFormData{Email: in.Email, ReturnURL: r.PostFormValue("return")}

	if res := inputval.Validate(in); res.HasErrors() {
		form.FieldErrors = res.Errors
		h.renderForm(w, r, http.StatusUnprocessableEntity, form)
		return
	}

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, in.Email); !ok {
			h.AuditLog.LoginRateLimited(r.Context(), r, in.Email)
			form.Error = reason
			h.renderForm(w, r, http.StatusTooManyRequests, form)
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.API(), h.Log, "login")
	defer cancel()
	res, err := h.API.Login(ctx, in)
	if err != nil {
		status := api.StatusCode(err)
		if status == 0 || status >= 500 {
			h.Log.Error("login request failed", zap.Error(err))
			h.AuditLog.LoginFailed(r.Context(), r, in.Email, "api unavailable")
			form.Error = "Sign-in is unavailable right now. Please try again shortly."
			h.renderForm(w, r, http.StatusBadGateway, form)
			return
		}
		h.AuditLog.LoginFailed(r.Context(), r, in.Email, "invalid credentials")
		form.Error = api.Message(err, "Invalid email or password.")
		h.renderForm(w, r, http.StatusUnauthorized, form)
		return
	}

	if res.User == nil {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: res.Token})
		me, err := h.API.WithTokenSource(ts).Me(ctx)
		if err != nil {
			h.Log.Error("profile lookup after login failed", zap.Error(err))
			h.AuditLog.LoginFailed(r.Context(), r, in.Email, "profile lookup failed")
			form.Error = "Sign-in is unavailable right now. Please try again shortly."
			h.renderForm(w, r, http.StatusBadGateway, form)
			return
		}
		res.User = &me
	}

	role := strings.ToLower(res.User.Role)
	if !consoleRoles[role] {
		h.AuditLog.LoginFailed(r.Context(), r, in.Email, "role not permitted: "+role)
		form.Error = "This console is for administrators and instructors."
		h.renderForm(w, r, http.StatusForbidden, form)
		return
	}
	err = h.SessionMgr.SignIn(w, r, auth.SessionUser{
		ID:    res.User.ID,
		Name:  res.User.Name,
		Email: res.User.Email,
		Role:  role,
		Token: res.Token,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, "Could not start your session.", "/login")
		return
	}
	if h.Limiter != nil {
		h.Limiter.ResetEmail(in.Email)
	}
	h.AuditLog.LoginSuccess(r.Context(), r, res.User.ID, role, in.Email)

	http.Redirect(w, r, returnURL(r), http.StatusSeeOther)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, data loginFormData) {
	data.BaseVM = viewdata.NewBaseVM(r, "Sign in", "/")
	if status != http.StatusOK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	h.Render.Page(w, r, "login_form", data)
}

// returnURL is the local "return" target, or the dashboard.
func returnURL(r *http.Request) string {
	ret := urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	if ret == "" || strings.HasPrefix(ret, auth.LoginPath) {
		return "/dashboard"
	}
	return ret
}
