package logout

import (
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/system/auditlog"
	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/app/system/querycache"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	AuditLog   *auditlog.Logger
	Cache      *querycache.Cache
}

// NewHandler builds the logout handler. audit and cache may be nil.
func NewHandler(sessionMgr *auth.SessionManager, audit *auditlog.Logger, cache *querycache.Cache, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		AuditLog:   audit,
		Cache:      cache,
	}
}

// ServeLogout clears the session and the user's cached collections.
// GET or POST /logout.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.AuditLog.Logout(r.Context(), r, u.ID, u.Role)
		if h.Cache != nil {
			h.Cache.InvalidateAll(u.ID)
		}
	}

	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}

	// HTMX handling: use HX-Redirect to force a client-side navigation.
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", auth.LoginPath)
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
}
