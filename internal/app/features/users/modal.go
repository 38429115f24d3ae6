// internal/app/features/users/modal.go
package users

import (
	"net/http"

	uierrors "github.com/dalemusser/coursehub/internal/app/features/errors"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/navigation"
	"github.com/dalemusser/coursehub/internal/app/system/notify"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
)

// ServeManageModal renders the Manage modal for one user from the cached
// users list. It is invoked via htmx from the list page.
func (h *Handler) ServeManageModal(w http.ResponseWriter, r *http.Request) {
	u, ok := h.findUser(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	h.renderManage(w, r, u)
}

// findUser writes the error response itself when it returns false.
func (h *Handler) findUser(w http.ResponseWriter, r *http.Request, id string) (models.User, bool) {
	rows, err := h.loadUsers(r)
	if err != nil {
		h.ErrLog.LogAPIError(w, r, "list users failed", err, "Could not load users.", "/users")
		return models.User{}, false
	}
	u, ok := shared.Find(rows, userID, id)
	if !ok {
		uierrors.HTMXNotFound(w, r, "User not found.", "/users")
		return models.User{}, false
	}
	return u, true
}

func (h *Handler) renderManage(w http.ResponseWriter, r *http.Request, u models.User) {
	h.Render.Snippet(w, "user_manage_modal", manageModalData{
		User:      u,
		IsSelf:    isSelf(r, u.ID),
		ReturnURL: navigation.SafeBackURL(r, navigation.UsersBackURL),
		CSRFToken: csrf.Token(r),
		Notices:   notify.Take(r),
	})
}

// afterModalAction finishes a modal-triggered mutation: success goes back
// to the list; failure re-renders the modal for htmx callers so the user
// can retry or cancel.
func (h *Handler) afterModalAction(w http.ResponseWriter, r *http.Request, id string, err error) {
	if err == nil {
		notify.Redirect(w, r, navigation.SafeBackURL(r, navigation.UsersBackURL))
		return
	}
	if h.SessionRejected(w, r, err) {
		return
	}
	if !shared.IsHTMX(r) {
		notify.Redirect(w, r, navigation.SafeBackURL(r, navigation.UsersBackURL))
		return
	}
	u, ok := h.findUser(w, r, id)
	if !ok {
		return
	}
	h.renderManage(w, r, u)
}
