// internal/app/features/users/delete.go
package users

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/mutation"
	"github.com/dalemusser/coursehub/internal/app/system/notify"
	"github.com/go-chi/chi/v5"
)

// HandleToggleStatus enables or disables a user. The form posts the
// desired state in "active".
func (h *Handler) HandleToggleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	active, err := strconv.ParseBool(r.FormValue("active"))
	if err != nil {
		h.ErrLog.HTMXLogBadRequest(w, r, "bad active value", err, "Invalid status.", "/users")
		return
	}
	if !active && isSelf(r, id) {
		notify.From(r).Notify(notify.Error, "You can't disable your own account.")
		h.afterModalAction(w, r, id, errSelf)
		return
	}

	success := "User disabled."
	name := "user.disable"
	if active {
		success = "User enabled."
		name = "user.enable"
	}
	err = h.Mutate(r, mutation.Action{
		Name:       name,
		Target:     shared.Users,
		Instance:   id,
		Invalidate: []string{shared.Users},
		Success:    success,
		Failure:    "Could not change the user's status.",
	}, func(ctx context.Context, c *api.Client) error {
		return c.SetUserActive(ctx, id, active)
	})
	h.afterModalAction(w, r, id, err)
}

// HandleDelete deletes a user. Admins cannot delete themselves.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if isSelf(r, id) {
		notify.From(r).Notify(notify.Error, "You can't delete your own account. Ask another admin to remove it.")
		h.afterModalAction(w, r, id, errSelf)
		return
	}

	err := h.Mutate(r, mutation.Action{
		Name:       "user.delete",
		Target:     shared.Users,
		Instance:   id,
		Invalidate: []string{shared.Users, shared.AdminStats},
		Success:    "User deleted.",
		Failure:    "Could not delete the user.",
	}, func(ctx context.Context, c *api.Client) error {
		return c.DeleteUser(ctx, id)
	})
	h.afterModalAction(w, r, id, err)
}
