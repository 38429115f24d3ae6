// internal/app/features/users/edit.go
package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/authz"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/mutation"
	"github.com/dalemusser/coursehub/internal/app/system/navigation"
	"github.com/dalemusser/coursehub/internal/app/system/notify"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// ServeEdit renders the Edit User form with the user's current values.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.API(), h.Log, "get user")
	defer cancel()
	u, err := h.Client(r).GetUser(ctx, id)
	if err != nil {
		h.ErrLog.LogAPIError(w, r, "get user failed", err, "Could not load the user.", "/users")
		return
	}

	h.renderForm(w, r, http.StatusOK, formData{
		ID:     u.ID,
		IsEdit: true,
		IsSelf: isSelf(r, u.ID),
		Input:  models.UserInput{Name: u.Name, Email: u.Email, Role: u.Role, Phone: u.Phone},
	})
}

// HandleEdit validates the form and updates the user. Admins cannot
// change their own role.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/users")
		return
	}
	id := chi.URLParam(r, "id")
	in := inputFromForm(r)
	self := isSelf(r, id)
	form := formData{ID: id, IsEdit: true, IsSelf: self, Input: in}

	res := inputval.Validate(in)
	if self && in.Role != models.RoleAdmin {
		res.Errors["role"] = "You can't change your own role. Ask another admin."
	}
	if len(res.Errors) > 0 {
		form.FieldErrors = res.Errors
		h.renderForm(w, r, http.StatusUnprocessableEntity, form)
		return
	}

	err := h.Mutate(r, mutation.Action{
		Name:       "user.update",
		Target:     shared.Users,
		Instance:   id,
		Invalidate: []string{shared.Users, shared.AdminStats},
		Success:    "User updated.",
		Failure:    "Could not update the user.",
	}, func(ctx context.Context, c *api.Client) error {
		return c.UpdateUser(ctx, id, in)
	})
	if err != nil {
		if h.SessionRejected(w, r, err) {
			return
		}
		h.renderForm(w, r, shared.FailureStatus(err), form)
		return
	}
	notify.Redirect(w, r, navigation.SafeBackURL(r, navigation.UsersBackURL))
}

func isSelf(r *http.Request, id string) bool {
	_, _, me, ok := authz.UserCtx(r)
	return ok && me == id
}
