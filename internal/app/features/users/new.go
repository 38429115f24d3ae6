// internal/app/features/users/new.go
package users

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/mutation"
	"github.com/dalemusser/coursehub/internal/app/system/navigation"
	"github.com/dalemusser/coursehub/internal/app/system/notify"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/coursehub/internal/domain/models"
)

// ServeNew renders the New User form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, formData{
		Input: models.UserInput{Role: models.RoleStudent},
	})
}

// HandleCreate validates the form and creates the user.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/users")
		return
	}
	in := inputFromForm(r)
	in.Password = r.PostFormValue("password")
	form := formData{Input: in}

	res := inputval.Validate(in)
	if in.Password == "" {
		res.Errors["password"] = "Password is required."
	}
	if len(res.Errors) > 0 {
		form.FieldErrors = res.Errors
		h.renderForm(w, r, http.StatusUnprocessableEntity, form)
		return
	}

	err := h.Mutate(r, mutation.Action{
		Name:       "user.create",
		Target:     shared.Users,
		Instance:   "new",
		Invalidate: []string{shared.Users, shared.AdminStats},
		Success:    "User created.",
		Failure:    "Could not create the user.",
	}, func(ctx context.Context, c *api.Client) error {
		_, err := c.CreateUser(ctx, in)
		return err
	})
	if err != nil {
		if h.SessionRejected(w, r, err) {
			return
		}
		form.Input.Password = ""
		h.renderForm(w, r, shared.FailureStatus(err), form)
		return
	}
	notify.Redirect(w, r, navigation.SafeBackURL(r, navigation.UsersBackURL))
}

func inputFromForm(r *http.Request) models.UserInput {
	return models.UserInput{
		Name:  strings.TrimSpace(r.PostFormValue("name")),
		Email: strings.ToLower(strings.TrimSpace(r.PostFormValue("email"))),
		Role:  strings.ToLower(strings.TrimSpace(r.PostFormValue("role"))),
		Phone: strings.TrimSpace(r.PostFormValue("phone")),
	}
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, data formData) {
	title := "New User"
	if data.IsEdit {
		title = "Edit User"
	}
	data.BaseVM = viewdata.NewBaseVM(r, title, "/users")
	data.Roles = models.Roles
	data.ReturnURL = navigation.SafeBackURL(r, navigation.UsersBackURL)
	if status != http.StatusOK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	h.Render.Page(w, r, "user_form", data)
}
