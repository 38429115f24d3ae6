// internal/app/features/users/list.go
package users

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/listview"
	"github.com/dalemusser/coursehub/internal/app/system/querycache"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"go.uber.org/zap"
)

func userID(u models.User) string { return u.ID }

var listSpec = listview.Spec[models.User]{
	ID: userID,
	Search: []func(models.User) string{
		func(u models.User) string { return u.Name },
		func(u models.User) string { return u.Email },
	},
	Filters: []listview.Filter[models.User]{
		{Name: "role", Label: "Role", Options: models.Roles, Value: func(u models.User) string { return u.Role }},
		{Name: "status", Label: "Status", Options: Statuses, Value: models.User.StatusLabel},
	},
	Sorts: []listview.Sort[models.User]{
		{Key: "name", Label: "Name", Text: func(u models.User) string { return u.Name }},
		{Key: "email", Label: "Email", Text: func(u models.User) string { return u.Email }},
		{Key: "role", Label: "Role", Text: func(u models.User) string { return u.Role }},
		{Key: "created", Label: "Created", Time: func(u models.User) time.Time { return u.CreatedAt }},
	},
	DefaultSort: "name",
	DefaultDir:  listview.Asc,
}

// ServeList renders the users list.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := listview.ParseQuery(r, listSpec)
	data := listData{
		BaseVM:   viewdata.NewBaseVM(r, "Users", "/dashboard"),
		Roles:    models.Roles,
		Statuses: Statuses,
	}

	rows, err := h.loadUsers(r)
	if err != nil {
		if h.SessionRejected(w, r, err) {
			return
		}
		h.Log.Warn("list users failed", zap.Error(err))
		data.LoadError = shared.LoadError(err, "users")
	}
	data.View = listview.Derive(rows, q, listSpec)
	data.ReturnURL = shared.ListURL("/users", q)

	h.RenderList(w, r, "users_list", "users_table", data)
}

func (h *Handler) loadUsers(r *http.Request) ([]models.User, error) {
	return shared.Load(&h.Base, r, querycache.K(shared.Users), func(ctx context.Context, c *api.Client) ([]models.User, error) {
		return c.ListUsers(ctx)
	})
}
