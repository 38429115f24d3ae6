// internal/app/features/auditlog/handler.go
package auditlog

import (
	"context"

	uierrors "github.com/dalemusser/coursehub/internal/app/features/errors"
	"github.com/dalemusser/coursehub/internal/app/store/audit"
	"github.com/dalemusser/coursehub/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Querier reads audit events. *audit.Store satisfies it.
type Querier interface {
	Query(ctx context.Context, filter audit.QueryFilter) ([]audit.Event, error)
	CountByFilter(ctx context.Context, filter audit.QueryFilter) (int64, error)
}

type Handler struct {
	Store  Querier // nil when audit persistence is disabled
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Render viewdata.Renderer
}

// NewHandler constructs an audit log handler. Pass a nil store when events
// are only written to the application log.
func NewHandler(store *audit.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	h := &Handler{
		Log:    logger,
		ErrLog: errLog,
		Render: viewdata.Templates{},
	}
	if store != nil {
		h.Store = store
	}
	return h
}
