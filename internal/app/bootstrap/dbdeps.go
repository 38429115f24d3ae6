// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/dalemusser/coursehub/internal/app/store/audit"
	"github.com/dalemusser/coursehub/internal/app/system/auditlog"
	"github.com/dalemusser/coursehub/internal/app/system/metrics"
	"github.com/dalemusser/coursehub/internal/app/system/querycache"
	"github.com/dalemusser/coursehub/internal/app/system/ratelimit"
	"github.com/dalemusser/coursehub/internal/app/system/tasks"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the back-end dependencies shared by every lifecycle hook.
// The platform API client is the primary backend; the Mongo fields are nil
// when audit persistence is disabled.
type DBDeps struct {
	API     *api.Client
	Metrics *metrics.Set
	Cache   *querycache.Cache

	AuditMongoClient   *mongo.Client
	AuditMongoDatabase *mongo.Database
	AuditStore         *audit.Store
	AuditLog           *auditlog.Logger

	LoginLimiter *ratelimit.LoginLimiter
	Scheduler    *tasks.Scheduler
}
