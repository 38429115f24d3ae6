// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/dalemusser/coursehub/internal/app/store/audit"
	"github.com/dalemusser/coursehub/internal/app/system/auditlog"
	"github.com/dalemusser/coursehub/internal/app/system/metrics"
	"github.com/dalemusser/coursehub/internal/app/system/querycache"
	"github.com/dalemusser/coursehub/internal/app/system/ratelimit"
	"github.com/dalemusser/coursehub/internal/app/system/tasks"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/dalemusser/coursehub/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB builds the API client and the process-wide state around it, and
// connects to MongoDB when audit persistence is configured.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	m := metrics.New()

	client, err := api.New(api.Config{BaseURL: appCfg.APIBaseURL}, logger, m)
	if err != nil {
		return DBDeps{}, err
	}

	deps := DBDeps{
		API:          client,
		Metrics:      m,
		Cache:        querycache.New(appCfg.CacheTTL, m),
		LoginLimiter: ratelimit.NewLoginLimiter(appCfg.LoginRate, appCfg.LoginBurst),
		Scheduler:    tasks.NewScheduler(logger),
	}

	if appCfg.MongoURI != "" {
		mc, db, err := connectMongo(ctx, appCfg, logger)
		if err != nil {
			return DBDeps{}, err
		}
		deps.AuditMongoClient = mc
		deps.AuditMongoDatabase = db
		deps.AuditStore = audit.New(db)
	} else {
		logger.Info("audit persistence disabled; audit events go to the log only")
	}

	// A nil *audit.Store must not become a non-nil Sink.
	var sink auditlog.Sink
	if deps.AuditStore != nil {
		sink = deps.AuditStore
	}
	deps.AuditLog = auditlog.New(sink, logger, appCfg.auditConfig())

	return deps, nil
}

func connectMongo(ctx context.Context, appCfg AppConfig, logger *zap.Logger) (*mongo.Client, *mongo.Database, error) {
	cctx, cancel := context.WithTimeout(ctx, timeouts.Ping()*3)
	defer cancel()

	mc, err := mongo.Connect(cctx, options.Client().ApplyURI(appCfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect audit mongo: %w", err)
	}
	if err := mc.Ping(cctx, readpref.Primary()); err != nil {
		_ = mc.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping audit mongo: %w", err)
	}
	logger.Info("connected to audit MongoDB", zap.String("database", appCfg.MongoDatabase))
	return mc, mc.Database(appCfg.MongoDatabase), nil
}

// EnsureSchema creates the audit collection, its validator, and its indexes
// when persistence is on.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.AuditStore == nil {
		return nil
	}
	if err := validators.EnsureAll(ctx, deps.AuditMongoDatabase, logger); err != nil {
		logger.Warn("audit collection validator not applied", zap.Error(err))
	}
	if err := deps.AuditStore.EnsureIndexes(ctx); err != nil {
		logger.Error("audit index creation failed", zap.Error(err))
		return err
	}
	return nil
}
