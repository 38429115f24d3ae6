// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops the housekeeping jobs and closes the audit database.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Scheduler != nil {
		deps.Scheduler.Stop(ctx)
	}
	if deps.AuditMongoClient != nil {
		logger.Info("disconnecting audit MongoDB client")
		if err := deps.AuditMongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
