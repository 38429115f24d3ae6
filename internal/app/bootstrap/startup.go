// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/coursehub/internal/app/resources"
	"github.com/dalemusser/coursehub/internal/app/system/tasks"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// limiterIdle is how long a login bucket may sit unused before it is swept.
const limiterIdle = 30 * time.Minute

// Startup runs one-time application initialization after the backends are
// connected but before the HTTP handler is built: shared templates,
// configured timeouts, and the housekeeping jobs.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	timeouts.Configure(timeouts.Config{
		API:    appCfg.TimeoutAPI,
		Export: appCfg.TimeoutExport,
	})

	jobs := []tasks.Job{
		tasks.CacheSweepJob(deps.Cache, logger, appCfg.CacheSweepSchedule),
		tasks.LoginLimiterSweepJob(deps.LoginLimiter, logger, limiterIdle),
	}
	for _, j := range jobs {
		if err := deps.Scheduler.Add(j); err != nil {
			return err
		}
	}
	deps.Scheduler.Start()
	return nil
}
