// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/querycache"
	"github.com/dalemusser/coursehub/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// CacheSweepJob removes expired query-cache entries so memory does not grow
// with users who stopped browsing.
func CacheSweepJob(cache *querycache.Cache, logger *zap.Logger, schedule string) Job {
	return Job{
		Name:     "query-cache-sweep",
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			if n := cache.Sweep(); n > 0 {
				logger.Debug("swept expired cache entries", zap.Int("count", n))
			}
			return nil
		},
	}
}

// LoginLimiterSweepJob drops login throttling buckets idle for longer than idle.
func LoginLimiterSweepJob(ll *ratelimit.LoginLimiter, logger *zap.Logger, idle time.Duration) Job {
	return Job{
		Name:     "login-limiter-sweep",
		Schedule: "@every 10m",
		Run: func(ctx context.Context) error {
			if n := ll.Sweep(idle); n > 0 {
				logger.Debug("swept idle login limiter buckets", zap.Int("count", n))
			}
			return nil
		},
	}
}
