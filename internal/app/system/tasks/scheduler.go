// internal/app/system/tasks/scheduler.go
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a named piece of periodic housekeeping.
type Job struct {
	Name     string
	Schedule string // standard 5-field cron spec or a descriptor like "@every 1m"
	Timeout  time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler runs Jobs on their cron schedules.
type Scheduler struct {
	c   *cron.Cron
	log *zap.Logger
}

// NewScheduler creates an idle scheduler. Overlapping runs of the same job
// are skipped rather than queued.
func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		c: cron.New(cron.WithChain(
			cron.Recover(cron.DiscardLogger),
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		log: logger,
	}
}

// Add registers a job. It fails on an unparseable schedule.
func (s *Scheduler) Add(job Job) error {
	timeout := job.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	_, err := s.c.AddFunc(job.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		start := time.Now()
		if err := job.Run(ctx); err != nil {
			s.log.Error("scheduled job failed",
				zap.String("job", job.Name),
				zap.Error(err))
			return
		}
		s.log.Debug("scheduled job finished",
			zap.String("job", job.Name),
			zap.Duration("elapsed", time.Since(start)))
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", job.Name, job.Schedule, err)
	}
	s.log.Info("scheduled job registered",
		zap.String("job", job.Name),
		zap.String("schedule", job.Schedule))
	return nil
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int { return len(s.c.Entries()) }

// Start begins running jobs in the background.
func (s *Scheduler) Start() { s.c.Start() }

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.c.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out; jobs still running")
	}
}
