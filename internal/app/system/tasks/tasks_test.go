package tasks_test

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/querycache"
	"github.com/dalemusser/coursehub/internal/app/system/ratelimit"
	"github.com/dalemusser/coursehub/internal/app/system/tasks"
	"go.uber.org/zap"
)

func TestScheduler_AddRejectsBadSchedule(t *testing.T) {
	s := tasks.NewScheduler(zap.NewNop())
	err := s.Add(tasks.Job{Name: "bad", Schedule: "every now and then", Run: func(context.Context) error { return nil }})
	if err == nil {
		t.Fatal("expected error for unparseable schedule")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestScheduler_RunsJob(t *testing.T) {
	s := tasks.NewScheduler(zap.NewNop())
	ran := make(chan struct{}, 1)
	if err := s.Add(tasks.Job{Name: "tick", Schedule: "@every 1s", Run: func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}}); err != nil {
		t.Fatal(err)
	}
	s.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Stop(ctx)
	}()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestCacheSweepJob(t *testing.T) {
	c := querycache.New(time.Minute, nil)
	now := time.Now()
	c.SetClock(func() time.Time { return now })
	querycache.Fetch(context.Background(), c, "u1", querycache.K("courses"), func(context.Context) (int, error) { return 1, nil })
	now = now.Add(2 * time.Minute)

	job := tasks.CacheSweepJob(c, zap.NewNop(), "@every 1m")
	if err := job.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d after sweep, want 0", c.Len())
	}
}

func TestLoginLimiterSweepJob(t *testing.T) {
	ll := ratelimit.NewLoginLimiter(10, 2)
	job := tasks.LoginLimiterSweepJob(ll, zap.NewNop(), time.Hour)
	if job.Name == "" || job.Schedule == "" {
		t.Fatalf("job = %+v", job)
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
}
