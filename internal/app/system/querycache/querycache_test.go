package querycache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/metrics"
	"github.com/dalemusser/coursehub/internal/app/system/querycache"
)

func counter(n *int32, val []string) func(context.Context) ([]string, error) {
	return func(context.Context) ([]string, error) {
		atomic.AddInt32(n, 1)
		return val, nil
	}
}

func TestFetch_CachesUntilInvalidated(t *testing.T) {
	c := querycache.New(time.Minute, metrics.New())
	ctx := context.Background()
	key := querycache.K("courses")
	var calls int32

	for i := 0; i < 3; i++ {
		got, err := querycache.Fetch(ctx, c, "u1", key, counter(&calls, []string{"Math 101"}))
		if err != nil || len(got) != 1 {
			t.Fatalf("Fetch: %v %v", got, err)
		}
	}
	if calls != 1 {
		t.Fatalf("fetch called %d times, want 1", calls)
	}

	c.Invalidate("u1", "courses")
	if _, err := querycache.Fetch(ctx, c, "u1", key, counter(&calls, nil)); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("fetch called %d times after invalidate, want 2", calls)
	}
}

func TestFetch_ScopesAreIsolated(t *testing.T) {
	c := querycache.New(time.Minute, nil)
	ctx := context.Background()
	key := querycache.K("bookings")
	var calls int32

	querycache.Fetch(ctx, c, "u1", key, counter(&calls, []string{"a"}))
	got, _ := querycache.Fetch(ctx, c, "u2", key, counter(&calls, []string{"b"}))
	if calls != 2 || got[0] != "b" {
		t.Errorf("calls=%d got=%v; users must not share entries", calls, got)
	}

	c.Invalidate("u1", "bookings")
	if len(c.Keys("u2")) != 1 {
		t.Error("invalidating u1 dropped u2's entry")
	}
}

func TestInvalidate_DropsAllParamVariants(t *testing.T) {
	c := querycache.New(time.Minute, nil)
	ctx := context.Background()
	var calls int32
	querycache.Fetch(ctx, c, "u1", querycache.K("sessions", "c1"), counter(&calls, nil))
	querycache.Fetch(ctx, c, "u1", querycache.K("sessions", "c2"), counter(&calls, nil))
	querycache.Fetch(ctx, c, "u1", querycache.K("courses"), counter(&calls, nil))

	c.Invalidate("u1", "sessions")
	keys := c.Keys("u1")
	if len(keys) != 1 || keys[0].Collection != "courses" {
		t.Errorf("keys after invalidate = %v", keys)
	}
}

func TestFetch_ErrorsAreNotCached(t *testing.T) {
	c := querycache.New(time.Minute, nil)
	ctx := context.Background()
	boom := errors.New("boom")
	calls := 0
	fail := func(context.Context) (int, error) { calls++; return 0, boom }

	for i := 0; i < 2; i++ {
		if _, err := querycache.Fetch(ctx, c, "u1", querycache.K("stats"), fail); !errors.Is(err, boom) {
			t.Fatalf("err = %v", err)
		}
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestFetch_StaleResponseDoesNotOverwrite(t *testing.T) {
	c := querycache.New(time.Minute, nil)
	ctx := context.Background()
	key := querycache.K("users")

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan []string)

	go func() {
		v, _ := querycache.Fetch(ctx, c, "u1", key, func(context.Context) ([]string, error) {
			close(started)
			<-release
			return []string{"stale"}, nil
		})
		done <- v
	}()

	<-started
	c.Invalidate("u1", "users")
	close(release)

	if got := <-done; got[0] != "stale" {
		t.Errorf("first caller got %v, want its own result", got)
	}
	if n := len(c.Keys("u1")); n != 0 {
		t.Fatalf("stale result was cached (%d keys)", n)
	}

	got, _ := querycache.Fetch(ctx, c, "u1", key, func(context.Context) ([]string, error) {
		return []string{"fresh"}, nil
	})
	if got[0] != "fresh" {
		t.Errorf("got %v, want fresh", got)
	}
}

func TestFetch_CollapsesConcurrentCalls(t *testing.T) {
	c := querycache.New(time.Minute, nil)
	ctx := context.Background()
	var calls int32
	gate := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			querycache.Fetch(ctx, c, "u1", querycache.K("courses"), func(context.Context) ([]string, error) {
				atomic.AddInt32(&calls, 1)
				<-gate
				return []string{"x"}, nil
			})
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	if calls < 1 || calls > 5 {
		t.Fatalf("calls = %d", calls)
	}
	if calls != 1 {
		t.Logf("singleflight collapsed %d callers into %d fetches", 5, calls)
	}
}

func TestSweep_RemovesExpired(t *testing.T) {
	c := querycache.New(time.Minute, nil)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.SetClock(func() time.Time { return now })
	ctx := context.Background()
	var calls int32

	querycache.Fetch(ctx, c, "u1", querycache.K("courses"), counter(&calls, nil))
	now = now.Add(30 * time.Second)
	querycache.Fetch(ctx, c, "u1", querycache.K("users"), counter(&calls, nil))

	now = now.Add(45 * time.Second)
	if removed := c.Sweep(); removed != 1 {
		t.Errorf("Sweep removed %d, want 1", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}

	querycache.Fetch(ctx, c, "u1", querycache.K("courses"), counter(&calls, nil))
	if calls != 3 {
		t.Errorf("expired entry served from cache (calls=%d)", calls)
	}
}

func TestZeroTTL_DisablesStorage(t *testing.T) {
	c := querycache.New(0, nil)
	var calls int32
	for i := 0; i < 2; i++ {
		querycache.Fetch(context.Background(), c, "u1", querycache.K("x"), counter(&calls, nil))
	}
	if calls != 2 || c.Len() != 0 {
		t.Errorf("calls=%d len=%d", calls, c.Len())
	}
}

func TestFetch_CallerCancelDoesNotFailJoinedCallers(t *testing.T) {
	c := querycache.New(time.Minute, nil)
	key := querycache.K("bookings")

	started := make(chan struct{})
	gate := make(chan struct{})
	var once sync.Once
	fetch := func(ctx context.Context) ([]string, error) {
		once.Do(func() { close(started) })
		<-gate
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []string{"b-1"}, nil
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := querycache.Fetch(ctxA, c, "u1", key, fetch)
		errA <- err
	}()
	<-started

	type result struct {
		v   []string
		err error
	}
	resB := make(chan result, 1)
	go func() {
		v, err := querycache.Fetch(context.Background(), c, "u1", key, fetch)
		resB <- result{v, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	if err := <-errA; !errors.Is(err, context.Canceled) {
		t.Fatalf("first caller err = %v, want context.Canceled", err)
	}

	close(gate)
	got := <-resB
	if got.err != nil || len(got.v) != 1 || got.v[0] != "b-1" {
		t.Fatalf("second caller = %v, %v; want [b-1], nil", got.v, got.err)
	}
	if len(c.Keys("u1")) != 1 {
		t.Errorf("shared result not cached: %v", c.Keys("u1"))
	}
}

func TestFetch_SharedFetchHasOwnDeadline(t *testing.T) {
	c := querycache.New(time.Minute, nil)
	var hasDeadline bool
	_, err := querycache.Fetch(context.Background(), c, "u1", querycache.K("users"), func(ctx context.Context) (int, error) {
		_, hasDeadline = ctx.Deadline()
		return 1, nil
	})
	if err != nil || !hasDeadline {
		t.Errorf("err=%v deadline=%v; shared fetch needs a deadline", err, hasDeadline)
	}
}

func TestFetch_TypeMismatchIsAnError(t *testing.T) {
	c := querycache.New(time.Minute, nil)
	key := querycache.K("courses")

	started := make(chan struct{})
	gate := make(chan struct{})
	go querycache.Fetch(context.Background(), c, "u1", key, func(context.Context) ([]string, error) {
		close(started)
		<-gate
		return []string{"x"}, nil
	})
	<-started
	time.AfterFunc(50*time.Millisecond, func() { close(gate) })

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Fetch panicked: %v", r)
		}
	}()
	errOwnFetch := errors.New("ran its own fetch")
	_, err := querycache.Fetch(context.Background(), c, "u1", key, func(context.Context) (int, error) {
		return 0, errOwnFetch
	})
	if err == nil || errors.Is(err, errOwnFetch) {
		t.Fatalf("err = %v, want a type mismatch from the shared fetch", err)
	}
}

func TestInvalidateAll_DiscardsInFlightUncachedFetch(t *testing.T) {
	c := querycache.New(time.Minute, nil)
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		querycache.Fetch(context.Background(), c, "u1", querycache.K("students"), func(context.Context) ([]string, error) {
			close(started)
			<-release
			return []string{"s"}, nil
		})
		close(done)
	}()

	<-started
	c.InvalidateAll("u1")
	close(release)
	<-done

	if n := len(c.Keys("u1")); n != 0 {
		t.Errorf("fetch finished after sign-out was cached (%d keys)", n)
	}
}
