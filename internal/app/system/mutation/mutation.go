// internal/app/system/mutation/mutation.go

// Package mutation runs create/update/delete/status actions against the
// platform API and applies the console's after-effects in one place:
// cache invalidation, the user-facing notification, the audit record, and
// metrics. Nothing is applied optimistically; the cache is only touched
// after the API confirms the change.
package mutation

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/dalemusser/coursehub/internal/app/system/auditlog"
	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/app/system/metrics"
	"github.com/dalemusser/coursehub/internal/app/system/notify"
	"go.uber.org/zap"
)

// ErrInFlight is returned when the same action on the same instance is
// already being submitted.
var ErrInFlight = errors.New("mutation: already in progress")

// State of one action instance.
type State int

const (
	Idle State = iota
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "idle"
}

// Invalidator drops cached collections for a scope.
type Invalidator interface {
	Invalidate(scope, collection string)
}

// Action describes one mutation.
type Action struct {
	Name       string   // audit/metrics name, e.g. "course.approve"
	Target     string   // collection the entity lives in, e.g. "courses"
	Instance   string   // entity id, or "new" for creates
	Scope      string   // cache scope (signed-in user id)
	Invalidate []string // collections to refetch after success
	Success    string   // shown on success
	Failure    string   // shown when the API gives no message

	// Timeout bounds the API call; zero means the ordinary API timeout.
	Timeout time.Duration

	Actor  auditlog.Actor
	Notify notify.Notifier
}

// Runner is safe for concurrent use.
type Runner struct {
	cache   Invalidator
	audit   *auditlog.Logger
	metrics *metrics.Set
	log     *zap.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewRunner creates a Runner. audit and m may be nil.
func NewRunner(cache Invalidator, audit *auditlog.Logger, m *metrics.Set, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cache:    cache,
		audit:    audit,
		metrics:  m,
		log:      logger,
		inflight: make(map[string]struct{}),
	}
}

// For fills the request-bound fields of an Action: the cache scope, the
// audit actor, and the request's notifier.
func For(r *http.Request, act Action) Action {
	if u, ok := auth.CurrentUser(r); ok {
		act.Scope = u.ID
		act.Actor = auditlog.ActorFrom(r, u.ID, u.Role)
	} else {
		act.Actor = auditlog.ActorFrom(r, "", "")
	}
	act.Notify = notify.From(r)
	return act
}

func (a Action) key() string {
	return a.Scope + "\x00" + a.Name + "\x00" + a.Instance
}

// State reports whether the action instance is currently submitting.
func (rn *Runner) State(act Action) State {
	rn.mu.Lock()
	defer rn.mu.Unlock()
	if _, busy := rn.inflight[act.key()]; busy {
		return Submitting
	}
	return Idle
}

// Run submits fn once. On success every collection in act.Invalidate is
// invalidated exactly once and one success notification is raised. On
// failure nothing is invalidated and one error notification carrying the
// API's message (or act.Failure) is raised. The returned error is fn's.
func (rn *Runner) Run(ctx context.Context, act Action, fn func(ctx context.Context) error) error {
	key := act.key()
	rn.mu.Lock()
	if _, busy := rn.inflight[key]; busy {
		rn.mu.Unlock()
		rn.count(act.Name, "in_flight")
		return ErrInFlight
	}
	rn.inflight[key] = struct{}{}
	rn.mu.Unlock()

	defer func() {
		rn.mu.Lock()
		delete(rn.inflight, key)
		rn.mu.Unlock()
	}()

	err := fn(ctx)
	if err != nil {
		msg := api.Message(err, act.Failure)
		rn.log.Info("mutation failed",
			zap.String("action", act.Name),
			zap.String("instance", act.Instance),
			zap.Int("status", api.StatusCode(err)),
			zap.Error(err))
		rn.audit.Mutation(ctx, act.Actor, act.Name, act.Target, act.Instance, false, msg)
		rn.count(act.Name, Failed.String())
		if act.Notify != nil {
			act.Notify.Notify(notify.Error, msg)
		}
		return err
	}

	for _, coll := range dedupe(act.Invalidate) {
		rn.cache.Invalidate(act.Scope, coll)
	}
	rn.audit.Mutation(ctx, act.Actor, act.Name, act.Target, act.Instance, true, "")
	rn.count(act.Name, Succeeded.String())
	if act.Notify != nil {
		act.Notify.Notify(notify.Success, act.Success)
	}
	return nil
}

func (rn *Runner) count(action, outcome string) {
	if rn.metrics != nil {
		rn.metrics.Mutations.WithLabelValues(action, outcome).Inc()
	}
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok || s == "" {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
