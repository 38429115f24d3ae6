// Package querycache keeps fetched API collections in memory, keyed by
// user scope and collection name, until they expire or a mutation
// invalidates them.
//
// Invalidate bumps a per-(scope, collection) generation counter. A fetch
// that started before the bump still returns its result to its own caller
// but never stores it, so a slow stale response cannot overwrite data
// fetched after the mutation. InvalidateAll bumps a per-scope epoch with
// the same effect for every collection of that scope.
//
// A shared fetch runs detached from the request that started it, under its
// own API deadline. Each caller waits on its own context, so one browser
// going away does not fail the others waiting on the same key.
package querycache

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/metrics"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"golang.org/x/sync/singleflight"
)

// Key names one cached query. Params distinguishes variants of the same
// collection (for example a course id for a session list).
type Key struct {
	Collection string
	Params     string
}

// K is shorthand for a Key with optional params joined by "|".
func K(collection string, params ...string) Key {
	return Key{Collection: collection, Params: strings.Join(params, "|")}
}

func (k Key) String() string {
	if k.Params == "" {
		return k.Collection
	}
	return k.Collection + "?" + k.Params
}

type entry struct {
	value   any
	expires time.Time
}

type genKey struct {
	scope      string
	collection string
}

// stamp is the (scope epoch, collection generation) a fetch started under.
type stamp struct {
	epoch uint64
	gen   uint64
}

// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]map[Key]entry // scope -> key -> entry
	gens    map[genKey]uint64
	epochs  map[string]uint64
	group   singleflight.Group
	metrics *metrics.Set
}

// New creates a cache whose entries live for ttl. A ttl <= 0 disables
// storage: every Fetch goes to the API.
func New(ttl time.Duration, m *metrics.Set) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]map[Key]entry),
		gens:    make(map[genKey]uint64),
		epochs:  make(map[string]uint64),
		metrics: m,
	}
}

// SetClock replaces the time source. Tests only.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// Fetch returns the cached value for (scope, key) or calls fetch and caches
// its result. Concurrent callers asking for the same key share one fetch.
// Errors are never cached. A caller whose ctx ends first gets ctx.Err()
// while the shared fetch carries on for the others.
func Fetch[T any](ctx context.Context, c *Cache, scope string, key Key, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if v, ok := c.lookup(scope, key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}

	st := c.stamp(scope, key.Collection)
	sfKey := scope + "\x00" + key.String() + "\x00" +
		strconv.FormatUint(st.epoch, 10) + "." + strconv.FormatUint(st.gen, 10)

	ch := c.group.DoChan(sfKey, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.API())
		defer cancel()
		val, err := fetch(fctx)
		if err != nil {
			return nil, err
		}
		c.store(scope, key, st, val)
		return val, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		t, ok := res.Val.(T)
		if !ok {
			return zero, fmt.Errorf("querycache: %s holds %T, want %T", key, res.Val, zero)
		}
		return t, nil
	}
}

func (c *Cache) lookup(scope string, key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[scope][key]
	if ok && c.now().Before(e.expires) {
		if c.metrics != nil {
			c.metrics.CacheHits.Inc()
		}
		return e.value, true
	}
	if c.metrics != nil {
		c.metrics.CacheMisses.Inc()
	}
	return nil, false
}

func (c *Cache) stamp(scope, collection string) stamp {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stampLocked(scope, collection)
}

func (c *Cache) stampLocked(scope, collection string) stamp {
	return stamp{epoch: c.epochs[scope], gen: c.gens[genKey{scope, collection}]}
}

// store keeps val only if no invalidation happened since the fetch began.
func (c *Cache) store(scope string, key Key, st stamp, val any) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stampLocked(scope, key.Collection) != st {
		return
	}
	m := c.entries[scope]
	if m == nil {
		m = make(map[Key]entry)
		c.entries[scope] = m
	}
	m[key] = entry{value: val, expires: c.now().Add(c.ttl)}
	c.updateGaugeLocked()
}

// Invalidate drops every entry of collection for scope (all params) and
// marks in-flight fetches for it as stale.
func (c *Cache) Invalidate(scope, collection string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[genKey{scope, collection}]++
	for k := range c.entries[scope] {
		if k.Collection == collection {
			delete(c.entries[scope], k)
		}
	}
	if len(c.entries[scope]) == 0 {
		delete(c.entries, scope)
	}
	if c.metrics != nil {
		c.metrics.CacheInvalidations.WithLabelValues(collection).Inc()
	}
	c.updateGaugeLocked()
}

// InvalidateAll drops all of a scope's entries, e.g. on sign-out, and marks
// every in-flight fetch of that scope as stale, cached or not.
func (c *Cache) InvalidateAll(scope string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epochs[scope]++
	delete(c.entries, scope)
	c.updateGaugeLocked()
}

// Sweep removes expired entries and returns how many were removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	removed := 0
	for scope, m := range c.entries {
		for k, e := range m {
			if !now.Before(e.expires) {
				delete(m, k)
				removed++
			}
		}
		if len(m) == 0 {
			delete(c.entries, scope)
		}
	}
	c.updateGaugeLocked()
	return removed
}

// Len returns the number of live and expired-but-unswept entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lenLocked()
}

// Keys lists a scope's cached keys in sorted order.
func (c *Cache) Keys(scope string) []Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Key, 0, len(c.entries[scope]))
	for k := range c.entries[scope] {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func (c *Cache) lenLocked() int {
	n := 0
	for _, m := range c.entries {
		n += len(m)
	}
	return n
}

func (c *Cache) updateGaugeLocked() {
	if c.metrics != nil {
		c.metrics.CacheEntries.Set(float64(c.lenLocked()))
	}
}
