// Package timeouts provides centralized timeout values for handler operations.
//
// These timeouts bound calls to the platform API made while serving a
// request. The request context is always the parent, so a browser that
// disconnects cancels the call as well.
//
// Timeouts can be configured at startup using Configure(). If not configured,
// sensible defaults are used.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks against the API
//   - API: list fetches, single reads, and mutations
//   - Export: CSV/PDF exports, backup create/download/restore
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultAPI    = 10 * time.Second
	DefaultExport = 2 * time.Minute
)

var mu sync.RWMutex

var (
	ping   = DefaultPing
	apiT   = DefaultAPI
	export = DefaultExport
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// API returns the timeout for ordinary API calls.
func API() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return apiT
}

// Export returns the timeout for downloads, uploads, and backup jobs.
func Export() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return export
}

// Config holds timeout configuration values.
// Zero values are ignored (defaults are kept).
type Config struct {
	Ping   time.Duration
	API    time.Duration
	Export time.Duration
}

// Configure sets custom timeout values. Zero values in the config are ignored,
// keeping the current (or default) values. Call it during startup before
// handlers are registered.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.API > 0 {
		apiT = cfg.API
	}
	if cfg.Export > 0 {
		export = cfg.Export
	}
}

// Reset restores all timeouts to their default values.
// Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	apiT = DefaultAPI
	export = DefaultExport
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, API: apiT, Export: export}
}

// WithTimeout creates a context with timeout and returns a cancel function that
// logs a warning if the context was canceled due to deadline exceeded.
//
// Example:
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Export(), h.Log, "bookings export")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
