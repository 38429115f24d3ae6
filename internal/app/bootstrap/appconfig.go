// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// The console keeps no domain data of its own. Everything it shows comes
// from the platform API at APIBaseURL; MongoDB only backs the audit log.
type AppConfig struct {
	// Platform API
	APIBaseURL string // e.g. https://api.coursehub.example/api

	// Session management configuration
	SessionKey    string        // Secret for deriving cookie signing/encryption keys
	SessionName   string        // Cookie name for sessions (default: coursehub-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// Query cache
	CacheTTL           time.Duration // Freshness window for cached collections
	CacheSweepSchedule string        // Cron spec for the expired-entry sweep

	// Timeouts applied to API calls
	TimeoutAPI    time.Duration
	TimeoutExport time.Duration

	// Login throttling
	LoginRate  float64 // attempts per minute
	LoginBurst int

	// Audit logging destinations ("all", "db", "log", "off")
	AuditLogAuth  string
	AuditLogAdmin string

	// Optional MongoDB for audit persistence
	MongoURI      string // blank disables persistence
	MongoDatabase string
}
