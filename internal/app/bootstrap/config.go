// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/auditlog"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for CourseHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, session_name, etc.
//   - Environment variables: COURSEHUB_API_BASE_URL, COURSEHUB_SESSION_NAME, etc.
//   - Command-line flags: --api_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: "http://localhost:8081/api", Desc: "Base URL of the platform REST API"},

	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "coursehub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "12h", Desc: "Session cookie lifetime (e.g., 12h, 30m)"},

	// Query cache
	{Name: "cache_ttl", Default: "60s", Desc: "How long a fetched collection stays fresh"},
	{Name: "cache_sweep_schedule", Default: "@every 5m", Desc: "Cron schedule for sweeping expired cache entries"},

	// API timeouts
	{Name: "timeout_api", Default: "10s", Desc: "Timeout for ordinary API calls"},
	{Name: "timeout_export", Default: "2m", Desc: "Timeout for export, report, and backup downloads"},

	// Login throttling
	{Name: "login_rate", Default: 10, Desc: "Login attempts allowed per minute per IP and per email"},
	{Name: "login_burst", Default: 5, Desc: "Login attempts allowed in a burst"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Console mutation logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Optional audit persistence
	{Name: "mongo_uri", Default: "", Desc: "MongoDB URI for the audit log (blank disables persistence)"},
	{Name: "mongo_database", Default: "coursehub", Desc: "MongoDB database name for the audit log"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, COURSEHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "COURSEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL: appValues.String("api_base_url"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 12*time.Hour),

		CacheTTL:           appValues.Duration("cache_ttl", time.Minute),
		CacheSweepSchedule: appValues.String("cache_sweep_schedule"),

		TimeoutAPI:    appValues.Duration("timeout_api", 10*time.Second),
		TimeoutExport: appValues.Duration("timeout_export", 2*time.Minute),

		LoginRate:  float64(appValues.Int("login_rate")),
		LoginBurst: appValues.Int("login_burst"),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),

		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),
	}

	return coreCfg, appCfg, nil
}

var auditModes = map[string]bool{"all": true, "db": true, "log": true, "off": true}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The API base URL and session key are required; everything else has a
// usable default.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	u, err := url.Parse(appCfg.APIBaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("api_base_url must be an absolute http(s) URL, got %q", appCfg.APIBaseURL)
	}

	if appCfg.SessionKey == "" {
		return fmt.Errorf("session_key is required")
	}
	if coreCfg != nil && coreCfg.Env == "prod" {
		if appCfg.SessionKey == devSessionKey {
			return fmt.Errorf("session_key still has the development default; set COURSEHUB_SESSION_KEY")
		}
		if len(appCfg.SessionKey) < 32 {
			return fmt.Errorf("session_key must be at least 32 characters in production")
		}
	}

	if appCfg.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive")
	}
	if _, err := cron.ParseStandard(appCfg.CacheSweepSchedule); err != nil {
		return fmt.Errorf("invalid cache_sweep_schedule %q: %w", appCfg.CacheSweepSchedule, err)
	}
	if appCfg.LoginRate <= 0 || appCfg.LoginBurst <= 0 {
		return fmt.Errorf("login_rate and login_burst must be positive")
	}

	for key, mode := range map[string]string{"audit_log_auth": appCfg.AuditLogAuth, "audit_log_admin": appCfg.AuditLogAdmin} {
		if !auditModes[mode] {
			return fmt.Errorf("%s must be one of all, db, log, off; got %q", key, mode)
		}
	}

	if appCfg.MongoURI != "" {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	}

	return nil
}

// auditConfig maps the two audit switches onto the audit logger.
func (c AppConfig) auditConfig() auditlog.Config {
	return auditlog.Config{Auth: c.AuditLogAuth, Admin: c.AuditLogAdmin}
}
