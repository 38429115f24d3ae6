// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	auditlogfeature "github.com/dalemusser/coursehub/internal/app/features/auditlog"
	bookingsfeature "github.com/dalemusser/coursehub/internal/app/features/bookings"
	coursesfeature "github.com/dalemusser/coursehub/internal/app/features/courses"
	coursesessionsfeature "github.com/dalemusser/coursehub/internal/app/features/coursesessions"
	dashboardfeature "github.com/dalemusser/coursehub/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/coursehub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/coursehub/internal/app/features/health"
	loginfeature "github.com/dalemusser/coursehub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/coursehub/internal/app/features/logout"
	mycoursesfeature "github.com/dalemusser/coursehub/internal/app/features/mycourses"
	reportsfeature "github.com/dalemusser/coursehub/internal/app/features/reports"
	settingsfeature "github.com/dalemusser/coursehub/internal/app/features/settings"
	"github.com/dalemusser/coursehub/internal/app/features/shared"
	studentsfeature "github.com/dalemusser/coursehub/internal/app/features/students"
	userinfofeature "github.com/dalemusser/coursehub/internal/app/features/userinfo"
	usersfeature "github.com/dalemusser/coursehub/internal/app/features/users"
	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/app/system/mutation"
	"github.com/dalemusser/coursehub/internal/app/system/notify"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend connections, schema setup,
// and the Startup hook have completed.
//
// CourseHub boots the template engine, applies session, flash, and CSRF
// middleware, and mounts the admin and instructor consoles. Every console
// feature shares one API client, query cache, and mutation runner through
// shared.Base.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain,
		appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	sessionMgr.SetAudit(deps.AuditLog)

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// A 401 from the API anywhere in the console ends the session.
	errLog := errorsfeature.NewErrorLogger(logger)
	errLog.Expire = sessionMgr.Expire

	csrfMW, err := csrfMiddleware(appCfg, secure, logger)
	if err != nil {
		return nil, err
	}

	flashes := notify.New(sessionMgr.Store(), appCfg.SessionName+"-flash", logger)
	runner := mutation.NewRunner(deps.Cache, deps.AuditLog, deps.Metrics, logger)
	base := shared.NewBase(deps.API, deps.Cache, runner, errLog, logger)

	r := chi.NewRouter()

	// Health and metrics sit outside the session stack.
	healthHandler := healthfeature.NewHandler(deps.API, deps.AuditMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", deps.Metrics.Handler())

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	r.Group(func(app chi.Router) {
		// Loads SessionUser into context if logged in; available via auth.CurrentUser(r).
		app.Use(sessionMgr.LoadSessionUser)
		app.Use(flashes.Middleware)
		app.Use(csrfMW)

		app.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		})

		// Authentication
		loginHandler := loginfeature.NewHandler(deps.API, sessionMgr, deps.LoginLimiter, deps.AuditLog, errLog, logger)
		app.Mount("/login", loginfeature.Routes(loginHandler))

		userinfofeature.MountRoutes(app, userinfofeature.NewHandler())

		logoutHandler := logoutfeature.NewHandler(sessionMgr, deps.AuditLog, deps.Cache, logger)
		app.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

		// Error pages
		errorsHandler := errorsfeature.NewHandler()
		app.Get("/forbidden", errorsHandler.Forbidden)
		app.NotFound(errorsHandler.NotFound)

		// Role-based dashboards
		dashboardHandler := dashboardfeature.NewHandler(base)
		app.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

		// Admin console
		usersHandler := usersfeature.NewHandler(base)
		app.Mount("/users", usersfeature.Routes(usersHandler, sessionMgr))

		coursesHandler := coursesfeature.NewHandler(base)
		app.Mount("/courses", coursesfeature.Routes(coursesHandler, sessionMgr))

		bookingsHandler := bookingsfeature.NewHandler(base)
		app.Mount("/bookings", bookingsfeature.Routes(bookingsHandler, sessionMgr))

		reportsHandler := reportsfeature.NewHandler(base)
		app.Mount("/reports", reportsfeature.Routes(reportsHandler, sessionMgr))

		settingsHandler := settingsfeature.NewHandler(base)
		app.Route("/settings", func(sr chi.Router) {
			sr.Use(sessionMgr.RequireSignedIn)
			sr.Use(sessionMgr.RequireRole(models.RoleAdmin))
			settingsHandler.MountRoutes(sr)
		})

		auditHandler := auditlogfeature.NewHandler(deps.AuditStore, errLog, logger)
		app.Mount("/audit", auditlogfeature.Routes(auditHandler, sessionMgr))

		// Instructor console. Sessions are nested under a course, so they
		// are mounted first and chi prefers the longer pattern.
		sessionsHandler := coursesessionsfeature.NewHandler(base)
		app.Mount("/instructor/courses/{courseID}/sessions", coursesessionsfeature.Routes(sessionsHandler, sessionMgr))

		myCoursesHandler := mycoursesfeature.NewHandler(base)
		app.Mount("/instructor/courses", mycoursesfeature.Routes(myCoursesHandler, sessionMgr))

		studentsHandler := studentsfeature.NewHandler(base)
		app.Mount("/instructor/students", studentsfeature.Routes(studentsHandler, sessionMgr))

		app.Mount("/instructor/bookings", bookingsfeature.InstructorRoutes(bookingsHandler, sessionMgr))
	})

	return r, nil
}

// csrfMiddleware protects every form post. Outside production the console
// is served over plain HTTP, which gorilla/csrf must be told about or it
// rejects the missing TLS referer.
func csrfMiddleware(appCfg AppConfig, secure bool, logger *zap.Logger) (func(http.Handler) http.Handler, error) {
	key, err := auth.CSRFKey(appCfg.SessionKey)
	if err != nil {
		return nil, err
	}
	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.CookieName(appCfg.SessionName+"-csrf"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("csrf check failed",
				zap.String("path", r.URL.Path),
				zap.Error(csrf.FailureReason(r)))
			errorsfeature.RenderForbidden(w, r, "Your form expired. Reload the page and try again.", "/dashboard")
		})),
	)
	if secure {
		return protect, nil
	}
	return func(next http.Handler) http.Handler {
		inner := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inner.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}, nil
}
