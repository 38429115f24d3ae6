// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/api"
	"go.uber.org/zap"
)

// ErrorLogger logs a failure with request context and renders the matching
// error page in one call.
type ErrorLogger struct {
	Log *zap.Logger

	// Expire is called when the API rejects the session token. Bootstrap
	// points it at the session manager; when nil the unauthorized page is
	// shown instead.
	Expire func(w http.ResponseWriter, r *http.Request)
}

// NewErrorLogger creates an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{Log: logger}
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	f := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if err != nil {
		f = append(f, zap.Error(err))
		if code := api.StatusCode(err); code != 0 {
			f = append(f, zap.Int("api_status", code))
		}
	}
	return f
}

// LogServerError logs at error level and renders a 500 page.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Error(msg, e.fields(r, err)...)
	RenderServerError(w, r, userMsg, backURL)
}

// LogBadRequest logs at warn level and renders a 400 page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Warn(msg, e.fields(r, err)...)
	RenderBadRequest(w, r, userMsg, backURL)
}

// LogForbidden logs at warn level and renders a 403 page.
func (e *ErrorLogger) LogForbidden(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Warn(msg, e.fields(r, err)...)
	RenderForbidden(w, r, userMsg, backURL)
}

// HTMXLogServerError is LogServerError for htmx-aware endpoints.
func (e *ErrorLogger) HTMXLogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Error(msg, e.fields(r, err)...)
	HTMXServerError(w, r, userMsg, backURL)
}

// HTMXLogBadRequest is LogBadRequest for htmx-aware endpoints.
func (e *ErrorLogger) HTMXLogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Warn(msg, e.fields(r, err)...)
	HTMXBadRequest(w, r, userMsg, backURL)
}

// LogAPIError maps an API failure onto a response: a rejected token ends
// the session, 404 and 403 get their own pages, anything else is a 500
// carrying the server's message when it sent one.
func (e *ErrorLogger) LogAPIError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	switch {
	case api.IsUnauthorized(err):
		e.Log.Info(msg+": session rejected", e.fields(r, err)...)
		if e.Expire != nil {
			e.Expire(w, r)
			return
		}
		RenderUnauthorized(w, r, "")
	case api.IsNotFound(err):
		e.Log.Info(msg, e.fields(r, err)...)
		HTMXNotFound(w, r, api.Message(err, "Not found."), backURL)
	case api.StatusCode(err) == http.StatusForbidden:
		e.Log.Warn(msg, e.fields(r, err)...)
		HTMXForbidden(w, r, api.Message(err, "You don't have access to this."), backURL)
	default:
		e.HTMXLogServerError(w, r, msg, err, api.Message(err, userMsg), backURL)
	}
}
