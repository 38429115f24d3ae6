package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	API   *api.Client
	Mongo *mongo.Client // audit store; nil when audit persistence is off
	Log   *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(client *api.Client, mongoClient *mongo.Client, logger *zap.Logger) *Handler {
	return &Handler{
		API:   client,
		Mongo: mongoClient,
		Log:   logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	API      string `json:"api"`
	Database string `json:"database,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "api":"reachable", "database":"connected" }
//
// When the API does not answer: 503 and
//
//	{ "status":"error", "api":"unreachable", "message":"Platform API unavailable", "error":"…"}
//
// The audit database is reported but never fails the check.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{Status: "ok", API: "reachable"}

	if h.Mongo != nil {
		if err := h.Mongo.Ping(ctx, readpref.Primary()); err != nil {
			h.Log.Warn("health-check: audit mongo ping failed", zap.Error(err))
			resp.Database = "disconnected"
		} else {
			resp.Database = "connected"
		}
	}

	if err := h.API.Ping(ctx); err != nil {
		h.Log.Error("health-check: api ping failed", zap.Error(err))
		resp.Status = "error"
		resp.API = "unreachable"
		resp.Message = "Platform API unavailable"
		resp.Error = err.Error()
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	_ = json.NewEncoder(w).Encode(resp)
}
