package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/foodie/internal/domain/types"
	"github.com/okian/foodie/pkg/metrics"
)

// HealthHandler handles liveness, readiness and metrics requests.
type HealthHandler struct {
	readiness Readiness
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(readiness Readiness) *HealthHandler {
	return &HealthHandler{readiness: readiness}
}

// HandleHealth handles GET /healthz. The process is alive if it answers.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, types.Status{Status: "ok"})
}

// HandleReady handles GET /readyz: 200 when the store answers a ping.
func (h *HealthHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	if err := h.readiness.Ready(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, msgNotReady)
		return
	}
	writeJSON(w, http.StatusOK, types.Status{Status: "ready"})
}

// MetricsHandler serves our custom metrics registry.
func (h *HealthHandler) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
