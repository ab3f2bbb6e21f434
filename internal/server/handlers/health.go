package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/venuemap/internal/server/response"
)

// HandleLiveness handles GET /health with a plain-text body for probes.
func (h *Handlers) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// HandleHealth handles GET /api/health.
// @Summary Health check
// @Description Health check endpoint (liveness probe)
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /api/health [get].
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "venuemap-api",
	})
}

// HandleReady handles GET /api/ready.
// @Summary Readiness check
// @Description Readiness check including snapshot store status
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Failure 503 {object} response.Response{error=response.Error}
// @Router /api/ready [get].
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	history, err := h.client.History(r.Context(), 1)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Snapshot store not ready")
		response.ServiceUnavailable(w, "Snapshot store not available")
		return
	}

	response.OK(w, map[string]any{
		"status":            "ready",
		"has_snapshots":     len(history) > 0,
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}

// HandleStats handles GET /api/stats.
// @Summary Server statistics
// @Description Cache, event and realtime client counters
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /api/stats [get].
func (h *Handlers) HandleStats(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"uptime_seconds":    int(time.Since(h.startTime).Seconds()),
		"cache":             h.cache.Stats(),
		"events":            h.broker.Stats(),
		"subscribers":       h.broker.SubscriberCount(),
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}
