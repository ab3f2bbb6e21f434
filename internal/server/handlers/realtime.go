package handlers

import (
	"net/http"
)

// HandleWebSocket handles WebSocket connections at /api/updates/ws.
// @Summary WebSocket updates
// @Description WebSocket connection for sync events
// @Tags updates
// @Success 101 "Switching Protocols"
// @Router /api/updates/ws [get].
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	h.wsHub.ServeHTTP(w, r)
}

// HandleSSE handles Server-Sent Events at /api/updates/stream.
// @Summary SSE updates stream
// @Description Server-Sent Events stream of sync events
// @Tags updates
// @Produce text/event-stream
// @Success 200 "Event stream"
// @Router /api/updates/stream [get].
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	h.sseBroadcaster.ServeHTTP(w, r)
}
