// Package handlers provides HTTP request handlers for the venuemap API.
package handlers

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/venuemap"
	"github.com/agentstation/venuemap/internal/server/cache"
	"github.com/agentstation/venuemap/internal/server/events"
	"github.com/agentstation/venuemap/internal/server/sse"
	ws "github.com/agentstation/venuemap/internal/server/websocket"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	client         venuemap.Client
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	logger         *zerolog.Logger
	reportTitle    string
	startTime      time.Time
}

// New creates a new Handlers instance.
func New(
	client venuemap.Client,
	cache *cache.Cache,
	broker *events.Broker,
	wsHub *ws.Hub,
	sseBroadcaster *sse.Broadcaster,
	logger *zerolog.Logger,
	reportTitle string,
	startTime time.Time,
) *Handlers {
	return &Handlers{
		client:         client,
		cache:          cache,
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		logger:         logger,
		reportTitle:    reportTitle,
		startTime:      startTime,
	}
}
