package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/venuemap"
	"github.com/agentstation/venuemap/cmd/application"
	"github.com/agentstation/venuemap/internal/server/cache"
	"github.com/agentstation/venuemap/internal/server/events"
	"github.com/agentstation/venuemap/internal/server/middleware"
	"github.com/agentstation/venuemap/internal/server/sse"
	ws "github.com/agentstation/venuemap/internal/server/websocket"
	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/venues"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	client         venuemap.Client
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	rateLimiter    *middleware.RateLimiter
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	startTime      time.Time
}

// New creates a server for the application's client.
func New(app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	client, err := app.Client()
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.NewConfigError("server", "application has no client", nil)
	}

	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = constants.CacheTTL
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = "/api"
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)
	broker.Subscribe(wsHub)
	broker.Subscribe(sseBroadcaster)

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		client:         client,
		cache:          cache.New(cfg.CacheTTL, constants.CacheCleanupInterval),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		logger:         logger,
		config:         cfg,
		ctx:            ctx,
		cancel:         cancel,
		startTime:      time.Now(),
	}
	if cfg.RateLimit > 0 {
		s.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}

	s.connectHooks()
	return s, nil
}

// connectHooks turns client sync hooks into cache invalidation and
// broker events.
func (s *Server) connectHooks() {
	s.client.OnSyncStarted(func(syncID string) {
		s.broker.Publish(events.SyncStarted, map[string]any{"syncId": syncID})
	})

	s.client.OnSnapshot(func(snap *venues.Snapshot) {
		s.cache.Clear()
		s.broker.Publish(events.SyncCompleted, map[string]any{
			"snapshotId": snap.ID(),
			"timestamp":  snap.Timestamp(),
			"count":      snap.Len(),
		})
		s.logger.Debug().Str("snapshot_id", snap.ID()).Msg("Snapshot event published")
	})

	s.client.OnSyncFailed(func(err error) {
		s.broker.Publish(events.SyncFailed, map[string]any{"error": err.Error()})
	})
}

// Start starts background services (broker, WebSocket hub, SSE
// broadcaster, rate limiter eviction).
func (s *Server) Start() {
	go s.broker.Run(s.ctx)
	go s.wsHub.Run(s.ctx)
	go s.sseBroadcaster.Run(s.ctx)
	if s.rateLimiter != nil {
		go s.rateLimiter.Run(s.ctx)
	}
	s.logger.Debug().Msg("Background services started")
}

// Handler returns the routes wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// HTTPServer returns an http.Server for the configured address.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.ReadTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
	}
}

// Shutdown stops background services and ends open event streams.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	s.cancel()
	return nil
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Broker returns the event broker.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
