package server

import (
	"net/http"

	"github.com/agentstation/venuemap/internal/server/handlers"
	"github.com/agentstation/venuemap/internal/server/middleware"
	"github.com/agentstation/venuemap/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(
		s.client,
		s.cache,
		s.broker,
		s.wsHub,
		s.sseBroadcaster,
		s.logger,
		s.config.ReportTitle,
		s.startTime,
	)

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Public health endpoints (no auth required)
	mux.HandleFunc("/health", h.HandleLiveness)
	mux.HandleFunc(prefix+"/health", only(http.MethodGet, h.HandleHealth))
	mux.HandleFunc(prefix+"/ready", only(http.MethodGet, h.HandleReady))

	// Market endpoints
	mux.HandleFunc(prefix+"/market", only(http.MethodGet, h.HandleMarket))
	mux.HandleFunc(prefix+"/analytics", only(http.MethodGet, h.HandleAnalytics))
	mux.HandleFunc(prefix+"/report", only(http.MethodGet, h.HandleReport))
	mux.HandleFunc(prefix+"/sync", only(http.MethodPost, h.HandleSync))
	mux.HandleFunc(prefix+"/stats", only(http.MethodGet, h.HandleStats))

	// Real-time endpoints
	mux.HandleFunc(prefix+"/updates/ws", h.HandleWebSocket)
	mux.HandleFunc(prefix+"/updates/stream", h.HandleSSE)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Not found", "No route for "+r.URL.Path)
	})
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	// Rate limiting (if enabled)
	if s.rateLimiter != nil {
		handler = middleware.RateLimit(s.rateLimiter)(handler)
	}

	// Authentication (if enabled)
	if cfg.AuthEnabled {
		authConfig := middleware.DefaultAuthConfig()
		authConfig.APIKey = cfg.APIKey
		if cfg.AuthHeader != "" {
			authConfig.HeaderName = cfg.AuthHeader
		}
		authConfig.PublicPaths = []string{"/health", cfg.PathPrefix + "/health"}
		handler = middleware.Auth(authConfig, s.logger)(handler)
	}

	// CORS (if enabled)
	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		corsConfig.AllowedOrigins = cfg.CORSOrigins
		handler = middleware.CORS(corsConfig)(handler)
	}

	// Logging and recovery (always enabled)
	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	)(handler)
}

// only restricts a handler to one method.
func only(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			response.MethodNotAllowed(w, r.Method)
			return
		}
		next(w, r)
	}
}
