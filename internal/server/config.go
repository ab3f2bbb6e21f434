package server

import (
	"time"

	"github.com/agentstation/venuemap/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// API settings
	PathPrefix string

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// Authentication settings
	AuthEnabled bool
	AuthHeader  string
	APIKey      string

	// Performance settings
	RateLimit int // Requests per minute per IP (0 to disable)
	CacheTTL  time.Duration

	// HTTP timeouts. There is no write timeout: event streams and syncs
	// outlive any fixed bound.
	ReadTimeout time.Duration
	IdleTimeout time.Duration

	// Report settings
	ReportTitle string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:        "localhost",
		Port:        8080,
		PathPrefix:  "/api",
		AuthHeader:  "X-API-Key",
		RateLimit:   100,
		CacheTTL:    constants.CacheTTL,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
		ReportTitle: "Market Report",
	}
}
