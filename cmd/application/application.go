// Package application provides the application interface for venuemap
// commands and the HTTP server.
//
// Commands accept the interface rather than the concrete App so they can be
// tested with Mock:
//
//	mock := &application.Mock{
//	    ClientFunc: func() (venuemap.Client, error) {
//	        return testClient, nil
//	    },
//	}
//	cmd := market.NewLatestCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/venuemap"
	"github.com/agentstation/venuemap/internal/sources"
	"github.com/agentstation/venuemap/pkg/targets"
)

// Application provides what commands need from the running program.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Client returns the shared venuemap client, opening the store and
	// provider on first use.
	Client() (venuemap.Client, error)

	// ClientWithOptions returns a new client on the configured store with
	// opts applied after the defaults. The caller closes it.
	ClientWithOptions(opts ...venuemap.Option) (venuemap.Client, error)

	// Source returns the configured model provider.
	Source() (sources.Source, error)

	// Targets returns the market definition: the targets file when one is
	// configured, the built-in market otherwise.
	Targets() (*targets.Config, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
