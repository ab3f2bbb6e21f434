// Package app provides the application context and dependency management
// for the venuemap CLI: configuration, logging and the lazily opened
// client shared by every command.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/venuemap"
	"github.com/agentstation/venuemap/cmd/application"
	"github.com/agentstation/venuemap/internal/sources"
	"github.com/agentstation/venuemap/internal/sources/gemini"
	"github.com/agentstation/venuemap/internal/store"
	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/targets"
	"github.com/agentstation/venuemap/pkg/venues"
)

// Compile-time interface check.
var _ application.Application = (*App)(nil)

// App represents the venuemap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Lazily initialized, shared by commands
	mu      sync.Mutex
	client  venuemap.Client
	targets *targets.Config
}

// New creates a new App with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig(getEnvOrDefault("VENUEMAP_CONFIG", ""))
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Targets loads the market definition once.
func (a *App) Targets() (*targets.Config, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loadTargets()
}

// loadTargets is Targets without locking. Callers hold a.mu.
func (a *App) loadTargets() (*targets.Config, error) {
	if a.targets != nil {
		return a.targets, nil
	}
	if a.config.TargetsFile == "" {
		a.targets = targets.Default()
		return a.targets, nil
	}
	cfg, err := targets.Load(a.config.TargetsFile)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().
		Str("file", a.config.TargetsFile).
		Int("venues", len(cfg.Venues)).
		Msg("Loaded targets")
	a.targets = cfg
	return cfg, nil
}

// Source builds the Gemini provider from the configuration.
func (a *App) Source() (sources.Source, error) {
	a.mu.Lock()
	tgts, err := a.loadTargets()
	a.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return a.newSource(tgts)
}

func (a *App) newSource(tgts *targets.Config) (sources.Source, error) {
	return gemini.New(gemini.Config{
		APIKey:      a.config.GeminiAPIKey,
		Model:       a.config.GeminiModel,
		Temperature: float32(a.config.Temperature),
		Location:    tgts.Location,
		LatLng:      tgts.LatLng,
		Project:     a.config.GCPProject,
		Region:      a.config.GCPRegion,
		Logger:      a.logger,
	})
}

// Client returns the shared client, creating it on first use.
func (a *App) Client() (venuemap.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}
	c, err := a.newClient()
	if err != nil {
		return nil, err
	}
	a.client = c
	return c, nil
}

// ClientWithOptions returns a new client on the configured store with
// opts applied after the defaults.
func (a *App) ClientWithOptions(opts ...venuemap.Option) (venuemap.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.newClient(opts...)
}

// newClient opens the store and assembles a client. Callers hold a.mu.
func (a *App) newClient(opts ...venuemap.Option) (venuemap.Client, error) {
	tgts, err := a.loadTargets()
	if err != nil {
		return nil, err
	}

	src, err := a.newSource(tgts)
	if err != nil {
		// Read-only commands work without provider credentials; a sync
		// reports the credential error instead.
		a.logger.Debug().Err(err).Msg("Model provider unavailable")
		src = unavailable(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.StoreConnectTimeout)
	defer cancel()
	st, err := store.Open(ctx, a.config.DatabaseURL, store.WithHistoryLimit(a.config.HistoryLimit))
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("database", store.Redact(a.config.DatabaseURL)).Msg("Opened snapshot store")

	base := []venuemap.Option{
		venuemap.WithStore(st),
		venuemap.WithSource(src),
		venuemap.WithTargets(tgts),
		venuemap.WithAutoSyncInterval(a.config.AutoSyncInterval),
		venuemap.WithLogger(a.logger),
	}
	c, err := venuemap.New(append(base, opts...)...)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return c, nil
}

// unavailable is a source that fails every query with err.
func unavailable(err error) sources.Source {
	return sources.Func{
		Name: gemini.ID,
		Fn: func(context.Context, venues.Targets) (venues.Response, error) {
			return venues.Response{}, err
		},
	}
}

// Shutdown stops background syncs and closes the store.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	c := a.client
	a.client = nil
	a.mu.Unlock()

	if c == nil {
		return nil
	}
	if err := c.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Failed to close client during shutdown")
		return err
	}
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client (useful for testing).
func WithClient(c venuemap.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
