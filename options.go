package venuemap

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/venuemap/internal/sources"
	"github.com/agentstation/venuemap/internal/store"
	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/logging"
	"github.com/agentstation/venuemap/pkg/reconciler"
	"github.com/agentstation/venuemap/pkg/targets"
	"github.com/agentstation/venuemap/pkg/venues"
)

// options holds the client configuration.
type options struct {
	store    store.Store
	source   sources.Source
	targets  *targets.Config
	resolver *reconciler.Resolver

	autoSyncEnabled  bool
	autoSyncInterval time.Duration

	now    func() time.Time
	logger *zerolog.Logger
}

// Option configures a Client.
type Option func(*options) error

func defaults() *options {
	return &options{
		targets:          targets.Default(),
		autoSyncEnabled:  false,
		autoSyncInterval: constants.DefaultSyncInterval,
		now:              time.Now,
		logger:           logging.Default(),
	}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithStore sets the snapshot store. Without one the client keeps
// snapshots in memory.
func WithStore(s store.Store) Option {
	return func(o *options) error {
		if s == nil {
			return errors.NewValidationError("store", nil, "cannot be nil")
		}
		o.store = s
		return nil
	}
}

// WithSource sets the provider queried by Sync.
func WithSource(src sources.Source) Option {
	return func(o *options) error {
		if src == nil {
			return errors.NewValidationError("source", nil, "cannot be nil")
		}
		o.source = src
		return nil
	}
}

// WithTargets sets the venues, location and palette.
func WithTargets(cfg *targets.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return errors.NewValidationError("targets", nil, "cannot be nil")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		o.targets = cfg
		return nil
	}
}

// WithResolver replaces the resolver built from the targets.
func WithResolver(r *reconciler.Resolver) Option {
	return func(o *options) error {
		o.resolver = r
		return nil
	}
}

// WithAutoSync configures whether syncs run in the background.
func WithAutoSync(enabled bool) Option {
	return func(o *options) error {
		o.autoSyncEnabled = enabled
		return nil
	}
}

// WithAutoSyncInterval configures how often background syncs run.
func WithAutoSyncInterval(interval time.Duration) Option {
	return func(o *options) error {
		if interval <= 0 {
			return errors.NewValidationError("autoSyncInterval", interval, "must be positive")
		}
		o.autoSyncInterval = interval
		return nil
	}
}

// WithClock sets the time source used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(o *options) error {
		if now == nil {
			return errors.NewValidationError("clock", nil, "cannot be nil")
		}
		o.now = now
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	}
}

// SyncOption configures a single Sync call.
type SyncOption func(*syncOptions)

type syncOptions struct {
	targets venues.Targets
}

// WithSyncTargets queries the given venues instead of the configured ones.
func WithSyncTargets(t venues.Targets) SyncOption {
	return func(o *syncOptions) {
		o.targets = t
	}
}
