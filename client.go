package venuemap

import (
	"context"
	"sync"
	"time"

	"github.com/agentstation/venuemap/internal/sources"
	"github.com/agentstation/venuemap/internal/store"
	"github.com/agentstation/venuemap/internal/store/memory"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/reconciler"
	"github.com/agentstation/venuemap/pkg/targets"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client runs syncs and reads the stored market.
type Client interface {
	// Reader reads snapshots back from the store
	Reader

	// Syncer runs provider round-trips
	Syncer

	// AutoSyncer controls background syncs
	AutoSyncer

	// Hooks registers sync event callbacks
	Hooks

	// Targets returns a copy of the configured targets
	Targets() targets.Config

	// Close stops background syncs and closes the store
	Close() error
}

// client is the internal implementation of the Client interface.
type client struct {
	options  *options
	store    store.Store
	source   sources.Source
	resolver *reconciler.Resolver

	// syncMu serializes syncs so one resolution leads to one write
	syncMu sync.Mutex

	// auto sync state
	autoMu     sync.Mutex
	ticker     *time.Ticker
	stopCh     chan struct{}
	syncCancel context.CancelFunc
	done       chan struct{}

	hooks *hooks
}

// New creates a new Client with the given options.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	c := &client{
		options: o,
		store:   o.store,
		source:  o.source,
		hooks:   newHooks(),
	}

	if c.store == nil {
		o.logger.Debug().Msg("No store configured, keeping snapshots in memory")
		c.store = memory.New()
	}

	c.resolver = o.resolver
	if c.resolver == nil {
		c.resolver, err = reconciler.New(
			reconciler.WithFallbackAddress(o.targets.Address()),
			reconciler.WithLogger(o.logger),
		)
		if err != nil {
			return nil, errors.WrapResource("create", "resolver", "", err)
		}
	}

	if o.autoSyncEnabled {
		if c.source == nil {
			return nil, errors.NewConfigError("venuemap", "auto sync needs a source", nil)
		}
		if err := c.AutoSyncOn(); err != nil {
			return nil, errors.WrapResource("start", "auto sync", "", err)
		}
	}

	return c, nil
}

// Targets returns a copy of the configured targets.
func (c *client) Targets() targets.Config {
	cfg := *c.options.targets
	cfg.Venues = cfg.Venues.Clone()
	if cfg.LatLng != nil {
		ll := *cfg.LatLng
		cfg.LatLng = &ll
	}
	return cfg
}

// Close stops background syncs and closes the store.
func (c *client) Close() error {
	if err := c.AutoSyncOff(); err != nil {
		return err
	}
	return c.store.Close()
}
