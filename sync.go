package venuemap

import (
	"context"

	"github.com/google/uuid"

	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/logging"
	"github.com/agentstation/venuemap/pkg/venues"
)

// Compile-time interface check to ensure proper implementation.
var _ Syncer = (*client)(nil)

// Syncer runs provider round-trips.
type Syncer interface {
	// Sync queries the source, resolves the response and appends the
	// snapshot. Failures are returned as *errors.SyncError and leave the
	// store untouched.
	Sync(ctx context.Context, opts ...SyncOption) (*venues.Snapshot, error)
}

// Sync runs one query, resolve and append cycle.
func (c *client) Sync(ctx context.Context, opts ...SyncOption) (*venues.Snapshot, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.source == nil {
		return nil, errors.NewConfigError("venuemap", "no source configured", nil)
	}

	so := &syncOptions{}
	for _, opt := range opts {
		opt(so)
	}
	tgts := so.targets
	if len(tgts) == 0 {
		tgts = c.options.targets.Venues
	}
	if len(tgts) == 0 {
		return nil, errors.NewValidationError("targets", nil, "at least one target is required")
	}

	c.syncMu.Lock()
	defer c.syncMu.Unlock()

	syncID := uuid.NewString()
	ctx = logging.WithLogger(ctx, c.options.logger)
	ctx = logging.WithSync(ctx, syncID)
	ctx = logging.WithSource(ctx, c.source.ID())
	logger := logging.FromContext(ctx)

	logger.Info().Int("targets", len(tgts)).Msg("Sync started")
	c.hooks.syncStarted(syncID)

	snap, err := c.sync(ctx, tgts)
	if err != nil {
		err = errors.NewSyncError(c.source.ID(), syncID, err)
		logger.Warn().Err(err).Msg("Sync failed")
		c.hooks.syncFailed(err)
		return nil, err
	}

	logger.Info().
		Str("snapshot_id", snap.ID()).
		Int("venues", snap.Len()).
		Msg("Sync completed")
	c.hooks.snapshot(snap)
	return snap, nil
}

func (c *client) sync(ctx context.Context, tgts venues.Targets) (*venues.Snapshot, error) {
	resp, err := c.source.Query(ctx, tgts)
	if err != nil {
		return nil, err
	}

	snap, err := c.resolver.Assemble(c.options.now(), resp)
	if err != nil {
		var nd *errors.NoDataError
		if errors.As(err, &nd) {
			nd.Source = c.source.ID()
		}
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Join(errors.ErrCanceled, err)
	}
	if err := c.store.Append(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}
