package venuemap

import (
	"context"
	"time"

	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
)

// Compile-time interface check to ensure proper implementation.
var _ AutoSyncer = (*client)(nil)

// AutoSyncer controls background syncs.
type AutoSyncer interface {
	// AutoSyncOn starts syncing on the configured interval
	AutoSyncOn() error

	// AutoSyncOff stops background syncs and waits for a running one
	AutoSyncOff() error
}

// AutoSyncOn starts syncing on the configured interval. Calling it again
// restarts the ticker.
func (c *client) AutoSyncOn() error {
	if c.options.autoSyncInterval <= 0 {
		return &errors.ValidationError{
			Field:   "autoSyncInterval",
			Value:   c.options.autoSyncInterval,
			Message: "sync interval must be positive",
		}
	}
	if c.source == nil {
		return errors.NewConfigError("venuemap", "auto sync needs a source", nil)
	}

	if err := c.AutoSyncOff(); err != nil {
		return err
	}

	c.autoMu.Lock()
	defer c.autoMu.Unlock()

	c.stopCh = make(chan struct{})
	c.done = make(chan struct{})
	c.ticker = time.NewTicker(c.options.autoSyncInterval)

	ctx, cancel := context.WithCancel(context.Background())
	c.syncCancel = cancel

	go c.autoSync(ctx, c.ticker, c.stopCh, c.done)
	return nil
}

func (c *client) autoSync(ctx context.Context, ticker *time.Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-ticker.C:
			syncCtx, cancel := context.WithTimeout(ctx, constants.SyncContextTimeout)
			_, err := c.Sync(syncCtx)
			cancel()

			if err != nil {
				if ctx.Err() != nil {
					return
				}
				// Failures are reported through hooks; keep ticking.
				c.options.logger.Error().Err(err).Msg("Auto sync failed")
			}
		case <-ctx.Done():
			return
		case <-stop:
			return
		}
	}
}

// AutoSyncOff stops background syncs.
func (c *client) AutoSyncOff() error {
	c.autoMu.Lock()
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
	if c.syncCancel != nil {
		c.syncCancel()
		c.syncCancel = nil
	}
	if c.stopCh != nil {
		close(c.stopCh)
		c.stopCh = nil
	}
	done := c.done
	c.done = nil
	c.autoMu.Unlock()

	if done != nil {
		<-done
	}
	return nil
}
