package venuemap

import (
	"context"
	"slices"

	"github.com/agentstation/venuemap/pkg/venues"
)

// Compile-time interface check to ensure proper implementation.
var _ Reader = (*client)(nil)

// Reader reads snapshots back from the store.
type Reader interface {
	// Latest returns the newest snapshot, or an error satisfying
	// errors.IsNotFound when nothing has been synced.
	Latest(ctx context.Context) (*venues.Snapshot, error)

	// History returns up to limit snapshots, oldest first. A limit of zero
	// or less means the store default.
	History(ctx context.Context, limit int) ([]*venues.Snapshot, error)

	// Market returns the latest snapshot and the history behind it.
	Market(ctx context.Context) (*Market, error)
}

// Market is the dashboard view of the store.
type Market struct {
	// Latest is the newest snapshot. With an empty store it has no venues
	// and is stamped with the current time.
	Latest *venues.Snapshot `json:"latest"`

	// History is oldest first.
	History []*venues.Snapshot `json:"history"`
}

// Empty reports whether nothing has been synced yet.
func (m *Market) Empty() bool {
	return len(m.History) == 0
}

// Latest returns the newest snapshot.
func (c *client) Latest(ctx context.Context) (*venues.Snapshot, error) {
	return c.store.Latest(ctx)
}

// History returns up to limit snapshots, oldest first.
func (c *client) History(ctx context.Context, limit int) ([]*venues.Snapshot, error) {
	snaps, err := c.store.History(ctx, limit)
	if err != nil {
		return nil, err
	}
	// Stores return newest first; reversing keeps append order on ties.
	slices.Reverse(snaps)
	return venues.Chronological(snaps), nil
}

// Market returns the latest snapshot and the history behind it.
func (c *client) Market(ctx context.Context) (*Market, error) {
	history, err := c.History(ctx, 0)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return &Market{
			Latest:  venues.RestoreSnapshot("", c.options.now(), nil),
			History: []*venues.Snapshot{},
		}, nil
	}
	return &Market{
		Latest:  history[len(history)-1],
		History: history,
	}, nil
}
