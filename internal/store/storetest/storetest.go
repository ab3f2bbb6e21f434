// Package storetest holds the behavior every snapshot store must share.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/venues"
)

// Store mirrors store.Store so this package stays importable from the
// implementations' tests.
type Store interface {
	Append(ctx context.Context, snap *venues.Snapshot) error
	Latest(ctx context.Context) (*venues.Snapshot, error)
	History(ctx context.Context, limit int) ([]*venues.Snapshot, error)
	Close() error
}

var base = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// Snapshot builds a one-venue snapshot taken hours after a fixed base time.
func Snapshot(t *testing.T, hours int, reviews int) *venues.Snapshot {
	t.Helper()
	snap, err := venues.NewSnapshot(base.Add(time.Duration(hours)*time.Hour), []venues.Record{{
		ID:              "ChIJ7bPMcByEZ0ARfHkYQxLW1so",
		ExternalPlaceID: "ChIJ7bPMcByEZ0ARfHkYQxLW1so",
		Name:            "Casino International",
		Rating:          4.2,
		ReviewCount:     reviews,
		Address:         "Batumi",
		MapLink:         "https://maps.google.com/?cid=1",
	}})
	require.NoError(t, err)
	return snap
}

// Run exercises a fresh store returned by open.
func Run(t *testing.T, open func(t *testing.T) Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		s := open(t)
		_, err := s.Latest(ctx)
		assert.True(t, errors.IsNotFound(err))

		snaps, err := s.History(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, snaps)
	})

	t.Run("round trip", func(t *testing.T) {
		s := open(t)
		want := Snapshot(t, 0, 800)
		require.NoError(t, s.Append(ctx, want))

		got, err := s.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, want.ID(), got.ID())
		assert.True(t, want.Timestamp().Equal(got.Timestamp()))
		assert.Equal(t, want.Venues(), got.Venues())
	})

	t.Run("newest first", func(t *testing.T) {
		s := open(t)
		// Appended out of order; reads follow timestamps.
		for _, h := range []int{24, 0, 48} {
			require.NoError(t, s.Append(ctx, Snapshot(t, h, 100+h)))
		}

		snaps, err := s.History(ctx, 0)
		require.NoError(t, err)
		require.Len(t, snaps, 3)
		assert.Equal(t, 148, snaps[0].Venues()[0].ReviewCount)
		assert.Equal(t, 124, snaps[1].Venues()[0].ReviewCount)
		assert.Equal(t, 100, snaps[2].Venues()[0].ReviewCount)

		latest, err := s.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, snaps[0].ID(), latest.ID())
	})

	t.Run("limit", func(t *testing.T) {
		s := open(t)
		for h := range 5 {
			require.NoError(t, s.Append(ctx, Snapshot(t, h, h)))
		}
		snaps, err := s.History(ctx, 2)
		require.NoError(t, err)
		require.Len(t, snaps, 2)
		assert.Equal(t, 4, snaps[0].Venues()[0].ReviewCount)
		assert.Equal(t, 3, snaps[1].Venues()[0].ReviewCount)
	})

	t.Run("nil snapshot", func(t *testing.T) {
		s := open(t)
		assert.True(t, errors.IsValidationError(s.Append(ctx, nil)))
	})
}
