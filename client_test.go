package venuemap_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/venuemap"
	"github.com/agentstation/venuemap/internal/sources"
	"github.com/agentstation/venuemap/internal/store/memory"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/targets"
	"github.com/agentstation/venuemap/pkg/venues"
)

const marketTable = `| Venue Name | Rating | Review Count | Place ID | Address |
|---|---|---|---|---|
| Casino Otium | 4.6 | 1,204 | ChIJ7bPMpg2HZ0AR7w95mwJxPfE | Rustaveli St |
| Casino International | 4.2 | 800 | ChIJ7bPMcByEZ0ARfHkYQxLW1so | Batumi |
`

var clock = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func fixedSource(text string) sources.Source {
	return sources.Func{Name: "fake", Fn: func(ctx context.Context, _ venues.Targets) (venues.Response, error) {
		return venues.Response{Text: text}, ctx.Err()
	}}
}

func newClient(t *testing.T, opts ...venuemap.Option) (venuemap.Client, *memory.Store) {
	t.Helper()
	st := memory.New()
	opts = append([]venuemap.Option{
		venuemap.WithStore(st),
		venuemap.WithClock(func() time.Time { return clock }),
	}, opts...)
	c, err := venuemap.New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, st
}

func TestSyncPersistsSnapshot(t *testing.T) {
	c, st := newClient(t, venuemap.WithSource(fixedSource(marketTable)))

	var got []*venues.Snapshot
	c.OnSnapshot(func(snap *venues.Snapshot) { got = append(got, snap) })
	var started []string
	c.OnSyncStarted(func(id string) { started = append(started, id) })

	snap, err := c.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Len())
	assert.Equal(t, clock, snap.Timestamp())
	assert.Equal(t, 1, st.Len())
	require.Len(t, got, 1)
	assert.Equal(t, snap.ID(), got[0].ID())
	assert.Len(t, started, 1)

	latest, err := c.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snap.ID(), latest.ID())
}

func TestHooksRunInRegistrationOrder(t *testing.T) {
	c, _ := newClient(t, venuemap.WithSource(fixedSource(marketTable)))

	var hooks venuemap.Hooks = c
	var order []string
	hooks.OnSnapshot(func(*venues.Snapshot) { order = append(order, "first") })
	hooks.OnSnapshot(func(*venues.Snapshot) { order = append(order, "second") })

	_, err := c.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestSyncNoDataLeavesStoreUntouched(t *testing.T) {
	c, st := newClient(t, venuemap.WithSource(fixedSource("I could not find any venues.")))

	var failed []error
	c.OnSyncFailed(func(err error) { failed = append(failed, err) })
	c.OnSnapshot(func(*venues.Snapshot) { t.Error("no snapshot expected") })

	_, err := c.Sync(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsNoData(err))

	var syncErr *errors.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, "fake", syncErr.Source)
	assert.NotEmpty(t, syncErr.SyncID)

	var nd *errors.NoDataError
	require.ErrorAs(t, err, &nd)
	assert.Equal(t, "fake", nd.Source)

	assert.Equal(t, 0, st.Len())
	assert.Len(t, failed, 1)
}

func TestSyncSourceError(t *testing.T) {
	src := sources.Func{Name: "gemini", Fn: func(context.Context, venues.Targets) (venues.Response, error) {
		return venues.Response{}, errors.NewAPIError("gemini", 503, "overloaded")
	}}
	c, st := newClient(t, venuemap.WithSource(src))

	_, err := c.Sync(context.Background())
	assert.True(t, errors.IsProviderUnavailable(err))
	assert.Equal(t, 0, st.Len())
}

func TestSyncTargets(t *testing.T) {
	var seen venues.Targets
	src := sources.Func{Name: "fake", Fn: func(_ context.Context, tgts venues.Targets) (venues.Response, error) {
		seen = tgts
		return venues.Response{Text: marketTable}, nil
	}}
	c, _ := newClient(t, venuemap.WithSource(src))

	_, err := c.Sync(context.Background())
	require.NoError(t, err)
	assert.Len(t, seen, len(targets.Default().Venues))

	override := venues.Targets{{Name: "Casino Otium"}}
	_, err = c.Sync(context.Background(), venuemap.WithSyncTargets(override))
	require.NoError(t, err)
	assert.Equal(t, override, seen)
}

func TestSyncWithoutSource(t *testing.T) {
	c, _ := newClient(t)
	_, err := c.Sync(context.Background())
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestMarket(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		c, _ := newClient(t)
		m, err := c.Market(ctx)
		require.NoError(t, err)
		assert.True(t, m.Empty())
		assert.Equal(t, 0, m.Latest.Len())
		assert.Equal(t, clock, m.Latest.Timestamp())
	})

	t.Run("history ascending", func(t *testing.T) {
		now := clock
		c, _ := newClient(t,
			venuemap.WithSource(fixedSource(marketTable)),
			venuemap.WithClock(func() time.Time {
				now = now.Add(time.Hour)
				return now
			}),
		)
		for range 3 {
			_, err := c.Sync(ctx)
			require.NoError(t, err)
		}

		m, err := c.Market(ctx)
		require.NoError(t, err)
		require.Len(t, m.History, 3)
		assert.True(t, m.History[0].Timestamp().Before(m.History[2].Timestamp()))
		assert.Equal(t, m.History[2].ID(), m.Latest.ID())

		hist, err := c.History(ctx, 2)
		require.NoError(t, err)
		require.Len(t, hist, 2)
		assert.Equal(t, m.History[1].ID(), hist[0].ID())
	})
}

func TestTargetsIsACopy(t *testing.T) {
	c, _ := newClient(t)
	cfg := c.Targets()
	cfg.Venues[0].Name = "changed"
	assert.NotEqual(t, "changed", c.Targets().Venues[0].Name)
}

func TestOptionValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  venuemap.Option
	}{
		{"nil store", venuemap.WithStore(nil)},
		{"nil source", venuemap.WithSource(nil)},
		{"nil targets", venuemap.WithTargets(nil)},
		{"invalid targets", venuemap.WithTargets(&targets.Config{})},
		{"zero interval", venuemap.WithAutoSyncInterval(0)},
		{"nil clock", venuemap.WithClock(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := venuemap.New(tt.opt)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestAutoSync(t *testing.T) {
	var calls atomic.Int32
	src := sources.Func{Name: "fake", Fn: func(context.Context, venues.Targets) (venues.Response, error) {
		calls.Add(1)
		return venues.Response{Text: marketTable}, nil
	}}
	c, st := newClient(t,
		venuemap.WithSource(src),
		venuemap.WithAutoSyncInterval(10*time.Millisecond),
		venuemap.WithAutoSync(true),
	)

	assert.Eventually(t, func() bool { return st.Len() >= 2 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, c.AutoSyncOff())

	n := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, calls.Load(), "no syncs after AutoSyncOff")
}

func TestAutoSyncNeedsSource(t *testing.T) {
	_, err := venuemap.New(venuemap.WithAutoSync(true))
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
