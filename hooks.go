package venuemap

import (
	"sync"

	"github.com/agentstation/venuemap/pkg/venues"
)

// Hook function types for sync events
type (
	// SyncStartedHook is called when a sync begins
	SyncStartedHook func(syncID string)

	// SnapshotHook is called after a snapshot is persisted
	SnapshotHook func(snap *venues.Snapshot)

	// SyncFailedHook is called when a sync fails; nothing was persisted
	SyncFailedHook func(err error)
)

// Hooks registers callbacks for sync events. Callbacks run synchronously
// on the syncing goroutine, in registration order.
type Hooks interface {
	OnSyncStarted(fn SyncStartedHook)
	OnSnapshot(fn SnapshotHook)
	OnSyncFailed(fn SyncFailedHook)
}

// hooks manages event callbacks for sync runs
type hooks struct {
	mu            sync.RWMutex
	onSyncStarted []SyncStartedHook
	onSnapshot    []SnapshotHook
	onSyncFailed  []SyncFailedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnSyncStarted registers a callback for when a sync begins
func (h *hooks) OnSyncStarted(fn SyncStartedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSyncStarted = append(h.onSyncStarted, fn)
}

// OnSnapshot registers a callback for persisted snapshots
func (h *hooks) OnSnapshot(fn SnapshotHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSnapshot = append(h.onSnapshot, fn)
}

// OnSyncFailed registers a callback for failed syncs
func (h *hooks) OnSyncFailed(fn SyncFailedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSyncFailed = append(h.onSyncFailed, fn)
}

// OnSyncStarted implements Hooks.
func (c *client) OnSyncStarted(fn SyncStartedHook) { c.hooks.OnSyncStarted(fn) }

// OnSnapshot implements Hooks.
func (c *client) OnSnapshot(fn SnapshotHook) { c.hooks.OnSnapshot(fn) }

// OnSyncFailed implements Hooks.
func (c *client) OnSyncFailed(fn SyncFailedHook) { c.hooks.OnSyncFailed(fn) }

func (h *hooks) syncStarted(syncID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onSyncStarted {
		fn(syncID)
	}
}

func (h *hooks) snapshot(snap *venues.Snapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onSnapshot {
		fn(snap)
	}
}

func (h *hooks) syncFailed(err error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onSyncFailed {
		fn(err)
	}
}
