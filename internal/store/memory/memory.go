// Package memory is an in-process snapshot store for tests and throwaway
// runs.
package memory

import (
	"context"
	"sync"

	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/venues"
)

// Store keeps snapshots in insertion order. Snapshots are immutable, so
// pointers are shared with callers.
type Store struct {
	mu           sync.RWMutex
	snapshots    []*venues.Snapshot
	historyLimit int
	closed       bool
}

// Option configures a Store.
type Option func(*Store)

// WithHistoryLimit sets the default History limit.
func WithHistoryLimit(n int) Option {
	return func(s *Store) {
		s.historyLimit = n
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{historyLimit: constants.DefaultHistoryLimit}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append implements store.Store.
func (s *Store) Append(ctx context.Context, snap *venues.Snapshot) error {
	if snap == nil {
		return errors.NewValidationError("snapshot", nil, "cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return errors.Join(errors.ErrCanceled, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errClosed
	}
	s.snapshots = append(s.snapshots, snap)
	return nil
}

// Latest implements store.Store.
func (s *Store) Latest(_ context.Context) (*venues.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	latest := s.newest(1)
	if len(latest) == 0 {
		return nil, errors.NewNotFoundError("snapshot", "")
	}
	return latest[0], nil
}

// History implements store.Store.
func (s *Store) History(_ context.Context, limit int) ([]*venues.Snapshot, error) {
	if limit <= 0 {
		limit = s.historyLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newest(limit), nil
}

// newest returns up to n snapshots ordered newest first by timestamp, with
// later appends winning ties.
func (s *Store) newest(n int) []*venues.Snapshot {
	ordered := venues.Chronological(append([]*venues.Snapshot(nil), s.snapshots...))
	out := make([]*venues.Snapshot, 0, min(n, len(ordered)))
	for i := len(ordered) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, ordered[i])
	}
	return out
}

// Len returns the number of stored snapshots.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots)
}

// Close implements store.Store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

var errClosed = errors.NewResourceError("append", "snapshot", "", errors.New("store is closed"))
