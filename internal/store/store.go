// Package store persists snapshots. Stores are append-only: a snapshot is
// written once and never updated, and venue ids are stored as given.
package store

import (
	"context"
	"net/url"
	"strings"

	"github.com/agentstation/venuemap/internal/store/memory"
	"github.com/agentstation/venuemap/internal/store/postgres"
	"github.com/agentstation/venuemap/internal/store/sqlite"
	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/venues"
)

// Store is append-only snapshot persistence.
type Store interface {
	// Append persists a snapshot.
	Append(ctx context.Context, snap *venues.Snapshot) error
	// Latest returns the newest snapshot, or an error satisfying
	// errors.IsNotFound when the store is empty.
	Latest(ctx context.Context) (*venues.Snapshot, error)
	// History returns up to limit snapshots, newest first. A limit of zero
	// or less means the store's default.
	History(ctx context.Context, limit int) ([]*venues.Snapshot, error)
	// Close releases the store's resources.
	Close() error
}

var (
	_ Store = (*memory.Store)(nil)
	_ Store = (*sqlite.Store)(nil)
	_ Store = (*postgres.Store)(nil)
)

// Kind names a store implementation.
type Kind string

// Store kinds.
const (
	KindMemory   Kind = "memory"
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
)

// Parse reports which store a DSN selects and the implementation-specific
// remainder: the file path for sqlite, the full URL for postgres.
//
//	memory://             in-process, lost on exit
//	sqlite://path/to.db   local file (a bare path is sqlite too)
//	postgres://...        PostgreSQL (postgresql:// also accepted)
func Parse(dsn string) (Kind, string, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = constants.DefaultDatabaseURL
	}
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return KindSQLite, dsn, nil
	}
	switch strings.ToLower(scheme) {
	case "memory", "mem":
		return KindMemory, "", nil
	case "sqlite", "sqlite3", "file":
		if rest == "" {
			return "", "", errors.NewConfigError("store", "sqlite url has no path", nil)
		}
		return KindSQLite, rest, nil
	case "postgres", "postgresql":
		if _, err := url.Parse(dsn); err != nil {
			return "", "", errors.NewConfigError("store", "invalid postgres url", err)
		}
		return KindPostgres, dsn, nil
	default:
		return "", "", errors.NewConfigError("store", "unsupported database url scheme "+scheme, nil)
	}
}

// Options tune an opened store.
type Options struct {
	HistoryLimit int
}

// Option configures Open.
type Option func(*Options)

// WithHistoryLimit sets the default History limit.
func WithHistoryLimit(n int) Option {
	return func(o *Options) {
		o.HistoryLimit = n
	}
}

// Open connects to the store a DSN selects and ensures its schema exists.
func Open(ctx context.Context, dsn string, opts ...Option) (Store, error) {
	o := &Options{HistoryLimit: constants.DefaultHistoryLimit}
	for _, opt := range opts {
		opt(o)
	}

	kind, target, err := Parse(dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.StoreConnectTimeout)
	defer cancel()

	switch kind {
	case KindMemory:
		return memory.New(memory.WithHistoryLimit(o.HistoryLimit)), nil
	case KindSQLite:
		return sqlite.Open(ctx, target, sqlite.WithHistoryLimit(o.HistoryLimit))
	default:
		return postgres.Open(ctx, &postgres.Config{URL: target, HistoryLimit: o.HistoryLimit})
	}
}

// Redact hides the password in a DSN for logging.
func Redact(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
