// Package sqlite stores snapshots in a local SQLite file using the pure-Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	_ "modernc.org/sqlite" // driver

	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/venues"
)

const schema = `
CREATE TABLE IF NOT EXISTS market_snapshots (
    id          INTEGER PRIMARY KEY,
    snapshot_id TEXT NOT NULL,
    timestamp   TEXT NOT NULL,
    casinos     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_market_snapshots_timestamp ON market_snapshots(timestamp DESC);
`

// timeLayout is fixed width so timestamps order lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store is a SQLite-backed snapshot store.
type Store struct {
	db           *sql.DB
	path         string
	historyLimit int
}

// Option configures a Store.
type Option func(*Store)

// WithHistoryLimit sets the default History limit.
func WithHistoryLimit(n int) Option {
	return func(s *Store) {
		s.historyLimit = n
	}
}

// Open opens or creates the database at path and initializes the schema.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, errors.WrapResource("open", "store", path, err)
	}
	// One writer keeps :memory: databases coherent and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.WrapResource("ping", "store", path, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.WrapResource("initialize", "store", path, err)
	}

	s := &Store{db: db, path: path, historyLimit: constants.DefaultHistoryLimit}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func dsn(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_pragma=busy_timeout(5000)"
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Append implements store.Store.
func (s *Store) Append(ctx context.Context, snap *venues.Snapshot) error {
	if snap == nil {
		return errors.NewValidationError("snapshot", nil, "cannot be nil")
	}
	casinos, err := json.Marshal(records(snap))
	if err != nil {
		return errors.WrapParse("json", "", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO market_snapshots (snapshot_id, timestamp, casinos) VALUES (?, ?, ?)`,
		snap.ID(), snap.Timestamp().UTC().Format(timeLayout), string(casinos))
	return errors.WrapResource("append", "snapshot", snap.ID(), err)
}

// Latest implements store.Store.
func (s *Store) Latest(ctx context.Context) (*venues.Snapshot, error) {
	snaps, err := s.query(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, errors.NewNotFoundError("snapshot", "")
	}
	return snaps[0], nil
}

// History implements store.Store.
func (s *Store) History(ctx context.Context, limit int) ([]*venues.Snapshot, error) {
	if limit <= 0 {
		limit = s.historyLimit
	}
	return s.query(ctx, limit)
}

func (s *Store) query(ctx context.Context, limit int) ([]*venues.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT snapshot_id, timestamp, casinos FROM market_snapshots
		 ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.WrapResource("query", "snapshots", "", err)
	}
	defer rows.Close()

	var out []*venues.Snapshot
	for rows.Next() {
		var id, ts, casinos string
		if err := rows.Scan(&id, &ts, &casinos); err != nil {
			return nil, errors.WrapResource("scan", "snapshot", "", err)
		}
		at, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, errors.WrapParse("timestamp", id, err)
		}
		var recs []venues.Record
		if err := json.Unmarshal([]byte(casinos), &recs); err != nil {
			return nil, errors.WrapParse("json", id, err)
		}
		out = append(out, venues.RestoreSnapshot(id, at, recs))
	}
	return out, errors.WrapResource("query", "snapshots", "", rows.Err())
}

// Close implements store.Store.
func (s *Store) Close() error {
	return s.db.Close()
}

func records(snap *venues.Snapshot) []venues.Record {
	recs := snap.Venues()
	if recs == nil {
		return []venues.Record{}
	}
	return recs
}
