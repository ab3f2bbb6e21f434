// Package postgres stores snapshots in PostgreSQL. The table layout matches
// the market_snapshots table of the earlier dashboard service so existing
// rows read back as history.
package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/venues"
)

const schema = `
CREATE TABLE IF NOT EXISTS market_snapshots (
    id          SERIAL PRIMARY KEY,
    snapshot_id TEXT,
    timestamp   TIMESTAMPTZ DEFAULT NOW(),
    casinos     JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_market_snapshots_timestamp ON market_snapshots (timestamp DESC);
`

// Config holds database connection configuration.
type Config struct {
	URL             string
	MaxConnections  int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	HistoryLimit    int
}

// Store is a PostgreSQL-backed snapshot store.
type Store struct {
	pool         *pgxpool.Pool
	historyLimit int
}

// Open creates a connection pool, pings it and ensures the table exists.
func Open(ctx context.Context, cfg *Config) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, errors.NewConfigError("store", "failed to parse database URL", err)
	}

	poolConfig.MaxConns = cfg.MaxConnections
	if poolConfig.MaxConns == 0 {
		poolConfig.MaxConns = constants.MaxDBConnections
	}

	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	if poolConfig.MaxConnLifetime == 0 {
		poolConfig.MaxConnLifetime = constants.MaxDBConnLifetime
	}

	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	if poolConfig.MaxConnIdleTime == 0 {
		poolConfig.MaxConnIdleTime = constants.MaxDBConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.WrapResource("create", "connection pool", "", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.WrapResource("ping", "database", "", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, errors.WrapResource("initialize", "store", "market_snapshots", err)
	}

	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = constants.DefaultHistoryLimit
	}
	return &Store{pool: pool, historyLimit: limit}, nil
}

// Append implements store.Store.
func (s *Store) Append(ctx context.Context, snap *venues.Snapshot) error {
	if snap == nil {
		return errors.NewValidationError("snapshot", nil, "cannot be nil")
	}
	recs := snap.Venues()
	if recs == nil {
		recs = []venues.Record{}
	}
	casinos, err := json.Marshal(recs)
	if err != nil {
		return errors.WrapParse("json", "", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO market_snapshots (snapshot_id, timestamp, casinos) VALUES ($1, $2, $3)`,
		snap.ID(), snap.Timestamp(), string(casinos))
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

// Rows written without a snapshot_id fall back to the serial id.
func (s *Store) query(ctx context.Context, limit int) ([]*venues.Snapshot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT COALESCE(snapshot_id, id::text), timestamp, casinos FROM market_snapshots
		 ORDER BY timestamp DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, errors.WrapResource("query", "snapshots", "", err)
	}
	defer rows.Close()

	var out []*venues.Snapshot
	for rows.Next() {
		var (
			id      string
			at      time.Time
			casinos []byte
		)
		if err := rows.Scan(&id, &at, &casinos); err != nil {
			return nil, errors.WrapResource("scan", "snapshot", "", err)
		}
		var recs []venues.Record
		if err := json.Unmarshal(casinos, &recs); err != nil {
			return nil, errors.WrapParse("json", id, err)
		}
		out = append(out, venues.RestoreSnapshot(id, at, recs))
	}
	return out, errors.WrapResource("query", "snapshots", "", rows.Err())
}

// Close implements store.Store.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
