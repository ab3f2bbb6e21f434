// Package constants provides shared constants used throughout venuemap.
// This includes timeouts, limits and the default values that describe the
// market the service tracks when no configuration overrides them.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// SyncContextTimeout bounds a single sync (model call, resolution and store append)
	SyncContextTimeout = 2 * time.Minute

	// DefaultSyncInterval is the default interval between automatic syncs
	DefaultSyncInterval = 6 * time.Hour

	// StoreConnectTimeout bounds opening and pinging a snapshot store
	StoreConnectTimeout = 15 * time.Second

	// ShutdownTimeout is the grace period for draining the HTTP server
	ShutdownTimeout = 30 * time.Second
)

// Limit constants define various limits and capacities
const (
	// DefaultHistoryLimit is the number of snapshots read back for history views
	DefaultHistoryLimit = 1000

	// MinPlaceIDLength is the length a place identifier must exceed to be used as a venue key
	MinPlaceIDLength = 5

	// MinTableSeparators is the number of pipe characters a line needs to be a table row candidate
	MinTableSeparators = 4

	// MinTableCells is the number of non-empty cells a table row needs to be accepted
	MinTableCells = 4

	// TopVenues is the size of the volume leaderboard
	TopVenues = 10

	// MinHistorySnapshots is the number of snapshots a trend series needs
	MinHistorySnapshots = 2

	// ChannelBufferSize is the default buffer size for event channels
	ChannelBufferSize = 256
)

// Database pool constants
const (
	// MaxDBConnections is the default pgx pool size
	MaxDBConnections = 10

	// MaxDBConnLifetime is the default lifetime of a pooled connection
	MaxDBConnLifetime = time.Hour

	// MaxDBConnIdleTime is the default idle time of a pooled connection
	MaxDBConnIdleTime = 30 * time.Minute
)

// Cache constants
const (
	// CacheTTL is the default time-to-live for cached market responses
	CacheTTL = 5 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 10 * time.Minute
)

// Default values
const (
	// DefaultModel is the Gemini model used for market queries
	DefaultModel = "gemini-2.5-flash"

	// DefaultTemperature keeps the model close to deterministic table output
	DefaultTemperature = 0.1

	// DefaultLocation is the locality the default target set lives in
	DefaultLocation = "Batumi, Georgia"

	// DefaultFallbackAddress is used for rows without an address cell
	DefaultFallbackAddress = "Batumi"

	// DefaultSubjectMarker selects the subject venue by lowercase name substring
	DefaultSubjectMarker = "international"

	// DefaultMapSearchURL is the base of the search-by-name map link
	DefaultMapSearchURL = "https://www.google.com/maps/search/"

	// DefaultDatabaseURL is the snapshot store used when none is configured
	DefaultDatabaseURL = "sqlite://venuemap.db"

	// DefaultTargetsFile is looked up in the working directory when no targets file is configured
	DefaultTargetsFile = "targets.yaml"
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339

	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm MST"

	// TimeFormatDayLabel labels history points when every snapshot is on its own day
	TimeFormatDayLabel = "Jan 2"

	// TimeFormatDayTimeLabel labels history points when two snapshots share a day
	TimeFormatDayTimeLabel = "Jan 2 15:04"
)

// File system constants
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
