package venues

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/venuemap/pkg/errors"
)

// Snapshot is an immutable, timestamped set of resolved venue records.
// Accessors return copies; there are no setters.
type Snapshot struct {
	id        string
	timestamp time.Time
	venues    []Record
}

// NewSnapshot packages records observed at the given time. An empty record
// set is the "no usable data" outcome of a sync and yields ErrNoData.
func NewSnapshot(at time.Time, records []Record) (*Snapshot, error) {
	if len(records) == 0 {
		return nil, errors.NewNoDataError("", 0)
	}
	return &Snapshot{
		id:        uuid.NewString(),
		timestamp: at.UTC(),
		venues:    slices.Clone(records),
	}, nil
}

// RestoreSnapshot rebuilds a stored snapshot. Unlike NewSnapshot it accepts
// an empty venue list, since stored history is never second-guessed.
func RestoreSnapshot(id string, at time.Time, records []Record) *Snapshot {
	return &Snapshot{
		id:        id,
		timestamp: at.UTC(),
		venues:    slices.Clone(records),
	}
}

// ID returns the snapshot identifier.
func (s *Snapshot) ID() string { return s.id }

// Timestamp returns when the snapshot was taken, in UTC.
func (s *Snapshot) Timestamp() time.Time { return s.timestamp }

// Venues returns a copy of the snapshot's records.
func (s *Snapshot) Venues() []Record { return slices.Clone(s.venues) }

// Len returns the number of records.
func (s *Snapshot) Len() int { return len(s.venues) }

// Find returns the record with the given id.
func (s *Snapshot) Find(id string) (Record, bool) {
	for _, r := range s.venues {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// snapshotJSON is the wire shape. "casinos" is the field name used by
// stored documents and the dashboard.
type snapshotJSON struct {
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Venues    []Record  `json:"casinos"`
}

// MarshalJSON implements json.Marshaler.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	venues := s.venues
	if venues == nil {
		venues = []Record{}
	}
	return json.Marshal(snapshotJSON{ID: s.id, Timestamp: s.timestamp, Venues: venues})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var wire snapshotJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*s = *RestoreSnapshot(wire.ID, wire.Timestamp, wire.Venues)
	return nil
}

// MarshalYAML implements yaml.InterfaceMarshaler for the CLI yaml output.
func (s *Snapshot) MarshalYAML() (any, error) {
	return map[string]any{
		"id":        s.id,
		"timestamp": s.timestamp.Format(time.RFC3339),
		"venues":    s.Venues(),
	}, nil
}

// Chronological sorts snapshots oldest first, in place, and returns them.
func Chronological(snapshots []*Snapshot) []*Snapshot {
	slices.SortStableFunc(snapshots, func(a, b *Snapshot) int {
		return a.timestamp.Compare(b.timestamp)
	})
	return snapshots
}
