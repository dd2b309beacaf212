package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/randalmurphal/reduxevents/pkg/reduxevents"
)

// Version is the current snapshot format version.
const Version = 1

// Snapshot is the persisted form of one event's state slice.
type Snapshot struct {
	Version   int             `json:"version"`
	Event     string          `json:"event"`
	Timestamp time.Time       `json:"timestamp"`
	State     json.RawMessage `json:"state"`
}

// New encodes state into a snapshot of event.
func New(event string, state reduxevents.State) (*Snapshot, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode state of %s: %w", event, err)
	}
	return &Snapshot{
		Version:   Version,
		Event:     event,
		Timestamp: time.Now().UTC(),
		State:     raw,
	}, nil
}

// Marshal serializes the snapshot to JSON.
func (s *Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal deserializes a snapshot from JSON.
func Unmarshal(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Version != Version {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	return &s, nil
}

// Decode returns the state held by the snapshot. Values come back as
// encoding/json produces them: numbers are float64, objects are
// map[string]any.
func (s *Snapshot) Decode() (reduxevents.State, error) {
	var state reduxevents.State
	if err := json.Unmarshal(s.State, &state); err != nil {
		return nil, fmt.Errorf("decode state of %s: %w", s.Event, err)
	}
	return state, nil
}
