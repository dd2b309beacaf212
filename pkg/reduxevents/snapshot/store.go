// Package snapshot persists event state slices so an application can
// restart from the state it last produced.
//
// A Store holds encoded snapshots keyed by scope and event name. Persist
// wraps a Manager's after-hooks to save every new state; Hydrate seeds a
// Manager's InitialState from the last saved snapshot before the event is
// built.
package snapshot

import (
	"context"
	"errors"
	"time"
)

// Store persists snapshots.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores the snapshot of an event within a scope, replacing any
	// previous snapshot of that event.
	Save(ctx context.Context, scope, event string, data []byte) error

	// Load retrieves a snapshot.
	// Returns ErrNotFound if it doesn't exist.
	Load(ctx context.Context, scope, event string) ([]byte, error)

	// List returns the snapshots of a scope, ordered by sequence.
	// Returns an empty slice (not error) if the scope is empty.
	List(ctx context.Context, scope string) ([]Info, error)

	// Delete removes one snapshot. Returns nil if it doesn't exist.
	Delete(ctx context.Context, scope, event string) error

	// DeleteScope removes every snapshot of a scope.
	DeleteScope(ctx context.Context, scope string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info describes a stored snapshot without loading it.
type Info struct {
	Scope     string
	Event     string
	Sequence  int
	Timestamp time.Time
	Size      int64
}

// Sentinel errors for snapshot operations.
var (
	// ErrNotFound indicates a snapshot doesn't exist.
	ErrNotFound = errors.New("snapshot not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("snapshot store closed")
)
