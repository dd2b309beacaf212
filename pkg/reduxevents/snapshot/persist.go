package snapshot

import (
	"context"
	"errors"
	"log/slog"

	"github.com/randalmurphal/reduxevents/pkg/reduxevents"
	"github.com/randalmurphal/reduxevents/pkg/reduxevents/observability"
)

// DefaultScope is the scope used when none is configured.
const DefaultScope = "default"

// Option configures Persist, Hydrate and SaveEvent.
type Option func(*options)

type options struct {
	scope  string
	logger *slog.Logger
}

// WithScope namespaces snapshots, e.g. per application or per user.
// Default: DefaultScope
func WithScope(scope string) Option {
	return func(o *options) {
		if scope != "" {
			o.scope = scope
		}
	}
}

// WithLogger sets the logger that reports failed saves.
// Default: slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{scope: DefaultScope, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Persist returns a copy of m whose after-hooks save the new state of the
// event named name before calling the original hooks.
//
// Hooks run after each dispatch, success and failure transition. The
// request phase of a three-phase event has no hook and is not saved.
// Failed saves are logged; they never reach the reducer.
func Persist(store Store, name string, m *reduxevents.Manager, opts ...Option) *reduxevents.Manager {
	o := buildOptions(opts)

	wrap := func(hook reduxevents.Hook) reduxevents.Hook {
		return func(prev, next reduxevents.State) {
			if err := save(context.Background(), store, o.scope, name, next); err != nil {
				observability.LogSnapshotError(o.logger, name, "save", err)
			}
			if hook != nil {
				hook(prev, next)
			}
		}
	}

	persisted := *m
	persisted.AfterDispatch = wrap(m.AfterDispatch)
	persisted.AfterSuccess = wrap(m.AfterSuccess)
	persisted.AfterFailure = wrap(m.AfterFailure)
	return &persisted
}

// Hydrate replaces m.InitialState with the last snapshot saved for name.
// Reports whether a snapshot was found; a missing snapshot leaves m
// unchanged and is not an error.
func Hydrate(ctx context.Context, store Store, name string, m *reduxevents.Manager, opts ...Option) (bool, error) {
	o := buildOptions(opts)

	data, err := store.Load(ctx, o.scope, name)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	snap, err := Unmarshal(data)
	if err != nil {
		return false, err
	}
	state, err := snap.Decode()
	if err != nil {
		return false, err
	}

	m.InitialState = state
	return true, nil
}

// SaveEvent saves the current state of ev under its name.
func SaveEvent(ctx context.Context, store Store, ev *reduxevents.Event, opts ...Option) error {
	o := buildOptions(opts)
	return save(ctx, store, o.scope, ev.Name(), ev.State())
}

func save(ctx context.Context, store Store, scope, name string, state reduxevents.State) error {
	snap, err := New(name, state)
	if err != nil {
		return err
	}
	data, err := snap.Marshal()
	if err != nil {
		return err
	}
	return store.Save(ctx, scope, name, data)
}
