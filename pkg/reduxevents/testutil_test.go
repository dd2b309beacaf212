package reduxevents_test

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"sync"

	"github.com/randalmurphal/reduxevents/pkg/reduxevents"
	"github.com/randalmurphal/reduxevents/pkg/reduxevents/schedule"
)

// harness bundles the runtime wiring shared by tests: an isolated registry,
// a virtual clock and predictable action IDs.
type harness struct {
	clock    *schedule.Virtual
	registry *reduxevents.Registry
	ids      int
	mu       sync.Mutex
}

func newHarness() *harness {
	return &harness{
		clock:    schedule.NewVirtual(),
		registry: reduxevents.NewRegistry(),
	}
}

func (h *harness) nextID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ids++
	return fmt.Sprintf("id-%d", h.ids)
}

func (h *harness) options(extra ...reduxevents.Option) []reduxevents.Option {
	opts := []reduxevents.Option{
		reduxevents.WithScheduler(h.clock),
		reduxevents.WithRegistry(h.registry),
		reduxevents.WithIDFunc(h.nextID),
		reduxevents.WithLogger(discardLogger()),
	}
	return append(opts, extra...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// counterManager counts dispatches in "count".
func counterManager() *reduxevents.Manager {
	return &reduxevents.Manager{
		InitialState: reduxevents.State{"count": 0},
		OnDispatch: func(s reduxevents.State, _ reduxevents.Action) reduxevents.State {
			return reduxevents.State{"count": s["count"].(int) + 1}
		},
	}
}

// copyManager replaces the state with the action's extra data.
func copyManager() *reduxevents.Manager {
	return &reduxevents.Manager{
		InitialState: reduxevents.State{},
		OnDispatch: func(_ reduxevents.State, a reduxevents.Action) reduxevents.State {
			return reduxevents.State(maps.Clone(a.ExtraData))
		},
	}
}

// fetchManager records the phase and outcome of a three-phase event.
func fetchManager() *reduxevents.Manager {
	return &reduxevents.Manager{
		InitialState: reduxevents.State{"status": "idle"},
		OnDispatch: func(s reduxevents.State, _ reduxevents.Action) reduxevents.State {
			return reduxevents.State{"status": "loading"}
		},
		OnSuccess: func(s reduxevents.State, a reduxevents.Action) reduxevents.State {
			return reduxevents.State{"status": "done", "result": a.Response}
		},
		OnFailure: func(s reduxevents.State, a reduxevents.Action) reduxevents.State {
			return reduxevents.State{"status": "failed", "error": a.Err}
		},
	}
}

// testStore is a minimal state container: it runs every reducer on every
// action and attaches itself as the relay dispatch, as the middleware does.
type testStore struct {
	mu       sync.Mutex
	reducers reduxevents.ReducerMap
	state    reduxevents.AppState
	actions  []reduxevents.Action
}

func newTestStore(reducers reduxevents.ReducerMap) *testStore {
	s := &testStore{
		reducers: reducers,
		state:    make(reduxevents.AppState),
	}
	s.Dispatch(reduxevents.Action{Type: "@@INIT"})
	s.actions = nil
	return s
}

func (s *testStore) Dispatch(action reduxevents.Action) any {
	if action.Dispatch == nil {
		action.Dispatch = s.Dispatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.actions = append(s.actions, action)
	for key, reducer := range s.reducers {
		s.state[key] = reducer(s.state[key], action)
	}
	return action
}

func (s *testStore) GetState() reduxevents.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.state)
}

// Types returns the types of dispatched actions in order.
func (s *testStore) Types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	types := make([]string, 0, len(s.actions))
	for _, a := range s.actions {
		types = append(types, a.Type)
	}
	return types
}

// Last returns the last dispatched action of the given type.
func (s *testStore) Last(actionType string) (reduxevents.Action, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.actions) - 1; i >= 0; i-- {
		if s.actions[i].Type == actionType {
			return s.actions[i], true
		}
	}
	return reduxevents.Action{}, false
}
