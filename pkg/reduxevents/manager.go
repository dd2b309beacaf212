package reduxevents

import "context"

// Transition is a pure state transition for one phase of an event.
type Transition func(state State, action Action) State

// Hook is a side effect run after a transition, on a later turn.
type Hook func(prev, next State)

// ShouldDispatchFunc decides whether an action reaches the reducers.
type ShouldDispatchFunc func(appState AppState) bool

// CallToken performs the asynchronous call of a three-phase event.
// The core only carries it; the middleware invokes it.
type CallToken func(ctx context.Context) (any, error)

// AlwaysDispatch is the ShouldDispatchFunc used when a manager has none.
func AlwaysDispatch(AppState) bool {
	return true
}

// Manager holds the policy of one event: its initial state, its
// transitions and its optional hooks.
//
// Transitions are not validated when the event is built. A reducer that
// needs a missing transition panics with a *ConfigError.
type Manager struct {
	InitialState State

	// OnDispatch handles the single action of an Event, and the request
	// phase of an HTTP event.
	OnDispatch Transition
	OnSuccess  Transition
	OnFailure  Transition

	AfterDispatch Hook
	AfterSuccess  Hook
	AfterFailure  Hook

	// ShouldDispatch defaults to AlwaysDispatch.
	ShouldDispatch ShouldDispatchFunc

	// Call builds the call token for an HTTP event's trigger data.
	Call func(data Data) CallToken
}

func (m *Manager) shouldDispatch() ShouldDispatchFunc {
	if m.ShouldDispatch != nil {
		return m.ShouldDispatch
	}
	return AlwaysDispatch
}
