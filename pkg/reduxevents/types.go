package reduxevents

import "maps"

// State is the state slice owned by one event.
type State map[string]any

// Data is the argument passed when an event is triggered.
// It becomes the ExtraData of the formatted action.
type Data map[string]any

// AppState is the whole application state tree, keyed by event name.
type AppState map[string]State

// Phase names one action type of an event. Three-phase events react to
// PhaseRequest, PhaseSuccess and PhaseFailure; single-action events have
// only PhaseDispatch.
type Phase string

// Phases.
const (
	PhaseDispatch Phase = "dispatch"
	PhaseRequest  Phase = "request"
	PhaseSuccess  Phase = "success"
	PhaseFailure  Phase = "failure"
)

// ActionTypes holds the three action types of a three-phase event.
type ActionTypes struct {
	Request string `json:"request"`
	Success string `json:"success"`
	Failure string `json:"failure"`
}

// Get returns the action type for a phase.
func (t ActionTypes) Get(phase Phase) (string, bool) {
	switch phase {
	case PhaseRequest:
		return t.Request, true
	case PhaseSuccess:
		return t.Success, true
	case PhaseFailure:
		return t.Failure, true
	}
	return "", false
}

// Action is a message dispatched into a store.
//
// Actions formatted by a single-action event carry Type. Actions formatted
// by a three-phase event carry Types and Call instead, and are expanded by
// the middleware into request, success and failure actions.
type Action struct {
	// ID identifies this action. CausationID is the ID of the action that
	// caused it, set on chained re-dispatches.
	ID          string
	CausationID string

	Type  string
	Types *ActionTypes

	// ExtraData is the data the event was triggered with.
	ExtraData Data

	// ShouldDispatch gates the action against the current app state.
	ShouldDispatch ShouldDispatchFunc

	// Call is the opaque token for the asynchronous call of a three-phase
	// event. The core never invokes it.
	Call CallToken

	// Response and Err carry the outcome of Call on success and failure actions.
	Response any
	Err      error

	// Dispatch relays chained actions back into the store. It is attached
	// by the middleware.
	Dispatch DispatchFunc
}

// Get returns a value from the action's ExtraData.
func (a Action) Get(key string) (any, bool) {
	v, ok := a.ExtraData[key]
	return v, ok
}

// Reducer computes the next state slice for an action.
type Reducer func(state State, action Action) State

// ReducerMap maps state keys to reducers.
type ReducerMap map[string]Reducer

// DispatchFunc dispatches an action into a store.
type DispatchFunc func(action Action) any

// Dispatch implements Store.
func (f DispatchFunc) Dispatch(action Action) any {
	return f(action)
}

// Store is the part of a state container the helpers need.
type Store interface {
	Dispatch(action Action) any
}

// StoreAPI is what a middleware sees of a store.
type StoreAPI interface {
	Store
	GetState() AppState
}

// Middleware wraps a store's dispatch.
type Middleware func(api StoreAPI) func(next DispatchFunc) DispatchFunc

// mergeData returns base shallow-merged with over; keys in over win.
func mergeData(base Data, over State) Data {
	merged := make(Data, len(base)+len(over))
	maps.Copy(merged, base)
	for k, v := range over {
		merged[k] = v
	}
	return merged
}
