package reduxevents

// Formatter turns trigger data into an action. *Event implements it.
type Formatter interface {
	ToRedux(data Data) Action
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(data Data) Action

// ToRedux implements Formatter.
func (f FormatterFunc) ToRedux(data Data) Action {
	return f(data)
}

// DispatchEvent formats data with ev and dispatches it into store,
// returning whatever the store's dispatch returns.
func DispatchEvent(ev Formatter, store Store, data Data) (any, error) {
	switch f := ev.(type) {
	case nil:
		return nil, &ConfigError{Op: "dispatch", Err: ErrMissingEvent}
	case *Event:
		if f == nil {
			return nil, &ConfigError{Op: "dispatch", Err: ErrMissingEvent}
		}
	case FormatterFunc:
		if f == nil {
			return nil, &ConfigError{Op: "dispatch", Err: ErrMissingFormatter}
		}
	}

	switch s := store.(type) {
	case nil:
		return nil, &ConfigError{Op: "dispatch", Err: ErrMissingStore}
	case DispatchFunc:
		if s == nil {
			return nil, &ConfigError{Op: "dispatch", Err: ErrMissingDispatch}
		}
	}

	return store.Dispatch(ev.ToRedux(data)), nil
}

// CurrentStateFromEvent returns the event's slice of appState.
func CurrentStateFromEvent(ev *Event, appState AppState) (State, error) {
	if ev == nil {
		return nil, &ConfigError{Op: "current state", Err: ErrMissingEvent}
	}
	if appState == nil {
		return nil, &ConfigError{Event: ev.name, Op: "current state", Err: ErrMissingAppState}
	}
	return appState[ev.name], nil
}

// CombineEventReducers merges the reducers of events into one map.
//
// Events without UseDataFrom contribute their own reducer under their
// name. Events with UseDataFrom are grouped by target; each group is
// folded with the target event's reducer into one reducer under the
// target's name, applying the target first and then the group in order.
// A target missing from events is a *NotFoundError.
func CombineEventReducers(events ...*Event) (ReducerMap, error) {
	combined := make(ReducerMap, len(events))
	groups := make(map[string][]*Event)
	var targets []string

	for _, e := range events {
		if e == nil {
			continue
		}
		if e.useDataFrom == "" {
			combined[e.name] = e.Reducer()
			continue
		}
		if _, seen := groups[e.useDataFrom]; !seen {
			targets = append(targets, e.useDataFrom)
		}
		groups[e.useDataFrom] = append(groups[e.useDataFrom], e)
	}

	for _, target := range targets {
		base := findEvent(events, target)
		if base == nil {
			return nil, &NotFoundError{Name: target, Referrer: groups[target][0].name}
		}

		maps := []ReducerMap{base.CreateReducers()}
		for _, satellite := range groups[target] {
			maps = append(maps, satellite.CreateReducers())
		}
		combined[target] = combineConflictingReducers(maps)
	}

	return combined, nil
}

func findEvent(events []*Event, name string) *Event {
	for _, e := range events {
		if e != nil && e.name == name {
			return e
		}
	}
	return nil
}

// combineConflictingReducers takes the sole reducer of each map, in order,
// and returns a reducer threading state through all of them.
func combineConflictingReducers(maps []ReducerMap) Reducer {
	reducers := make([]Reducer, 0, len(maps))
	for _, m := range maps {
		for _, r := range m {
			reducers = append(reducers, r)
			break
		}
	}

	return func(state State, action Action) State {
		for _, r := range reducers {
			state = r(state, action)
		}
		return state
	}
}
