package reduxevents

import "slices"

// Component is an opaque UI component.
type Component any

// Props are the values a connected component receives.
type Props map[string]any

// MapStateFunc selects props from the app state.
type MapStateFunc func(appState AppState) Props

// TriggerFunc triggers an event with data.
type TriggerFunc func(data Data)

// MapDispatchFunc builds the trigger props from a store's dispatch.
type MapDispatchFunc func(dispatch DispatchFunc) map[string]TriggerFunc

// Binding describes a component to connect to an event.
type Binding struct {
	Component Component
	// Props are the keys of the event's state slice passed to the component.
	Props []string
}

// EventPropKey is the prop under which a connected component receives
// the event itself.
func EventPropKey(name string) string {
	return "_event_" + name
}

// Register connects b.Component to the event: its props are read from the
// event's state slice and it receives a trigger named after the event.
func (e *Event) Register(b Binding) (Component, error) {
	if b.Component == nil {
		return nil, &ConfigError{Event: e.name, Op: "register", Err: ErrMissingComponent}
	}
	if e.connect == nil {
		return nil, &ConfigError{Event: e.name, Op: "register", Err: ErrMissingConnect}
	}

	mapState, err := e.BindDataToProps(b.Props)
	if err != nil {
		return nil, err
	}
	return e.connect(mapState, e.BindDispatchToProps)(b.Component), nil
}

// BindDataToProps returns a state mapper exposing the event under
// EventPropKey and each key of its state slice.
//
// Events with UseDataFrom own no state slice, so asking them for keys is
// a configuration error.
func (e *Event) BindDataToProps(keys []string) (MapStateFunc, error) {
	if e.useDataFrom != "" && len(keys) > 0 {
		return nil, &ConfigError{Event: e.name, Op: "bind", Err: ErrUseDataFromWithProps}
	}

	keys = slices.Clone(keys)
	return func(appState AppState) Props {
		props := make(Props, len(keys)+1)
		props[EventPropKey(e.name)] = e

		slice := appState[e.name]
		for _, key := range keys {
			props[key] = slice[key]
		}
		return props
	}, nil
}

// BindDispatchToProps records dispatch as the event's dispatch target and
// returns the event's trigger keyed by the event name.
func (e *Event) BindDispatchToProps(dispatch DispatchFunc) map[string]TriggerFunc {
	e.mu.Lock()
	e.dispatch = dispatch
	e.mu.Unlock()

	return map[string]TriggerFunc{e.name: e.Trigger}
}
