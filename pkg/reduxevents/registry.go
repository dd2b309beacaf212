package reduxevents

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Registry maps event names to events. Chaining looks subscription targets
// up here, which lets events reference each other regardless of the order
// they are built in.
type Registry struct {
	mu     sync.RWMutex
	events map[string]*Event
	order  []string // registration order of names
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		events: make(map[string]*Event),
	}
}

// DefaultRegistry is the registry events join when built without WithRegistry.
var DefaultRegistry = NewRegistry()

// Register adds an event. An event with the same name is replaced.
func (r *Registry) Register(e *Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[e.name]; !exists {
		r.order = append(r.order, e.name)
	}
	r.events[e.name] = e
}

// Lookup returns the event registered under name.
func (r *Registry) Lookup(name string) (*Event, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[name]
	return e, ok
}

// MustLookup returns the event registered under name, panicking if absent.
func (r *Registry) MustLookup(name string) *Event {
	e, ok := r.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("reduxevents: %v", &NotFoundError{Name: name}))
	}
	return e
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Events returns the registered events in registration order.
func (r *Registry) Events() []*Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]*Event, 0, len(r.order))
	for _, name := range r.order {
		events = append(events, r.events[name])
	}
	return events
}

// Len returns the number of registered events.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}

// Range calls fn for each event in registration order until fn returns false.
// It iterates over a snapshot, so fn may register events.
func (r *Registry) Range(fn func(*Event) bool) {
	for _, e := range r.Events() {
		if !fn(e) {
			return
		}
	}
}

// Resolve checks that every subscription target and every UseDataFrom
// target is registered. All missing references are reported, joined.
func (r *Registry) Resolve() error {
	var errs []error
	for _, e := range r.Events() {
		if e.useDataFrom != "" {
			if _, ok := r.Lookup(e.useDataFrom); !ok {
				errs = append(errs, &NotFoundError{Name: e.useDataFrom, Referrer: e.name})
			}
		}
		for _, sub := range e.listenTo {
			if _, ok := r.Lookup(sub.Event); !ok {
				errs = append(errs, &NotFoundError{Name: sub.Event, Referrer: e.name})
			}
		}
	}
	return errors.Join(errs...)
}

// CombineReducers resolves the registry and combines the reducers of all
// registered events.
func (r *Registry) CombineReducers() (ReducerMap, error) {
	if err := r.Resolve(); err != nil {
		return nil, err
	}
	return CombineEventReducers(r.Events()...)
}
