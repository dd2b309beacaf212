package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/randalmurphal/reduxevents/pkg/reduxevents"
)

// Sentinel errors for declarations.
var (
	// ErrUnknownKind indicates a declaration with a kind other than
	// "event", "http" or "request".
	ErrUnknownKind = errors.New("unknown event kind")

	// ErrUnknownManager indicates a declaration naming a manager that was
	// not supplied to Build.
	ErrUnknownManager = errors.New("unknown manager")

	errNotDuration = errors.New("not a duration")
)

// Declaration is the declarative description of one event. Managers hold
// code, so a declaration refers to its manager by name.
type Declaration struct {
	Name          string
	Kind          reduxevents.Kind
	Manager       string
	UseDataFrom   string
	Debounce      bool
	DebounceDelay time.Duration
	ListenTo      []reduxevents.Subscription
}

// Declarations reads the "events" list of a document:
//
//	events:
//	  - name: fetchOrders
//	    kind: http
//	  - name: search
//	    debounce: true
//	    debounceDelay: 250ms   # or 250 (milliseconds)
//	    listenTo:
//	      - event: fetchOrders
//	        triggerOn: success
//	        autocompleteCallArgs: true
//
// manager defaults to the event name and kind to "event".
func Declarations(cfg Config) ([]Declaration, error) {
	entries := cfg.List("events")
	decls := make([]Declaration, 0, len(entries))

	for _, entry := range entries {
		decl, err := parseDeclaration(entry)
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

func parseDeclaration(c Config) (Declaration, error) {
	name := c.String("name", "")
	if name == "" {
		return Declaration{}, &reduxevents.ConfigError{Op: "declare", Err: reduxevents.ErrMissingName}
	}

	decl := Declaration{
		Name:        name,
		Manager:     c.String("manager", name),
		UseDataFrom: c.String("useDataFrom", ""),
		Debounce:    c.Bool("debounce", false),
	}

	switch kind := c.String("kind", "event"); kind {
	case "event":
		decl.Kind = reduxevents.KindEvent
	case "http", "request":
		decl.Kind = reduxevents.KindHTTP
	default:
		return Declaration{}, &reduxevents.ConfigError{
			Event: name,
			Op:    "declare",
			Err:   fmt.Errorf("%w %q", ErrUnknownKind, kind),
		}
	}

	delay, err := c.duration("debounceDelay")
	if err != nil {
		return Declaration{}, &reduxevents.ConfigError{Event: name, Op: "declare", Err: reduxevents.ErrInvalidDebounceDelay}
	}
	if delay != nil {
		decl.DebounceDelay = *delay
	}

	for _, sub := range c.List("listenTo") {
		decl.ListenTo = append(decl.ListenTo, reduxevents.Subscription{
			Event:                sub.String("event", ""),
			TriggerOn:            reduxevents.Phase(sub.String("triggerOn", "")),
			AutocompleteCallArgs: sub.Bool("autocompleteCallArgs", false),
		})
	}

	return decl, nil
}

// Config converts the declaration into an event Config using m.
func (d Declaration) Config(m *reduxevents.Manager) *reduxevents.Config {
	return &reduxevents.Config{
		Name:          d.Name,
		Manager:       m,
		UseDataFrom:   d.UseDataFrom,
		Debounce:      d.Debounce,
		DebounceDelay: d.DebounceDelay,
		ListenTo:      d.ListenTo,
	}
}

// Build creates the declared events in order, looking managers up by name.
// Event options apply to every event.
func Build(decls []Declaration, managers map[string]*reduxevents.Manager, opts ...reduxevents.Option) ([]*reduxevents.Event, error) {
	events := make([]*reduxevents.Event, 0, len(decls))

	for _, d := range decls {
		m, ok := managers[d.Manager]
		if !ok {
			return nil, &reduxevents.ConfigError{
				Event: d.Name,
				Op:    "build",
				Err:   fmt.Errorf("%w %q", ErrUnknownManager, d.Manager),
			}
		}

		var (
			ev  *reduxevents.Event
			err error
		)
		switch d.Kind {
		case reduxevents.KindHTTP:
			ev, err = reduxevents.NewHTTP(d.Config(m), opts...)
		default:
			ev, err = reduxevents.New(d.Config(m), opts...)
		}
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}
