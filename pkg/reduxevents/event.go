package reduxevents

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/randalmurphal/reduxevents/pkg/reduxevents/observability"
	"github.com/randalmurphal/reduxevents/pkg/reduxevents/schedule"
)

// DefaultDebounceDelay is used when debounce is enabled without a delay.
const DefaultDebounceDelay = 300 * time.Millisecond

// Kind selects the variant of an event.
type Kind int

// Event kinds.
const (
	// KindEvent has one action type and one transition.
	KindEvent Kind = iota
	// KindHTTP has request, success and failure action types.
	KindHTTP
)

// String returns the kind name used in logs and declarations.
func (k Kind) String() string {
	switch k {
	case KindEvent:
		return "event"
	case KindHTTP:
		return "http"
	}
	return "unknown"
}

// Subscription makes an event re-dispatch itself when another event's
// action passes through the reducers.
type Subscription struct {
	// Event is the name of the event listened to. It is looked up in the
	// registry when actions arrive, so it may be declared later.
	Event string `json:"event" yaml:"event"`

	// TriggerOn selects which action type of a three-phase target triggers
	// the re-dispatch. Single-action targets always trigger on their one
	// action type.
	TriggerOn Phase `json:"triggerOn" yaml:"triggerOn"`

	// AutocompleteCallArgs merges the listener's last call arguments under
	// the target's state when re-dispatching.
	AutocompleteCallArgs bool `json:"autocompleteCallArgs" yaml:"autocompleteCallArgs"`
}

// Config is the declarative description of an event.
type Config struct {
	Name    string
	Manager *Manager

	// UseDataFrom registers the event's reducer under another event's name
	// so both mutate one state slice.
	UseDataFrom string

	// Debounce coalesces rapid triggers into one trailing call after
	// DebounceDelay (default DefaultDebounceDelay).
	Debounce      bool
	DebounceDelay time.Duration

	ListenTo []Subscription
}

// Event binds a Manager to derived action types, a reducer, an action
// formatter and UI bindings.
type Event struct {
	name          string
	kind          Kind
	manager       *Manager
	useDataFrom   string
	debounce      bool
	debounceDelay time.Duration
	listenTo      []Subscription

	// Derived once at construction.
	reducerName string
	reducers    ActionTypes

	registry  *Registry
	scheduler schedule.Scheduler
	connect   ConnectFunc
	logger    *slog.Logger
	metrics   observability.MetricsRecorder
	newID     func() string

	// trigger dispatches formatted data, debounced when configured.
	trigger func(Data)

	// Cells below are written only by the event's own reducer, formatter
	// and dispatch binding.
	mu              sync.RWMutex
	state           State
	cachedArgs      Data
	dispatch        DispatchFunc
	reportedMissing map[string]bool
}

// New creates a single-action event.
//
// Example:
//
//	counter, err := reduxevents.New(&reduxevents.Config{
//	    Name: "incrementCounter",
//	    Manager: &reduxevents.Manager{
//	        InitialState: reduxevents.State{"count": 0},
//	        OnDispatch: func(s reduxevents.State, a reduxevents.Action) reduxevents.State {
//	            return reduxevents.State{"count": s["count"].(int) + 1}
//	        },
//	    },
//	})
//	// counter.ReducerName() == "INCREMENT_COUNTER"
func New(cfg *Config, opts ...Option) (*Event, error) {
	return newEvent(KindEvent, cfg, opts)
}

// NewHTTP creates a three-phase event whose trigger produces an
// asynchronous call and whose reducer handles request, success and failure.
func NewHTTP(cfg *Config, opts ...Option) (*Event, error) {
	return newEvent(KindHTTP, cfg, opts)
}

// NewRequest is NewHTTP under the name used for non-HTTP asynchronous calls.
func NewRequest(cfg *Config, opts ...Option) (*Event, error) {
	return NewHTTP(cfg, opts...)
}

// MustNew is like New but panics on error.
func MustNew(cfg *Config, opts ...Option) *Event {
	e, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// MustNewHTTP is like NewHTTP but panics on error.
func MustNewHTTP(cfg *Config, opts ...Option) *Event {
	e, err := NewHTTP(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

func newEvent(kind Kind, cfg *Config, opts []Option) (*Event, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.scheduler == nil {
		o.scheduler = DefaultScheduler()
	}

	e := &Event{
		name:          cfg.Name,
		kind:          kind,
		manager:       cfg.Manager,
		useDataFrom:   cfg.UseDataFrom,
		debounce:      cfg.Debounce,
		debounceDelay: cfg.DebounceDelay,
		listenTo:      slices.Clone(cfg.ListenTo),
		registry:      o.registry,
		scheduler:     o.scheduler,
		connect:       o.connect,
		logger:        observability.EnrichLogger(o.logger, cfg.Name, kind.String()),
		metrics:       o.metrics,
		newID:         o.newID,
		state:         cfg.Manager.InitialState,
	}

	switch kind {
	case KindEvent:
		e.reducerName = FormatName(e.name)
	case KindHTTP:
		e.reducers = phaseTypes(e.name)
	}

	e.trigger = e.send
	if e.debounce {
		if e.debounceDelay == 0 {
			e.debounceDelay = DefaultDebounceDelay
		}
		debounce := o.debounce
		if debounce == nil {
			debounce = func(fn func(Data), delay time.Duration) func(Data) {
				return schedule.Debounce(e.scheduler, fn, delay)
			}
		}
		e.trigger = debounce(e.send, e.debounceDelay)
	}

	e.registry.Register(e)
	return e, nil
}

func validateConfig(cfg *Config) error {
	if cfg == nil {
		return &ConfigError{Op: "new", Err: ErrNoParameters}
	}
	if cfg.Name == "" {
		return &ConfigError{Op: "new", Err: ErrMissingName}
	}
	if cfg.Manager == nil {
		return &ConfigError{Event: cfg.Name, Op: "new", Err: ErrMissingManager}
	}
	for _, sub := range cfg.ListenTo {
		if sub.Event == "" || sub.TriggerOn == "" {
			return &ConfigError{Event: cfg.Name, Op: "new", Err: ErrInvalidListenTo}
		}
	}
	if cfg.Debounce && cfg.DebounceDelay < 0 {
		return &ConfigError{Event: cfg.Name, Op: "new", Err: ErrInvalidDebounceDelay}
	}
	return nil
}

// Name returns the event name.
func (e *Event) Name() string { return e.name }

// Kind returns the event variant.
func (e *Event) Kind() Kind { return e.kind }

// Manager returns the event's manager.
func (e *Event) Manager() *Manager { return e.manager }

// UseDataFrom returns the name of the event whose state slice this event shares.
func (e *Event) UseDataFrom() string { return e.useDataFrom }

// Debounce reports whether triggers are debounced, and the delay.
func (e *Event) Debounce() (bool, time.Duration) { return e.debounce, e.debounceDelay }

// ListenTo returns a copy of the event's subscriptions.
func (e *Event) ListenTo() []Subscription { return slices.Clone(e.listenTo) }

// ReducerName returns the action type of a single-action event.
// Three-phase events have none.
func (e *Event) ReducerName() (string, bool) {
	return e.reducerName, e.kind == KindEvent
}

// Reducers returns the action types of a three-phase event.
// Single-action events have none.
func (e *Event) Reducers() (ActionTypes, bool) {
	return e.reducers, e.kind == KindHTTP
}

// TriggerType returns the action type that a subscription with the given
// phase reacts to on this event.
func (e *Event) TriggerType(phase Phase) (string, bool) {
	if e.kind == KindEvent {
		return e.reducerName, true
	}
	return e.reducers.Get(phase)
}

// State returns a copy of the state this event last produced.
// Before any matching action it is the manager's initial state.
func (e *Event) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return maps.Clone(e.state)
}

// CachedArgs returns a copy of the data last passed to ToRedux.
func (e *Event) CachedArgs() Data {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return maps.Clone(e.cachedArgs)
}

// StateKey returns the key the event's reducer is registered under:
// UseDataFrom when set, the event name otherwise.
func (e *Event) StateKey() string {
	if e.useDataFrom != "" {
		return e.useDataFrom
	}
	return e.name
}

// CreateReducers returns a one-entry map from StateKey to the event's reducer.
func (e *Event) CreateReducers() ReducerMap {
	return ReducerMap{e.StateKey(): e.Reducer()}
}

// Reducer returns the event's reducer. A nil state is replaced by the
// manager's initial state. The chaining protocol runs on every call,
// whether or not the action belonged to this event.
func (e *Event) Reducer() Reducer {
	reduce := variantOf(e.kind).reduce
	return func(state State, action Action) State {
		if state == nil {
			state = e.manager.InitialState
		}
		return reduce(e, state, action)
	}
}

// ToRedux formats data into the action this event dispatches, and caches
// data as the event's last call arguments.
func (e *Event) ToRedux(data Data) Action {
	e.mu.Lock()
	e.cachedArgs = data
	e.mu.Unlock()

	action := variantOf(e.kind).format(e, data)
	action.ID = e.newID()
	return action
}

// Trigger formats data and dispatches it through the dispatch function
// bound by BindDispatchToProps. Debounced events coalesce bursts of calls.
func (e *Event) Trigger(data Data) {
	e.trigger(data)
}

// send is the undebounced trigger.
func (e *Event) send(data Data) {
	e.mu.RLock()
	dispatch := e.dispatch
	e.mu.RUnlock()

	if dispatch == nil {
		observability.LogTriggerDropped(e.logger, e.name)
		return
	}
	dispatch(e.ToRedux(data))
}

// commit stores the state produced by the reducer.
func (e *Event) commit(next State) {
	e.mu.Lock()
	e.state = next
	e.mu.Unlock()
}

// after schedules hook on a later turn.
func (e *Event) after(hook Hook, prev, next State) {
	if hook == nil {
		return
	}
	e.scheduler.Schedule(func() { hook(prev, next) }, 0)
}

// mustTransition returns t or panics with a *ConfigError naming the phase.
func (e *Event) mustTransition(t Transition, phase Phase) Transition {
	if t == nil {
		panic(&ConfigError{Event: e.name, Op: "reduce " + string(phase), Err: ErrMissingTransition})
	}
	return t
}

func (e *Event) recordReduce(actionType string, matched bool) {
	e.metrics.RecordReduce(context.Background(), e.name, actionType, matched)
}
