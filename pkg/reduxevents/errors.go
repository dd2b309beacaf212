package reduxevents

import (
	"errors"
	"fmt"
)

// Sentinel errors for event construction.
var (
	// ErrNoParameters indicates New was called with a nil Config.
	ErrNoParameters = errors.New("an event must not be initialized without parameters")

	// ErrMissingName indicates the Config has no event name.
	ErrMissingName = errors.New("an event must be initialized with an event name")

	// ErrMissingManager indicates the Config has no Manager.
	ErrMissingManager = errors.New("an event must be initialized with a manager")

	// ErrInvalidListenTo indicates a subscription without an event name or trigger phase.
	ErrInvalidListenTo = errors.New("listenTo entries need an event name and a triggerOn phase")

	// ErrInvalidDebounceDelay indicates debounce is enabled with an unusable delay.
	ErrInvalidDebounceDelay = errors.New("debounceDelay must be a non-negative number when debounce is enabled")

	// ErrMissingTransition indicates a reducer needed a manager transition that is nil.
	ErrMissingTransition = errors.New("manager has no transition for this phase")

	// ErrMissingCall indicates a three-phase action reached the middleware without a call token.
	ErrMissingCall = errors.New("manager has no call function")
)

// Sentinel errors for component binding.
var (
	// ErrMissingComponent indicates Register was called without a component.
	ErrMissingComponent = errors.New("a component must be passed when registering it to an event")

	// ErrMissingConnect indicates Register was called on an event without a connect function.
	ErrMissingConnect = errors.New("no connect function configured")

	// ErrUseDataFromWithProps indicates props were requested from an event that owns no state.
	ErrUseDataFromWithProps = errors.New("an event configured with useDataFrom has an empty state, bind props on the event named in useDataFrom instead")
)

// Sentinel errors for helpers.
var (
	// ErrMissingEvent indicates a helper was called without an event.
	ErrMissingEvent = errors.New("an event is required")

	// ErrMissingFormatter indicates the event passed has no ToRedux formatter.
	ErrMissingFormatter = errors.New("the event needs a ToRedux formatter, was the correct event passed")

	// ErrMissingStore indicates a helper was called without a store.
	ErrMissingStore = errors.New("a store is required")

	// ErrMissingDispatch indicates the store passed has no dispatch function.
	ErrMissingDispatch = errors.New("the store has no dispatch function, was the correct store passed")

	// ErrMissingAppState indicates a helper was called without app state.
	ErrMissingAppState = errors.New("app state is required")

	// ErrEventNotFound indicates a referenced event name is not known.
	ErrEventNotFound = errors.New("event not found")
)

// ConfigError reports invalid or missing configuration.
type ConfigError struct {
	// Event is the name of the event being configured, if known.
	Event string
	// Op is the operation that failed ("new", "register", "bind", "dispatch", ...).
	Op string
	// Err is the underlying sentinel.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Event != "" {
		return fmt.Sprintf("event %s: %s: %v", e.Event, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a reference to an event that does not exist.
type NotFoundError struct {
	// Name is the missing event name.
	Name string
	// Referrer is the event holding the reference, if known.
	Referrer string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Referrer != "" {
		return fmt.Sprintf("event %s not found (referenced by %s)", e.Name, e.Referrer)
	}
	return fmt.Sprintf("event %s not found", e.Name)
}

// Unwrap returns ErrEventNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrEventNotFound
}
