// Package schedule provides deferred-callback scheduling for reduxevents.
//
// Reducers never run side effects on the current call stack. After-hooks,
// chained re-dispatches, debounced triggers and middleware results are all
// handed to a Scheduler, which runs them on a later turn.
//
// Two implementations are provided:
//   - Loop runs callbacks serially on a single goroutine with real timers.
//   - Virtual runs callbacks only when the caller advances its clock, which
//     keeps ordering deterministic in tests.
package schedule

import "time"

// Scheduler defers callbacks to a later turn.
type Scheduler interface {
	// Schedule runs fn after delay has elapsed. A zero delay still defers
	// fn; it never runs before Schedule returns.
	Schedule(fn func(), delay time.Duration) Timer
}

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running.
	// Returns false if the callback already ran or was stopped.
	Stop() bool
}

// Func adapts a function to the Scheduler interface.
type Func func(fn func(), delay time.Duration) Timer

// Schedule implements Scheduler.
func (f Func) Schedule(fn func(), delay time.Duration) Timer {
	return f(fn, delay)
}
