/*
Package reduxevents declares events that produce Redux-style reducers,
action creators and UI bindings from a single description.

# Overview

An Event wraps a Manager, which holds the initial state and the state
transitions of one slice of the application state. From the event's name
the package derives action types, a reducer keyed into the state tree, a
formatter turning trigger data into actions, and functions connecting a
component to the slice.

Two variants exist:
  - New builds a single-action event with one action type.
  - NewHTTP (alias NewRequest) builds a three-phase event whose actions
    carry an asynchronous call and whose reducer handles the request,
    success and failure action types.

# Basic Usage

	clock := schedule.NewVirtual()
	counter, err := reduxevents.New(&reduxevents.Config{
	    Name: "incrementCounter",
	    Manager: &reduxevents.Manager{
	        InitialState: reduxevents.State{"count": 0},
	        OnDispatch: func(s reduxevents.State, a reduxevents.Action) reduxevents.State {
	            return reduxevents.State{"count": s["count"].(int) + 1}
	        },
	    },
	}, reduxevents.WithScheduler(clock))
	if err != nil {
	    log.Fatal(err)
	}

	reducers := counter.CreateReducers()
	// reducers["incrementCounter"] handles actions of type INCREMENT_COUNTER

# Chaining

An event can listen to another event's action types. Whenever any of its
reducers sees a matching action it schedules a re-dispatch of itself,
built from the target's state:

	reduxevents.New(&reduxevents.Config{
	    Name:    "refreshTotals",
	    Manager: totalsManager,
	    ListenTo: []reduxevents.Subscription{
	        {Event: "fetchOrders", TriggerOn: reduxevents.PhaseSuccess},
	    },
	})

Subscriptions name their target; targets are looked up in the event's
Registry when actions arrive. Registry.Resolve reports dangling names.
Re-dispatches go through the action's Dispatch field, which the
middleware package attaches to every action.

# Shared State

An event configured with UseDataFrom registers its reducer under another
event's name. CombineEventReducers folds all such events into one reducer
per shared slice.

# Scheduling

After-hooks, chained re-dispatches and debounced triggers run on a later
turn of the event's schedule.Scheduler. The default is a process-wide
schedule.Loop; tests use schedule.Virtual to control time.
*/
package reduxevents
