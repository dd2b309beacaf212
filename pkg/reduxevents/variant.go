package reduxevents

// variant is the behavior that differs between event kinds.
type variant struct {
	format func(e *Event, data Data) Action
	reduce func(e *Event, state State, action Action) State
}

// variantOf returns the behavior table for a kind.
func variantOf(k Kind) variant {
	if k == KindHTTP {
		return variant{format: formatHTTP, reduce: reduceHTTP}
	}
	return variant{format: formatSingle, reduce: reduceSingle}
}

func formatSingle(e *Event, data Data) Action {
	return Action{
		Type:           e.reducerName,
		ShouldDispatch: e.manager.shouldDispatch(),
		ExtraData:      data,
	}
}

func formatHTTP(e *Event, data Data) Action {
	types := e.reducers
	action := Action{
		Types:          &types,
		ExtraData:      data,
		ShouldDispatch: e.manager.shouldDispatch(),
	}
	if e.manager.Call != nil {
		action.Call = e.manager.Call(data)
	}
	return action
}

func reduceSingle(e *Event, state State, action Action) State {
	if action.Type != e.reducerName {
		e.recordReduce(action.Type, false)
		e.chainEvents(action)
		return state
	}

	e.recordReduce(action.Type, true)
	next := e.mustTransition(e.manager.OnDispatch, PhaseDispatch)(state, action)
	e.after(e.manager.AfterDispatch, state, next)
	e.commit(next)
	e.chainEvents(action)
	return next
}

// reduceHTTP checks each phase independently rather than as exclusive
// branches.
func reduceHTTP(e *Event, state State, action Action) State {
	m := e.manager
	next := state
	matched := false

	if action.Type == e.reducers.Request {
		matched = true
		next = e.mustTransition(m.OnDispatch, PhaseRequest)(state, action)
	}

	if action.Type == e.reducers.Success {
		matched = true
		next = e.mustTransition(m.OnSuccess, PhaseSuccess)(state, action)
		e.after(m.AfterSuccess, state, next)
	}

	if action.Type == e.reducers.Failure {
		matched = true
		next = e.mustTransition(m.OnFailure, PhaseFailure)(state, action)
		e.after(m.AfterFailure, state, next)
	}

	e.recordReduce(action.Type, matched)
	e.commit(next)
	e.chainEvents(action)
	return next
}
