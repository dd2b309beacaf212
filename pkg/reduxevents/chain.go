package reduxevents

import (
	"context"

	"github.com/randalmurphal/reduxevents/pkg/reduxevents/observability"
)

// chainEvents schedules a re-dispatch of this event for every subscription
// whose target action type matches action.
//
// Targets are looked up when the action arrives, so subscriptions may name
// events built later. The target's state is read when the re-dispatch
// runs, after the current reduction has settled; the cached call arguments
// are captured now. Cycles between events are not detected.
func (e *Event) chainEvents(action Action) {
	if len(e.listenTo) == 0 {
		return
	}

	cached := e.CachedArgs()
	for _, sub := range e.listenTo {
		target, ok := e.registry.Lookup(sub.Event)
		if !ok {
			e.reportMissing(sub.Event)
			continue
		}

		actionType, ok := target.TriggerType(sub.TriggerOn)
		if !ok || action.Type != actionType {
			continue
		}

		observability.LogChainScheduled(e.logger, target.name, actionType, sub.AutocompleteCallArgs)
		e.scheduler.Schedule(e.redispatch(sub, target, cached, action), 0)
	}
}

// redispatch builds the deferred re-dispatch for one matched subscription.
func (e *Event) redispatch(sub Subscription, target *Event, cached Data, cause Action) func() {
	relay := cause.Dispatch
	return func() {
		var data Data
		if sub.AutocompleteCallArgs {
			data = mergeData(cached, target.State())
		} else {
			data = Data(target.State())
		}

		payload := e.ToRedux(data)
		payload.CausationID = cause.ID

		if relay == nil {
			observability.LogChainSkipped(e.logger, target.name, "triggering action has no relay dispatch")
			return
		}
		e.metrics.RecordChainDispatch(context.Background(), e.name, target.name)
		relay(payload)
	}
}

// reportMissing logs an unresolvable subscription once per target.
func (e *Event) reportMissing(target string) {
	e.mu.Lock()
	if e.reportedMissing == nil {
		e.reportedMissing = make(map[string]bool)
	}
	seen := e.reportedMissing[target]
	e.reportedMissing[target] = true
	e.mu.Unlock()

	if !seen {
		observability.LogChainSkipped(e.logger, target, "event not registered")
	}
}
