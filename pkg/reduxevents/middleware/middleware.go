// Package middleware provides the store middleware that drives
// reduxevents actions.
//
// The middleware attaches the store's dispatch to every action so that
// chained events can re-dispatch, drops actions whose ShouldDispatch
// predicate rejects the current state, and expands three-phase actions
// into request, success and failure actions around their call.
//
// Example:
//
//	dispatch := middleware.Apply(store, middleware.New(
//	    middleware.WithLogger(logger),
//	    middleware.WithSpanManager(observability.NewSpanManager()),
//	))
//	dispatch(fetchUser.ToRedux(reduxevents.Data{"id": 7}))
package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/randalmurphal/reduxevents/pkg/reduxevents"
	"github.com/randalmurphal/reduxevents/pkg/reduxevents/observability"
)

// PanicError is the error of a call that panicked.
type PanicError struct {
	RequestType string
	Value       any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("call for %s panicked: %v", e.RequestType, e.Value)
}

// Pending is returned by dispatch for a three-phase action.
type Pending struct {
	// Request is the request action that was dispatched.
	Request reduxevents.Action

	done     chan struct{}
	response any
	err      error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// Done is closed once the call has finished and its success or failure
// action has been scheduled.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the call finishes and returns its outcome.
func (p *Pending) Wait(ctx context.Context) (any, error) {
	select {
	case <-p.done:
		return p.response, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *Pending) resolve(response any, err error) {
	p.response, p.err = response, err
	close(p.done)
}

// New creates the events middleware.
func New(opts ...Option) reduxevents.Middleware {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.resolve()

	return func(api reduxevents.StoreAPI) func(next reduxevents.DispatchFunc) reduxevents.DispatchFunc {
		return func(next reduxevents.DispatchFunc) reduxevents.DispatchFunc {
			return func(action reduxevents.Action) any {
				if action.Dispatch == nil {
					action.Dispatch = api.Dispatch
				}

				if action.ShouldDispatch != nil && !action.ShouldDispatch(api.GetState()) {
					observability.LogActionGated(o.logger, actionLabel(action))
					return nil
				}

				if action.Types == nil {
					return next(action)
				}
				return o.run(api, action)
			}
		}
	}
}

// run dispatches the request action, then performs the call in the
// background and schedules the success or failure action.
func (o *options) run(api reduxevents.StoreAPI, payload reduxevents.Action) *Pending {
	types := *payload.Types
	p := newPending()

	p.Request = o.derive(payload, types.Request)
	api.Dispatch(p.Request)

	if payload.Call == nil {
		o.settle(api, p, payload, nil, reduxevents.ErrMissingCall, 0)
		return p
	}

	go func() {
		ctx, span := o.spans.StartCallSpan(o.ctx, types.Request, payload.ID)
		observability.LogAPICallStart(o.logger, types.Request)

		elapsed := observability.TimedOperation()
		response, err := invoke(ctx, types.Request, payload.Call)
		ms := elapsed()

		o.spans.EndSpanWithError(span, err)
		o.metrics.RecordAPICall(ctx, types.Request, time.Duration(ms*float64(time.Millisecond)), err)
		o.settle(api, p, payload, response, err, ms)
	}()
	return p
}

// settle schedules the outcome action and resolves p.
func (o *options) settle(api reduxevents.StoreAPI, p *Pending, payload reduxevents.Action, response any, err error, ms float64) {
	types := *payload.Types

	var outcome reduxevents.Action
	if err != nil {
		observability.LogAPICallError(o.logger, types.Failure, err, ms)
		outcome = o.derive(payload, types.Failure)
		outcome.Err = err
	} else {
		observability.LogAPICallComplete(o.logger, types.Success, ms)
		outcome = o.derive(payload, types.Success)
		outcome.Response = response
	}

	o.scheduler.Schedule(func() { api.Dispatch(outcome) }, 0)
	p.resolve(response, err)
}

// derive builds one phase action of a three-phase payload.
func (o *options) derive(payload reduxevents.Action, actionType string) reduxevents.Action {
	return reduxevents.Action{
		ID:          o.newID(),
		CausationID: payload.ID,
		Type:        actionType,
		ExtraData:   payload.ExtraData,
		Dispatch:    payload.Dispatch,
	}
}

func invoke(ctx context.Context, requestType string, call reduxevents.CallToken) (response any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{RequestType: requestType, Value: r}
		}
	}()
	return call(ctx)
}

func actionLabel(a reduxevents.Action) string {
	if a.Types != nil {
		return a.Types.Request
	}
	return a.Type
}
