package middleware

import "github.com/randalmurphal/reduxevents/pkg/reduxevents"

// storeAPI is the view of the store handed to middlewares. Its Dispatch
// runs through the whole middleware chain.
type storeAPI struct {
	getState func() reduxevents.AppState
	dispatch reduxevents.DispatchFunc
}

func (a storeAPI) Dispatch(action reduxevents.Action) any { return a.dispatch(action) }

func (a storeAPI) GetState() reduxevents.AppState { return a.getState() }

// Apply wraps store's dispatch with mws and returns the resulting dispatch.
// The first middleware is the outermost. Middlewares dispatching through
// their StoreAPI re-enter the full chain.
func Apply(store reduxevents.StoreAPI, mws ...reduxevents.Middleware) reduxevents.DispatchFunc {
	var dispatch reduxevents.DispatchFunc = store.Dispatch

	api := storeAPI{
		getState: store.GetState,
		dispatch: func(action reduxevents.Action) any { return dispatch(action) },
	}

	chain := reduxevents.DispatchFunc(store.Dispatch)
	for i := len(mws) - 1; i >= 0; i-- {
		chain = mws[i](api)(chain)
	}
	dispatch = chain
	return dispatch
}
