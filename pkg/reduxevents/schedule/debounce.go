package schedule

import (
	"sync"
	"time"
)

// Debounce wraps fn with trailing-edge debounce semantics on s.
// Each call restarts the delay; fn runs once, with the argument of the
// last call, after delay passes without another call.
//
// The returned function owns one shared timer, so wrap once and reuse
// the result for every call that should coalesce.
func Debounce[T any](s Scheduler, fn func(T), delay time.Duration) func(T) {
	var (
		mu      sync.Mutex
		pending Timer
		lastArg T
	)

	return func(arg T) {
		mu.Lock()
		defer mu.Unlock()

		lastArg = arg
		if pending != nil {
			pending.Stop()
		}
		pending = s.Schedule(func() {
			mu.Lock()
			v := lastArg
			pending = nil
			mu.Unlock()

			fn(v)
		}, delay)
	}
}
