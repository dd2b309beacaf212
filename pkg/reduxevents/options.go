package reduxevents

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/randalmurphal/reduxevents/pkg/reduxevents/observability"
	"github.com/randalmurphal/reduxevents/pkg/reduxevents/schedule"
)

// DebounceFunc wraps a trigger with trailing-edge debounce semantics.
type DebounceFunc func(fn func(Data), delay time.Duration) func(Data)

// ConnectFunc binds state and dispatch mappers to a UI component.
type ConnectFunc func(mapState MapStateFunc, mapDispatch MapDispatchFunc) func(Component) Component

// eventOptions holds the runtime wiring of an event.
type eventOptions struct {
	registry  *Registry
	scheduler schedule.Scheduler
	debounce  DebounceFunc
	connect   ConnectFunc
	logger    *slog.Logger
	metrics   observability.MetricsRecorder
	newID     func() string
}

// Option configures the runtime wiring of an event.
type Option func(*eventOptions)

// WithRegistry sets the registry the event is registered in and resolves
// its subscriptions against.
// Default: DefaultRegistry
func WithRegistry(r *Registry) Option {
	return func(o *eventOptions) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithScheduler sets the scheduler for after-hooks, chained dispatches and
// the default debounce.
// Default: a process-wide schedule.Loop
//
// Tests pass a *schedule.Virtual to control time:
//
//	clock := schedule.NewVirtual()
//	ev, _ := reduxevents.New(cfg, reduxevents.WithScheduler(clock))
func WithScheduler(s schedule.Scheduler) Option {
	return func(o *eventOptions) {
		if s != nil {
			o.scheduler = s
		}
	}
}

// WithDebouncer replaces the debounce implementation.
// Default: schedule.Debounce on the event's scheduler.
func WithDebouncer(fn DebounceFunc) Option {
	return func(o *eventOptions) {
		o.debounce = fn
	}
}

// WithConnect sets the UI connect function used by Register.
func WithConnect(fn ConnectFunc) Option {
	return func(o *eventOptions) {
		o.connect = fn
	}
}

// WithLogger sets the event's logger.
// Default: slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(o *eventOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics{}
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(o *eventOptions) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithIDFunc sets the generator for action IDs.
// Default: random UUIDs
func WithIDFunc(fn func() string) Option {
	return func(o *eventOptions) {
		if fn != nil {
			o.newID = fn
		}
	}
}

var (
	defaultLoop     *schedule.Loop
	defaultLoopOnce sync.Once
)

// DefaultScheduler returns the process-wide run loop used by events
// built without WithScheduler. It is started on first use and never closed.
func DefaultScheduler() schedule.Scheduler {
	defaultLoopOnce.Do(func() {
		defaultLoop = schedule.NewLoop()
	})
	return defaultLoop
}

func defaultOptions() eventOptions {
	return eventOptions{
		registry: DefaultRegistry,
		logger:   slog.Default(),
		metrics:  observability.NoopMetrics{},
		newID:    uuid.NewString,
	}
}
