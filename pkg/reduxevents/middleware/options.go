package middleware

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/randalmurphal/reduxevents/pkg/reduxevents"
	"github.com/randalmurphal/reduxevents/pkg/reduxevents/observability"
	"github.com/randalmurphal/reduxevents/pkg/reduxevents/schedule"
)

// Option configures the events middleware.
type Option func(*options)

type options struct {
	scheduler schedule.Scheduler
	ctx       context.Context
	logger    *slog.Logger
	metrics   observability.MetricsRecorder
	spans     observability.SpanManager
	newID     func() string
}

func defaultOptions() options {
	return options{
		ctx:     context.Background(),
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
		newID:   uuid.NewString,
	}
}

// WithScheduler sets where success and failure actions are dispatched from.
// Default: reduxevents.DefaultScheduler()
func WithScheduler(s schedule.Scheduler) Option {
	return func(o *options) {
		if s != nil {
			o.scheduler = s
		}
	}
}

// WithContext sets the parent context of every call.
// Default: context.Background()
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithLogger sets the middleware logger.
// Default: slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics enables call metrics.
// Default: observability.NoopMetrics{}
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithSpanManager enables call tracing.
// Default: observability.NoopSpanManager{}
//
// Example:
//
//	mw := middleware.New(middleware.WithSpanManager(observability.NewSpanManager()))
func WithSpanManager(s observability.SpanManager) Option {
	return func(o *options) {
		if s != nil {
			o.spans = s
		}
	}
}

// WithIDFunc sets the generator for the IDs of request, success and
// failure actions.
// Default: random UUIDs
func WithIDFunc(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

func (o *options) resolve() {
	if o.scheduler == nil {
		o.scheduler = reduxevents.DefaultScheduler()
	}
}
