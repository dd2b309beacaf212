package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records reduxevents metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordReduce records one reducer invocation and whether the action
	// type belonged to the event.
	RecordReduce(ctx context.Context, eventName, actionType string, matched bool)

	// RecordChainDispatch records a chained re-dispatch from listener to target.
	RecordChainDispatch(ctx context.Context, listener, target string)

	// RecordAPICall records an asynchronous call with its duration and error status.
	RecordAPICall(ctx context.Context, requestType string, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	reduces        metric.Int64Counter
	chainDispatch  metric.Int64Counter
	apiCalls       metric.Int64Counter
	apiCallLatency metric.Float64Histogram
	apiCallErrors  metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the OTel instruments on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("reduxevents")

	reduces, err := meter.Int64Counter("reduxevents.reducer.invocations",
		metric.WithDescription("Number of reducer invocations"),
	)
	if err != nil {
		return nil, err
	}

	chainDispatch, err := meter.Int64Counter("reduxevents.chain.dispatches",
		metric.WithDescription("Number of chained re-dispatches"),
	)
	if err != nil {
		return nil, err
	}

	apiCalls, err := meter.Int64Counter("reduxevents.api.calls",
		metric.WithDescription("Number of asynchronous calls"),
	)
	if err != nil {
		return nil, err
	}

	apiCallLatency, err := meter.Float64Histogram("reduxevents.api.latency_ms",
		metric.WithDescription("Asynchronous call latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	apiCallErrors, err := meter.Int64Counter("reduxevents.api.errors",
		metric.WithDescription("Number of failed asynchronous calls"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		reduces:        reduces,
		chainDispatch:  chainDispatch,
		apiCalls:       apiCalls,
		apiCallLatency: apiCallLatency,
		apiCallErrors:  apiCallErrors,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before the first call:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordReduce records a reducer invocation.
func (m *otelMetrics) RecordReduce(ctx context.Context, eventName, actionType string, matched bool) {
	m.reduces.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event", eventName),
		attribute.Bool("matched", matched),
	))
}

// RecordChainDispatch records a chained re-dispatch.
func (m *otelMetrics) RecordChainDispatch(ctx context.Context, listener, target string) {
	m.chainDispatch.Add(ctx, 1, metric.WithAttributes(
		attribute.String("listener", listener),
		attribute.String("target", target),
	))
}

// RecordAPICall records an asynchronous call.
func (m *otelMetrics) RecordAPICall(ctx context.Context, requestType string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("action_type", requestType),
	}

	m.apiCalls.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.apiCallLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.apiCallErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
