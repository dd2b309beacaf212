// Package observability provides logging, metrics and tracing for
// reduxevents: structured logging via slog, metrics and tracing via
// OpenTelemetry.
//
// All features are opt-in and have no-op implementations when disabled.
// Logging helpers accept a nil logger and do nothing with it.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds event context to a logger.
// Returns a new logger with the event and kind fields.
//
// Example:
//
//	logger := EnrichLogger(slog.Default(), "fetchUser", "http")
//	logger.Debug("reducer ran") // includes event and kind
func EnrichLogger(logger *slog.Logger, eventName, kind string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("event", eventName),
		slog.String("kind", kind),
	)
}

// LogChainScheduled logs a chained re-dispatch being scheduled.
func LogChainScheduled(logger *slog.Logger, target, actionType string, autocomplete bool) {
	if logger == nil {
		return
	}
	logger.Debug("chained dispatch scheduled",
		slog.String("target", target),
		slog.String("action_type", actionType),
		slog.Bool("autocomplete", autocomplete),
	)
}

// LogChainSkipped logs a subscription that could not be followed.
func LogChainSkipped(logger *slog.Logger, target, reason string) {
	if logger == nil {
		return
	}
	logger.Warn("chained dispatch skipped",
		slog.String("target", target),
		slog.String("reason", reason),
	)
}

// LogTriggerDropped logs a trigger call that had no dispatch function bound.
func LogTriggerDropped(logger *slog.Logger, eventName string) {
	if logger == nil {
		return
	}
	logger.Warn("trigger dropped, no dispatch bound",
		slog.String("event", eventName),
	)
}

// LogActionGated logs an action dropped by its ShouldDispatch predicate.
func LogActionGated(logger *slog.Logger, actionType string) {
	if logger == nil {
		return
	}
	logger.Debug("action gated by shouldDispatch",
		slog.String("action_type", actionType),
	)
}

// LogAPICallStart logs the start of an asynchronous call.
func LogAPICallStart(logger *slog.Logger, requestType string) {
	if logger == nil {
		return
	}
	logger.Debug("api call starting",
		slog.String("action_type", requestType),
	)
}

// LogAPICallComplete logs a successful asynchronous call.
func LogAPICallComplete(logger *slog.Logger, successType string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("api call completed",
		slog.String("action_type", successType),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogAPICallError logs a failed asynchronous call.
func LogAPICallError(logger *slog.Logger, failureType string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("api call failed",
		slog.String("action_type", failureType),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogSnapshotError logs a failed snapshot save (non-fatal).
func LogSnapshotError(logger *slog.Logger, eventName string, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("snapshot failed",
		slog.String("event", eventName),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
