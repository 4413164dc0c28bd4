package observability

import (
	internal "github.com/lexfrei/go-streak/internal/observability"
)

// Field is one structured logging key-value pair.
type Field = internal.Field

// Logger is the structured logging interface accepted by the client.
type Logger = internal.Logger

// MetricsRecorder is the metrics interface accepted by the client.
type MetricsRecorder = internal.MetricsRecorder

// F is shorthand for Field{Key: key, Value: value}.
func F(key string, value any) Field {
	return internal.F(key, value)
}

// NoopLogger returns a logger that discards everything.
//
//nolint:ireturn // Factory function must return interface for dependency injection pattern
func NoopLogger() Logger {
	return internal.NoopLogger()
}

// NoopMetricsRecorder returns a recorder that does nothing.
//
//nolint:ireturn // Factory function must return interface for dependency injection pattern
func NoopMetricsRecorder() MetricsRecorder {
	return internal.NoopMetricsRecorder()
}
