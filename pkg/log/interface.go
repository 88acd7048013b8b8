// Package log provides the structured logging interface used by the dataset
// loader, the model helpers and the airprice command.
//
// The interface is slog-shaped so callers pass alternating key/value pairs.
// The production implementation is backed by zerolog (see zerolog.go) and a
// capturing implementation for tests lives in testing.go.
//
// Example usage:
//
//	logger := log.GetLogger().With(log.ComponentKey, "dataset")
//	logger.Info("Loaded raw listings",
//	    log.CityKey, "berlin",
//	    log.SamplesKey, 1000,
//	    log.FeaturesKey, 75,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// The interface supports method chaining through the With method, allowing
// for creation of contextual loggers with pre-populated fields.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	//
	// Example:
	//   logger.Info("Cleaned data saved",
	//       log.PathKey, "/data/berlin/processed/berlin_cleaned.csv",
	//       log.SamplesKey, 9123,
	//   )
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	// Warning logs indicate potentially problematic situations that
	// don't prevent the application from continuing.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If an error value is provided as the first field, it is recorded under
	// the "error" key and its stack trace is attached when available.
	//
	// Example:
	//   logger.Error("Model training failed",
	//       err,
	//       log.OperationKey, log.OperationFit,
	//   )
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	// This method can be used to avoid expensive operations when constructing
	// log messages that won't be emitted.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// normalizeFields turns a leading lone error into an ("error", err) pair so
// that both Logger implementations see well-formed key/value pairs.
func normalizeFields(fields []any) []any {
	if len(fields)%2 == 1 {
		if err, ok := fields[0].(error); ok {
			out := make([]any, 0, len(fields)+1)
			out = append(out, ErrorKey, err)
			return append(out, fields[1:]...)
		}
	}
	return fields
}
