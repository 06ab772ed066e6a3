// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the application.
//
// Key features:
//   - JSON and text output formats
//   - Request ID fields for upstream calls
//   - Context-aware logging
//   - Configurable log levels
//
// Example usage:
//
//	logger := logging.New(logging.Options{Level: "debug", Format: "json", Writer: os.Stderr})
//	ctx = logging.WithLogger(ctx, logger)
//
//	logging.FromContext(ctx).Info("feed loaded", slog.Int("count", 10))
package logging
