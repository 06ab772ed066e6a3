// Package observability provides the logging, metrics and tracing
// infrastructure shared by the client core and the CLI.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics for upstream calls and session activity
//   - tracing: OpenTelemetry client spans for upstream calls
//
// Example usage:
//
//	import (
//	    "newswave/internal/observability/logging"
//	    "newswave/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.New(logging.Options{Level: "info", Format: "text"})
//	    logger.Info("application started")
//
//	    metrics.RecordSessionEvent(metrics.EventLogout)
//	}
package observability
