// Package tracing provides OpenTelemetry tracing helpers.
//
// The application does not install an exporter itself; spans are recorded
// only when the host process registers a TracerProvider with otel. Tests use
// the SDK's in-memory exporter.
//
// Example usage:
//
//	ctx, span := tracing.StartClientSpan(ctx, tracing.GetTracer(), http.MethodGet, "/api/Publishers")
//	defer span.End()
//	// ... perform request ...
//	tracing.EndClientSpan(span, resp.StatusCode, err)
package tracing
