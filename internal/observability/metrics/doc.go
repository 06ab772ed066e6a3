// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the client's metrics:
//   - Upstream API call metrics (count and duration per operation and outcome)
//   - Session transitions (login, logout, hydration)
//   - Subscription changes
//
// All metrics are registered with the Prometheus default registry. The CLI has
// no HTTP listener, so the registry is dumped to a node_exporter textfile with
// WriteTextfile when a path is configured.
//
// Example usage:
//
//	start := time.Now()
//	err := call()
//	metrics.RecordAPICall("get_subscriber_feed", metrics.Outcome(err), time.Since(start))
package metrics
