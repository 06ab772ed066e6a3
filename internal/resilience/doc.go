// Package resilience provides fault tolerance helpers for outbound calls.
//
// The package supports:
//   - Circuit breakers that fail fast when the upstream API or an AI provider
//     keeps failing
//   - Retry logic with exponential backoff and jitter, used only for AI
//     provider calls; upstream API calls are never retried
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.UpstreamAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callUpstream()
//	})
//
//	err := retry.WithBackoff(ctx, retry.AIAPIConfig(), func() error {
//	    return callProvider()
//	})
package resilience
