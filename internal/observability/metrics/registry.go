// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

// Session event label values.
const (
	EventHydrated     = "hydrated"
	EventLoginSuccess = "login_success"
	EventLoginFailure = "login_failure"
	EventLogout       = "logout"
)

// Upstream API metrics
var (
	// APIRequestsTotal counts upstream API calls by operation and outcome
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newswave_api_requests_total",
			Help: "Total number of upstream API calls",
		},
		[]string{"operation", "outcome"},
	)

	// APIRequestDuration measures upstream API call duration in seconds
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newswave_api_request_duration_seconds",
			Help:    "Upstream API call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "outcome"},
	)

	// APIResponseStatus counts upstream responses by operation and HTTP status
	APIResponseStatus = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newswave_api_responses_total",
			Help: "Total number of upstream API responses by status code",
		},
		[]string{"operation", "status"},
	)
)

// Client state metrics
var (
	// SessionEventsTotal counts session state transitions
	SessionEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newswave_session_events_total",
			Help: "Total number of session transitions",
		},
		[]string{"event"},
	)

	// SubscriptionChangesTotal counts subscribe/unsubscribe attempts
	SubscriptionChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newswave_subscription_changes_total",
			Help: "Total number of subscription changes",
		},
		[]string{"action", "outcome"},
	)

	// FeedArticlesReturned measures how many articles a feed call returned
	FeedArticlesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newswave_feed_articles_returned",
			Help:    "Number of articles returned per feed request",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)
)

// Outcome maps an error to an outcome label.
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	return OutcomeFailure
}

// RecordAPICall records an upstream API call
func RecordAPICall(operation, outcome string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(operation, outcome).Inc()
	APIRequestDuration.WithLabelValues(operation, outcome).Observe(duration.Seconds())
}

// RecordAPIStatus records the HTTP status of an upstream response.
func RecordAPIStatus(operation string, status int) {
	APIResponseStatus.WithLabelValues(operation, fmt.Sprintf("%d", status)).Inc()
}

// RecordSessionEvent records a session transition
func RecordSessionEvent(event string) {
	SessionEventsTotal.WithLabelValues(event).Inc()
}

// RecordSubscriptionChange records a subscribe or unsubscribe attempt.
// Action should be "subscribe" or "unsubscribe".
func RecordSubscriptionChange(action string, err error) {
	SubscriptionChangesTotal.WithLabelValues(action, Outcome(err)).Inc()
}

// RecordFeedSize records the number of articles a feed request returned.
func RecordFeedSize(n int) {
	FeedArticlesReturned.Observe(float64(n))
}

// WriteTextfile writes every metric in the default registry to path in the
// Prometheus text format. The file is replaced atomically.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
