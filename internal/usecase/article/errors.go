// Package article implements the subscriber feed, the publisher dashboard,
// article publishing and draft summaries.
package article

import "errors"

var (
	// ErrPublisherRequired is returned when a publisher-only operation runs
	// without a publisher session.
	ErrPublisherRequired = errors.New("publisher session required")

	// ErrSubscriberRequired is returned when the feed is requested without a
	// subscriber session.
	ErrSubscriberRequired = errors.New("subscriber session required")

	// ErrSummarizerUnavailable is returned by Summarize when no summarizer
	// is configured.
	ErrSummarizerUnavailable = errors.New("summarizer not configured")
)
