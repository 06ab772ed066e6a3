// Package subscription keeps the local record of which publishers the
// logged-in subscriber follows. The record is built from this process's own
// subscribe/unsubscribe calls; the remote API offers no way to list them.
package subscription

import "errors"

// ErrSubscriberRequired is returned when no subscriber session is active.
var ErrSubscriberRequired = errors.New("subscriber session required")
