package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"newswave/internal/domain/entity"
	"newswave/internal/observability/metrics"
)

// Remote performs subscription changes on the upstream service.
type Remote interface {
	SubscribeToPublisher(ctx context.Context, subscriberID, publisherID int64) error
	UnsubscribeFromPublisher(ctx context.Context, subscriberID, publisherID int64) error
}

// SessionSource exposes the current session.
type SessionSource interface {
	Session() entity.Session
}

// Store is an optimistic cache of the current subscriber's subscriptions.
// It only changes after the remote call succeeds.
type Store struct {
	remote   Remote
	sessions SessionSource
	logger   *slog.Logger

	mu    sync.RWMutex
	owner int64
	ids   map[int64]struct{}
}

// NewStore creates an empty store.
func NewStore(remote Remote, sessions SessionSource, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		remote:   remote,
		sessions: sessions,
		logger:   logger,
		ids:      make(map[int64]struct{}),
	}
}

// Subscribe follows publisherID on behalf of the current subscriber.
func (s *Store) Subscribe(ctx context.Context, publisherID int64) error {
	return s.change(ctx, "subscribe", publisherID, s.remote.SubscribeToPublisher, func(ids map[int64]struct{}) {
		ids[publisherID] = struct{}{}
	})
}

// Unsubscribe stops following publisherID.
func (s *Store) Unsubscribe(ctx context.Context, publisherID int64) error {
	return s.change(ctx, "unsubscribe", publisherID, s.remote.UnsubscribeFromPublisher, func(ids map[int64]struct{}) {
		delete(ids, publisherID)
	})
}

func (s *Store) change(
	ctx context.Context,
	action string,
	publisherID int64,
	call func(ctx context.Context, subscriberID, publisherID int64) error,
	apply func(ids map[int64]struct{}),
) error {
	session, err := s.subscriber()
	if err != nil {
		return err
	}
	if publisherID <= 0 {
		return &entity.ValidationError{Field: "publisherId", Message: "must be a positive integer"}
	}

	err = call(ctx, session.UserID, publisherID)
	metrics.RecordSubscriptionChange(action, err)
	if err != nil {
		s.logger.WarnContext(ctx, action+" failed",
			slog.Int64("subscriber_id", session.UserID),
			slog.Int64("publisher_id", publisherID),
			slog.Any("error", err))
		return fmt.Errorf("%s publisher %d: %w", action, publisherID, err)
	}

	// The session may have changed while the call was in flight.
	if current := s.sessions.Session(); !current.Is(entity.RoleSubscriber) || current.UserID != session.UserID {
		s.logger.DebugContext(ctx, "session changed during "+action+", result dropped",
			slog.Int64("publisher_id", publisherID))
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncOwnerLocked(session.UserID)
	apply(s.ids)
	return nil
}

// IsSubscribed reports whether publisherID is in the local set. It never
// contacts the remote service.
func (s *Store) IsSubscribed(publisherID int64) bool {
	session := s.sessions.Session()
	if !session.Is(entity.RoleSubscriber) {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.owner != session.UserID {
		return false
	}
	_, ok := s.ids[publisherID]
	return ok
}

// IDs returns the subscribed publisher ids in ascending order.
func (s *Store) IDs() []int64 {
	session := s.sessions.Session()
	if !session.Is(entity.RoleSubscriber) {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.owner != session.UserID {
		return nil
	}
	ids := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Reset empties the set.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner = 0
	clear(s.ids)
}

func (s *Store) subscriber() (entity.Session, error) {
	session := s.sessions.Session()
	if !session.Is(entity.RoleSubscriber) {
		return entity.Session{}, ErrSubscriberRequired
	}
	return session, nil
}

func (s *Store) syncOwnerLocked(userID int64) {
	if s.owner != userID {
		s.owner = userID
		clear(s.ids)
	}
}
