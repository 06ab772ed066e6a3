package article

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"newswave/internal/domain/entity"
	"newswave/internal/observability/metrics"
)

// DefaultFeedCount is the feed size used when none is requested.
const DefaultFeedCount = 10

// Gateway is the subset of the upstream API used for articles.
type Gateway interface {
	GetSubscriberFeed(ctx context.Context, subscriberID int64, count int) ([]entity.Article, error)
	GetPublisherDetails(ctx context.Context, publisherID int64) (entity.PublisherDetails, error)
	PublishArticle(ctx context.Context, publisherID int64, title, body string) error
}

// SessionSource exposes the current session.
type SessionSource interface {
	Session() entity.Session
}

// Summarizer turns article content into a summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Service implements article use cases for the logged-in user.
type Service struct {
	Gateway    Gateway
	Sessions   SessionSource
	Summarizer Summarizer // optional
	// DefaultFeedCount replaces a zero count in Feed. Zero means DefaultFeedCount.
	DefaultFeedCount int
	Logger           *slog.Logger
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// Feed returns up to count articles from the subscriber's followed
// publishers, newest first. A zero count uses the default; negative counts
// are raised to 1.
func (s *Service) Feed(ctx context.Context, count int) ([]entity.Article, error) {
	session := s.Sessions.Session()
	if !session.Is(entity.RoleSubscriber) {
		return nil, ErrSubscriberRequired
	}

	if count == 0 {
		count = s.DefaultFeedCount
		if count <= 0 {
			count = DefaultFeedCount
		}
	}
	count = max(1, count)

	articles, err := s.Gateway.GetSubscriberFeed(ctx, session.UserID, count)
	if err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}
	entity.SortNewestFirst(articles)
	metrics.RecordFeedSize(len(articles))

	s.logger().DebugContext(ctx, "feed loaded",
		slog.Int64("subscriber_id", session.UserID),
		slog.Int("requested", count),
		slog.Int("returned", len(articles)))
	return articles, nil
}

// Dashboard returns the logged-in publisher's profile with its articles
// newest first.
func (s *Service) Dashboard(ctx context.Context) (entity.PublisherDetails, error) {
	session := s.Sessions.Session()
	if !session.Is(entity.RolePublisher) {
		return entity.PublisherDetails{}, ErrPublisherRequired
	}

	details, err := s.Gateway.GetPublisherDetails(ctx, session.UserID)
	if err != nil {
		return entity.PublisherDetails{}, fmt.Errorf("load dashboard: %w", err)
	}
	entity.SortNewestFirst(details.Articles)
	return details, nil
}

// Publish validates draft and posts it as the logged-in publisher. Only the
// title and content reach the remote service.
func (s *Service) Publish(ctx context.Context, draft entity.ArticleDraft) error {
	session := s.Sessions.Session()
	if !session.Is(entity.RolePublisher) {
		return ErrPublisherRequired
	}
	if err := draft.Validate(); err != nil {
		return err
	}

	title := strings.TrimSpace(draft.Title)
	content := strings.TrimSpace(draft.Content)
	if err := s.Gateway.PublishArticle(ctx, session.UserID, title, content); err != nil {
		return fmt.Errorf("publish article: %w", err)
	}

	s.logger().InfoContext(ctx, "article published",
		slog.Int64("publisher_id", session.UserID),
		slog.String("title", title))
	return nil
}

// Summarize produces a summary of draft content. It needs no session.
func (s *Service) Summarize(ctx context.Context, content string) (string, error) {
	content = strings.TrimSpace(content)
	if err := entity.ValidateContent(content); err != nil {
		return "", err
	}
	if s.Summarizer == nil {
		return "", ErrSummarizerUnavailable
	}

	summary, err := s.Summarizer.Summarize(ctx, content)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	return summary, nil
}
