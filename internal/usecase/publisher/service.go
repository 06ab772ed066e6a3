// Package publisher implements the publisher directory shown to subscribers.
package publisher

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"newswave/internal/domain/entity"
)

// DefaultConcurrency bounds the detail fan-out in Browse.
const DefaultConcurrency = 4

// Gateway is the subset of the upstream API used by the directory.
type Gateway interface {
	GetAllPublishers(ctx context.Context) ([]entity.Publisher, error)
	GetPublisherDetails(ctx context.Context, publisherID int64) (entity.PublisherDetails, error)
}

// DirectoryEntry is one publisher with a summary of its articles. When Err
// is set the article fields are unknown.
type DirectoryEntry struct {
	Publisher    entity.Publisher
	ArticleCount int
	Latest       *entity.Article
	Err          error
}

// Service lists publishers.
type Service struct {
	Gateway     Gateway
	Concurrency int
	Logger      *slog.Logger
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// List returns every publisher sorted by name, then id.
func (s *Service) List(ctx context.Context) ([]entity.Publisher, error) {
	publishers, err := s.Gateway.GetAllPublishers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list publishers: %w", err)
	}
	slices.SortStableFunc(publishers, func(a, b entity.Publisher) int {
		if c := cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return publishers, nil
}

// Details returns one publisher with its articles newest first.
func (s *Service) Details(ctx context.Context, publisherID int64) (entity.PublisherDetails, error) {
	details, err := s.Gateway.GetPublisherDetails(ctx, publisherID)
	if err != nil {
		return entity.PublisherDetails{}, fmt.Errorf("get publisher %d: %w", publisherID, err)
	}
	entity.SortNewestFirst(details.Articles)
	return details, nil
}

// Browse lists publishers and attaches article counts, fetching details
// concurrently. A failed detail call is recorded on its entry; only a failed
// listing or a cancelled context fails the whole call.
func (s *Service) Browse(ctx context.Context) ([]DirectoryEntry, error) {
	publishers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	limit := s.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	entries := make([]DirectoryEntry, len(publishers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, p := range publishers {
		entries[i].Publisher = p
		g.Go(func() error {
			details, err := s.Details(gctx, p.ID)
			if err != nil {
				s.logger().WarnContext(gctx, "publisher details unavailable",
					slog.Int64("publisher_id", p.ID),
					slog.Any("error", err))
				entries[i].Err = err
				return nil
			}
			entries[i].ArticleCount = len(details.Articles)
			if len(details.Articles) > 0 {
				latest := details.Articles[0]
				entries[i].Latest = &latest
			}
			return nil
		})
	}

	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
