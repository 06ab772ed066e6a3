package newsapi

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"newswave/internal/domain/entity"
)

const (
	untitledArticle        = "Untitled Article"
	placeholderImageFormat = "https://placehold.co/600x400.png?text=Article+%d"
)

// zonelessLayouts are accepted publishedAt forms without an offset; they are
// read as UTC.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// PlaceholderImageURL returns the deterministic stand-in image for an article.
func PlaceholderImageURL(id int64) string {
	return fmt.Sprintf(placeholderImageFormat, id)
}

// MapNewsItem projects an upstream news item onto an Article, filling display
// defaults for anything the upstream omitted. now is used when the item has no
// usable publish date. It returns false when the item has no positive id.
func MapNewsItem(item NewsItem, now time.Time) (entity.Article, bool) {
	if item.ID <= 0 {
		return entity.Article{}, false
	}

	a := entity.Article{
		ID:      item.ID,
		Title:   untitledArticle,
		Content: deref(item.Body),
		Summary: nonBlank(item.Summary),
	}
	if title := strings.TrimSpace(deref(item.Title)); title != "" {
		a.Title = title
	}

	a.PublishDate = now
	if item.PublishedAt != nil {
		if t, ok := parsePublishedAt(*item.PublishedAt); ok {
			a.PublishDate = t
		}
	}

	if img := nonBlank(item.ImageURL); img != nil {
		a.ImageURL = img
	} else {
		placeholder := PlaceholderImageURL(item.ID)
		a.ImageURL = &placeholder
	}

	if item.PublisherID != nil && *item.PublisherID > 0 {
		id := *item.PublisherID
		a.AuthorID = &id
	}
	a.AuthorName = nonBlank(item.PublisherName)

	return a, true
}

func parsePublishedAt(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// mapNewsItems maps items in order, dropping unidentifiable ones, and stops
// after limit articles when limit is positive.
func (c *Client) mapNewsItems(ctx context.Context, items []NewsItem, limit int) []entity.Article {
	now := c.now()
	size := len(items)
	if limit > 0 && limit < size {
		size = limit
	}

	articles := make([]entity.Article, 0, size)
	for _, item := range items {
		if limit > 0 && len(articles) == limit {
			break
		}
		a, ok := MapNewsItem(item, now)
		if !ok {
			c.logger.WarnContext(ctx, "dropping news item without identifier",
				slog.Int64("id", item.ID),
				slog.String("title", deref(item.Title)))
			continue
		}
		articles = append(articles, a)
	}
	return articles
}
