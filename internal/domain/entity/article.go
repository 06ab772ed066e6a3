// Package entity defines the core domain entities and validation logic for the application.
// It contains the session, account and article value objects, along with
// their validation rules and domain-specific errors.
package entity

import (
	"sort"
	"time"
)

// Article is the local projection of a remote news item. It is rebuilt from
// the remote response on every fetch and never persisted.
type Article struct {
	ID          int64
	Title       string
	Content     string
	Summary     *string
	AuthorID    *int64
	AuthorName  *string
	PublishDate time.Time
	ImageURL    *string
}

// SortNewestFirst orders articles by publish date, newest first. Ties keep
// their remote order.
func SortNewestFirst(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishDate.After(articles[j].PublishDate)
	})
}

// ArticleDraft is the publisher's input for a new article.
type ArticleDraft struct {
	Title    string
	Content  string
	Summary  string
	ImageURL string
}
