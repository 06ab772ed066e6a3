package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	articles := []Article{
		{ID: 1, PublishDate: base.Add(-2 * time.Hour)},
		{ID: 2, PublishDate: base},
		{ID: 3, PublishDate: base.Add(-1 * time.Hour)},
		{ID: 4, PublishDate: base},
	}

	SortNewestFirst(articles)

	ids := make([]int64, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}
	assert.Equal(t, []int64{2, 4, 3, 1}, ids)
}

func TestSortNewestFirst_Empty(t *testing.T) {
	var articles []Article
	SortNewestFirst(articles)
	assert.Empty(t, articles)
}
