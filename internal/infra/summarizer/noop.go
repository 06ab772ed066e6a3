package summarizer

import (
	"context"
	"strings"

	"newswave/internal/utils/text"
)

// NoOp summarizes by truncating the input to the character limit.
type NoOp struct {
	limit int
}

// NewNoOp creates a NoOp summarizer. A non-positive limit uses DefaultCharacterLimit.
func NewNoOp(limit int) *NoOp {
	if limit <= 0 {
		limit = DefaultCharacterLimit
	}
	return &NoOp{limit: limit}
}

// Summarize returns the trimmed input, cut to the limit with a trailing ellipsis.
func (n *NoOp) Summarize(_ context.Context, input string) (string, error) {
	return text.Truncate(strings.TrimSpace(input), n.limit, "..."), nil
}
