package entity

import (
	"fmt"
	"net/url"
	"strings"

	"newswave/internal/utils/text"
)

// Article draft bounds, in runes.
const (
	MinTitleLength   = 5
	MaxTitleLength   = 150
	MinContentLength = 50
	MaxContentLength = 10000
)

// maxURLLength defines the maximum allowed length for URLs.
const maxURLLength = 2048

// ValidateName checks an account display name. The name is expected to be
// trimmed already. Any non-empty name is accepted.
func ValidateName(name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	return nil
}

// ValidateContent checks an article body against the length bounds.
func ValidateContent(content string) error {
	n := text.CountRunes(strings.TrimSpace(content))
	if n < MinContentLength {
		return &ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("content must be at least %d characters long", MinContentLength),
		}
	}
	if n > MaxContentLength {
		return &ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("content is too long (max %d characters)", MaxContentLength),
		}
	}
	return nil
}

// Validate checks the draft before anything is sent to the remote service.
func (d ArticleDraft) Validate() error {
	n := text.CountRunes(strings.TrimSpace(d.Title))
	if n < MinTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must be at least %d characters long", MinTitleLength),
		}
	}
	if n > MaxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must be at most %d characters long", MaxTitleLength),
		}
	}

	if err := ValidateContent(d.Content); err != nil {
		return err
	}

	if d.ImageURL != "" {
		if err := ValidateImageURL(d.ImageURL); err != nil {
			return err
		}
	}
	return nil
}

// ValidateImageURL checks that rawURL is an absolute https URL.
func ValidateImageURL(rawURL string) error {
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "imageUrl",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return &ValidationError{Field: "imageUrl", Message: "invalid image URL (must be a valid https:// URL)"}
	}
	if parsed.Scheme != "https" {
		return &ValidationError{Field: "imageUrl", Message: "image URL must start with https://"}
	}
	return nil
}
