package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() ArticleDraft {
	return ArticleDraft{
		Title:   "Renewable energy outlook",
		Content: strings.Repeat("Solar and wind keep getting cheaper. ", 3),
	}
}

func TestArticleDraft_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(d *ArticleDraft)
		wantField string
		wantMsg   string
	}{
		{name: "valid", mutate: func(*ArticleDraft) {}},
		{
			name:      "title too short",
			mutate:    func(d *ArticleDraft) { d.Title = "abc" },
			wantField: "title",
			wantMsg:   "title must be at least 5 characters long",
		},
		{
			name:      "title whitespace only counts as empty",
			mutate:    func(d *ArticleDraft) { d.Title = "      " },
			wantField: "title",
			wantMsg:   "title must be at least 5 characters long",
		},
		{
			name:      "title too long",
			mutate:    func(d *ArticleDraft) { d.Title = strings.Repeat("t", MaxTitleLength+1) },
			wantField: "title",
			wantMsg:   "title must be at most 150 characters long",
		},
		{
			name:      "content too short",
			mutate:    func(d *ArticleDraft) { d.Content = "too short" },
			wantField: "content",
			wantMsg:   "content must be at least 50 characters long",
		},
		{
			name:      "content too long",
			mutate:    func(d *ArticleDraft) { d.Content = strings.Repeat("c", MaxContentLength+1) },
			wantField: "content",
			wantMsg:   "content is too long (max 10000 characters)",
		},
		{
			name:      "image url not https",
			mutate:    func(d *ArticleDraft) { d.ImageURL = "http://example.com/a.png" },
			wantField: "imageUrl",
			wantMsg:   "image URL must start with https://",
		},
		{
			name:      "image url garbage",
			mutate:    func(d *ArticleDraft) { d.ImageURL = "not a url" },
			wantField: "imageUrl",
		},
		{
			name:   "image url https",
			mutate: func(d *ArticleDraft) { d.ImageURL = "https://example.com/a.png" },
		},
		{
			name:   "multibyte title counts runes",
			mutate: func(d *ArticleDraft) { d.Title = "日本語ニュース" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)

			err := d.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, ve.Message)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	require.NoError(t, ValidateName("Ada"))

	err := ValidateName("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationFailed)

	assert.NoError(t, ValidateName(strings.Repeat("n", 500)), "long names are accepted")
}

func TestValidateImageURL_TooLong(t *testing.T) {
	err := ValidateImageURL("https://example.com/" + strings.Repeat("a", maxURLLength))
	require.Error(t, err)
}
