package text_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"newswave/internal/utils/text"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text untouched", in: "Just words.", want: "Just words."},
		{name: "collapses whitespace", in: "a \n\n  b\tc", want: "a b c"},
		{name: "strips tags", in: "<p>Hello <b>world</b></p>", want: "Hello world"},
		{name: "separates blocks", in: "<p>one</p><p>two</p>", want: "one two"},
		{name: "drops scripts", in: "<div>ok<script>alert(1)</script></div>", want: "ok"},
		{name: "decodes entities", in: "Tom &amp; Jerry", want: "Tom & Jerry"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, text.PlainText(tt.in))
		})
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "Hello...", text.Excerpt("<p>Hello world</p>", 8))
	assert.Equal(t, "Hello world", text.Excerpt("<p>Hello world</p>", 50))
}
