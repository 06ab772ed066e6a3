package text_test

import (
	"testing"

	"newswave/internal/utils/text"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "ASCII text", input: "hello", expected: 5},
		{name: "ASCII with spaces", input: "hello world", expected: 11},
		{name: "accented", input: "héllo", expected: 5},
		{name: "Japanese mixed", input: "こんにちは世界", expected: 7},
		{name: "emoji", input: "Hello👋", expected: 6},
		{name: "empty", input: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.CountRunes(tt.input); got != tt.expected {
				t.Errorf("CountRunes(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		limit  int
		suffix string
		want   string
	}{
		{name: "fits", input: "short", limit: 10, suffix: "...", want: "short"},
		{name: "exact", input: "12345", limit: 5, suffix: "...", want: "12345"},
		{name: "cut", input: "abcdefghij", limit: 6, suffix: "...", want: "abc..."},
		{name: "multibyte cut", input: "日本語のテキスト", limit: 4, suffix: "…", want: "日本語…"},
		{name: "zero limit", input: "abc", limit: 0, suffix: "...", want: ""},
		{name: "suffix longer than limit", input: "abcdef", limit: 2, suffix: "...", want: ".."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.Truncate(tt.input, tt.limit, tt.suffix); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.want)
			}
		})
	}
}
