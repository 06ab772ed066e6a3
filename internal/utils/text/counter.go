// Package text provides utilities for text processing shared by validation,
// summarization and rendering.
package text

import "unicode/utf8"

// CountRunes counts the number of Unicode characters (runes) in the given text.
// Length limits on titles and article bodies are expressed in runes, not bytes.
//
// Examples:
//
//	CountRunes("hello")   // returns 5
//	CountRunes("héllo")   // returns 5
//	CountRunes("")        // returns 0
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}

// Truncate shortens text to at most limit runes, appending suffix when it
// cuts. The suffix counts toward the limit.
func Truncate(text string, limit int, suffix string) string {
	if limit <= 0 {
		return ""
	}
	if CountRunes(text) <= limit {
		return text
	}
	keep := limit - CountRunes(suffix)
	if keep <= 0 {
		return string([]rune(suffix)[:limit])
	}
	return string([]rune(text)[:keep]) + suffix
}
