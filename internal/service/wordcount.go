package service

import "strings"

// CountWords returns the number of whitespace-delimited tokens in the
// content. Markdown syntax is not stripped, so "# Title" counts as two
// words.
func CountWords(content string) int {
	return len(strings.Fields(content))
}
