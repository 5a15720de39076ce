// Package normalize holds the source-independent transforms every extractor shares:
// amount parsing, deadline parsing, region eligibility and summary picking.
//
// Every pattern list in this package is ordered and first-match-wins. Reordering a
// list changes extraction results.
package normalize

import (
	"strings"

	"golang.org/x/text/width"
)

// Truncate returns at most n characters of s, counting code points
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Length returns the number of code points in s
func Length(s string) int {
	return len([]rune(s))
}

// ContainsAny reports whether text contains any of the given substrings
func ContainsAny(text string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(text, sub) {
			return true
		}
	}
	return false
}

// fold maps full-width digits, punctuation and the ideographic space to their
// ASCII forms so numeric patterns match text typed either way.
func fold(s string) string {
	return width.Narrow.String(s)
}
