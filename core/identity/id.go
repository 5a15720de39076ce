// Package identity derives stable record ids and collapses duplicate URLs.
package identity

import (
	"crypto/md5"
	"encoding/hex"

	"grant-scraper/core/domain"
)

const idHashLength = 10

// MakeID returns tag + "_" + the first ten hex characters of md5(url).
// It depends on nothing but its arguments, so a URL keeps its id across runs.
func MakeID(tag, url string) string {
	sum := md5.Sum([]byte(url))
	return tag + "_" + hex.EncodeToString(sum[:])[:idHashLength]
}

// Seen is the per-source URL guard used while extracting
type Seen map[string]struct{}

// Add records url and reports whether it was new
func (s Seen) Add(url string) bool {
	if _, ok := s[url]; ok {
		return false
	}
	s[url] = struct{}{}
	return true
}

// Dedupe keeps the first record for every exact URL and drops the rest.
// Callers aggregate sources in a fixed order (CANPAN, NPOWEB, JFC), so a URL
// published by several sources survives as the record of the earliest one.
func Dedupe(grants []domain.Grant) []domain.Grant {
	seen := make(Seen, len(grants))
	unique := make([]domain.Grant, 0, len(grants))
	for _, g := range grants {
		if seen.Add(g.URL) {
			unique = append(unique, g)
		}
	}
	return unique
}
