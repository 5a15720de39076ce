// ABOUTME: Keyword-weighted relevance scoring for grant records
// ABOUTME: High-priority keywords add two points, low-priority keywords add one

package scoring

import (
	"strings"

	"grant-scraper/core/domain"
)

const (
	highWeight = 2
	lowWeight  = 1
)

// Keywords is the part of the policy the scorer reads
type Keywords struct {
	High []string
	Low  []string
}

// SearchText joins the fields a record is scored on
func SearchText(g *domain.Grant) string {
	return strings.Join([]string{g.Name, g.Summary, g.Categories, g.FullText}, " ")
}

// Score returns the relevance score of text and the matched keywords in policy order.
// Each keyword counts once no matter how often it occurs.
func Score(text string, kw Keywords) (int, []string) {
	score := 0
	matched := []string{}

	for _, k := range kw.High {
		if k != "" && strings.Contains(text, k) {
			score += highWeight
			matched = append(matched, k)
		}
	}
	for _, k := range kw.Low {
		if k != "" && strings.Contains(text, k) {
			score += lowWeight
			matched = append(matched, k)
		}
	}

	return score, matched
}

// Annotate scores g and stores the result on it
func Annotate(g *domain.Grant, kw Keywords) {
	g.RelevanceScore, g.MatchedKeywords = Score(SearchText(g), kw)
}
