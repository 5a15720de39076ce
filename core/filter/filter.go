// ABOUTME: Ordered predicate chain that removes disqualified grant records
// ABOUTME: The first failing predicate excludes a record and later ones are not evaluated

package filter

import (
	"strings"
	"time"

	"grant-scraper/core/domain"
	"grant-scraper/core/normalize"
)

// Rules is the part of the policy the filter reads
type Rules struct {
	ScoreThreshold  int
	AmountFloor     int64
	ExcludeKeywords []string
}

// Candidate is a scored record together with its regional eligibility
type Candidate struct {
	Grant    domain.Grant
	Eligible bool
}

// Predicate names, in evaluation order
const (
	ByScore          = "score"
	ByRegion         = "region"
	ByExcludeKeyword = "exclude_keyword"
	ByAmount         = "amount"
	ByExpired        = "expired"
)

type predicate struct {
	name string
	keep func(c *Candidate, r Rules, now time.Time) bool
}

var chain = []predicate{
	{ByScore, func(c *Candidate, r Rules, _ time.Time) bool {
		return c.Grant.RelevanceScore >= r.ScoreThreshold
	}},
	{ByRegion, func(c *Candidate, _ Rules, _ time.Time) bool {
		return c.Eligible
	}},
	{ByExcludeKeyword, func(c *Candidate, r Rules, _ time.Time) bool {
		return !normalize.ContainsAny(c.Grant.Name+c.Grant.Categories, r.ExcludeKeywords)
	}},
	// An unknown amount always passes, so leads without a parsed figure are kept.
	{ByAmount, func(c *Candidate, r Rules, _ time.Time) bool {
		return !c.Grant.HasAmount() || *c.Grant.AmountValue >= r.AmountFloor
	}},
	{ByExpired, func(c *Candidate, _ Rules, now time.Time) bool {
		d, ok := normalize.ParseDate(strings.TrimSpace(c.Grant.Deadline))
		return !ok || !normalize.IsBefore(d, now)
	}},
}

// Reject returns the name of the first predicate c fails, or "" when it passes all
func Reject(c *Candidate, r Rules, now time.Time) string {
	for _, p := range chain {
		if !p.keep(c, r, now) {
			return p.name
		}
	}
	return ""
}

// Result holds the surviving records and how many each predicate removed
type Result struct {
	Kept     []domain.Grant
	Rejected map[string]int
}

// Apply runs every candidate through the chain, preserving input order
func Apply(candidates []Candidate, r Rules, now time.Time) Result {
	res := Result{
		Kept:     make([]domain.Grant, 0, len(candidates)),
		Rejected: make(map[string]int),
	}
	for i := range candidates {
		if name := Reject(&candidates[i], r, now); name != "" {
			res.Rejected[name]++
			continue
		}
		res.Kept = append(res.Kept, candidates[i].Grant)
	}
	return res
}
