// ABOUTME: Grant domain model is the normalized record every source collapses into
// ABOUTME: Defines status values and the validation used before a record enters the pipeline

package domain

import "errors"

// Status values as persisted in the catalog. The presentation layer displays them verbatim.
const (
	StatusOpen       = "募集中"
	StatusUpcoming   = "募集予定"
	StatusClosed     = "募集終了"
	StatusUnverified = "要確認"
)

// RegionUnspecified is the region description when no scope could be found.
const RegionUnspecified = "指定なし"

// Grant represents one funding opportunity
type Grant struct {
	// ID is derived from the source tag and URL and never recomputed
	ID string `json:"id"`

	// Name is the program title
	Name string `json:"name"`

	// URL is the canonical link to the program page
	URL string `json:"url"`

	// Source is the display name of the source the record came from
	Source string `json:"source"`

	Organization string `json:"organization"`
	Summary      string `json:"summary"`
	Categories   string `json:"categories"`

	// Deadline is YYYY-MM-DD or empty when unknown
	Deadline string `json:"deadline"`
	Status   string `json:"status"`

	AmountText  string `json:"amount_text"`
	AmountValue *int64 `json:"amount_value"`

	Region          string   `json:"region"`
	RelevanceScore  int      `json:"relevance_score"`
	MatchedKeywords []string `json:"matched_keywords"`

	// FoundDate is the run date on which the record was created
	FoundDate string `json:"found_date"`
	IsNew     bool   `json:"is_new"`

	// FullText feeds scoring and the region check only; it is never persisted
	FullText string `json:"-"`
}

// NewGrant creates a record with every free-text field present and the status unverified
func NewGrant(id, name, url, source string) Grant {
	return Grant{
		ID:              id,
		Name:            name,
		URL:             url,
		Source:          source,
		Status:          StatusUnverified,
		MatchedKeywords: []string{},
	}
}

// SetAmount records a parsed amount, leaving the value unknown when ok is false
func (g *Grant) SetAmount(value int64, ok bool) {
	if !ok {
		g.AmountValue = nil
		return
	}
	v := value
	g.AmountValue = &v
}

// HasAmount reports whether the amount value is known
func (g *Grant) HasAmount() bool {
	return g.AmountValue != nil
}

// Validate checks that the record carries the fields identity depends on
func (g *Grant) Validate() error {
	if g.ID == "" {
		return errors.New("grant ID cannot be empty")
	}
	if g.URL == "" {
		return errors.New("grant URL cannot be empty")
	}
	if g.Name == "" {
		return errors.New("grant name cannot be empty")
	}
	return nil
}

// IsValidStatus reports whether s is one of the known status values
func IsValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusUpcoming, StatusClosed, StatusUnverified:
		return true
	}
	return false
}
