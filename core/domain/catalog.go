// ABOUTME: Catalog domain model is the persisted document read by the dashboard
// ABOUTME: Holds the last update timestamp and the ordered grant list

package domain

import (
	"fmt"
	"sort"
)

// TimestampLayout is the format of Catalog.LastUpdated
const TimestampLayout = "2006-01-02 15:04:05"

// Catalog is the whole persisted document of one run
type Catalog struct {
	// LastUpdated is nil when no run has completed yet
	LastUpdated *string `json:"last_updated"`
	Grants      []Grant `json:"grants"`
}

// NewCatalog returns an empty catalog with no timestamp
func NewCatalog() *Catalog {
	return &Catalog{Grants: []Grant{}}
}

// IDs returns the set of grant ids in the catalog
func (c *Catalog) IDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(c.Grants))
	for _, g := range c.Grants {
		ids[g.ID] = struct{}{}
	}
	return ids
}

// SortByScore orders grants by relevance score, highest first. Ties keep their order.
func (c *Catalog) SortByScore() {
	sort.SliceStable(c.Grants, func(i, j int) bool {
		return c.Grants[i].RelevanceScore > c.Grants[j].RelevanceScore
	})
}

// Validate checks that grant ids are unique
func (c *Catalog) Validate() error {
	seen := make(map[string]struct{}, len(c.Grants))
	for _, g := range c.Grants {
		if _, ok := seen[g.ID]; ok {
			return fmt.Errorf("duplicate grant id %q", g.ID)
		}
		seen[g.ID] = struct{}{}
	}
	return nil
}
