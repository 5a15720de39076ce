// ABOUTME: Catalog service reads the previous run's catalog and publishes the next one
// ABOUTME: Computes is_new against the previous ids and persists through the CatalogStore

package catalog

import (
	"context"
	"fmt"
	"time"

	"grant-scraper/core/domain"
	"grant-scraper/core/interfaces"
)

// Service handles loading and publishing the persisted catalog
type Service struct {
	deps interfaces.Dependencies
}

// NewService creates a new catalog service instance
func NewService(deps interfaces.Dependencies) *Service {
	return &Service{
		deps: deps,
	}
}

// LoadPrevious returns the last published catalog. Any failure to read it is
// logged and treated as an empty catalog, so every record of this run is new.
func (s *Service) LoadPrevious(ctx context.Context) *domain.Catalog {
	previous, err := s.deps.Store.Load(ctx)
	if err != nil {
		s.deps.Logger.Warn("Previous catalog unreadable, starting empty", map[string]interface{}{
			"error": err.Error(),
		})
		return domain.NewCatalog()
	}
	if previous.Grants == nil {
		previous.Grants = []domain.Grant{}
	}
	return previous
}

// Publish builds the catalog of this run from the records that passed the
// filter and saves it. kept is not modified.
func (s *Service) Publish(ctx context.Context, previous *domain.Catalog, kept []domain.Grant, now time.Time) (*domain.Catalog, error) {
	known := previous.IDs()

	grants := make([]domain.Grant, len(kept))
	for i, g := range kept {
		_, seen := known[g.ID]
		g.IsNew = !seen
		g.FullText = ""
		grants[i] = g
	}

	stamp := now.Format(domain.TimestampLayout)
	next := &domain.Catalog{
		LastUpdated: &stamp,
		Grants:      grants,
	}
	next.SortByScore()

	if err := next.Validate(); err != nil {
		return nil, fmt.Errorf("publish catalog: %w", err)
	}

	if err := s.deps.Store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save catalog: %w", err)
	}

	s.deps.Logger.Info("Catalog published", map[string]interface{}{
		"grants":       len(next.Grants),
		"new":          CountNew(next),
		"last_updated": stamp,
	})
	return next, nil
}

// CountNew returns how many grants in c are flagged new
func CountNew(c *domain.Catalog) int {
	n := 0
	for _, g := range c.Grants {
		if g.IsNew {
			n++
		}
	}
	return n
}
