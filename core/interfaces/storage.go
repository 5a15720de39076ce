// ABOUTME: Storage interfaces for persisting the grant catalog
// ABOUTME: Defines the whole-document load and save contract

package interfaces

import (
	"context"

	"grant-scraper/core/domain"
)

// CatalogStore persists the catalog as one materialized document
type CatalogStore interface {
	// Load returns the previously saved catalog.
	// A missing document is not an error and yields an empty catalog.
	Load(ctx context.Context) (*domain.Catalog, error)

	// Save replaces the stored document with catalog
	Save(ctx context.Context, catalog *domain.Catalog) error
}
