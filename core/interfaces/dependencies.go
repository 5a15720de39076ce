// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the core business logic

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// HTTPClient provides the fetch capability
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger

	// Store persists the catalog
	Store CatalogStore
}
