package catalog

import (
	"context"

	"grant-scraper/core/domain"
)

// mockStore is a mock implementation of the CatalogStore interface
type mockStore struct {
	loadFunc func(ctx context.Context) (*domain.Catalog, error)
	saveFunc func(ctx context.Context, c *domain.Catalog) error

	saved *domain.Catalog
}

func (m *mockStore) Load(ctx context.Context) (*domain.Catalog, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	return domain.NewCatalog(), nil
}

func (m *mockStore) Save(ctx context.Context, c *domain.Catalog) error {
	m.saved = c
	if m.saveFunc != nil {
		return m.saveFunc(ctx, c)
	}
	return nil
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	warnings []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.warnings = append(m.warnings, msg) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}
