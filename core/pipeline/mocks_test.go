package pipeline

import (
	"context"
	"sync"

	"grant-scraper/core/domain"
)

// mockSource is a mock implementation of the Source interface
type mockSource struct {
	tag         string
	name        string
	collectFunc func(ctx context.Context) ([]domain.Grant, error)
	calls       int
}

func (m *mockSource) Tag() string  { return m.tag }
func (m *mockSource) Name() string { return m.name }

func (m *mockSource) Collect(ctx context.Context) ([]domain.Grant, error) {
	m.calls++
	if m.collectFunc != nil {
		return m.collectFunc(ctx)
	}
	return nil, nil
}

// memoryStore keeps the catalog in memory between runs
type memoryStore struct {
	mu      sync.Mutex
	catalog *domain.Catalog
}

func (m *memoryStore) Load(ctx context.Context) (*domain.Catalog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.catalog == nil {
		return domain.NewCatalog(), nil
	}
	copied := *m.catalog
	copied.Grants = append([]domain.Grant(nil), m.catalog.Grants...)
	return &copied, nil
}

func (m *memoryStore) Save(ctx context.Context, c *domain.Catalog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog = c
	return nil
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	mu     sync.Mutex
	errors []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}
