// ABOUTME: Catalog store keeping the whole document under one key of a Cache
// ABOUTME: Used with the Redis cache when the catalog should live outside the local disk

package cachestore

import (
	"context"
	"errors"

	"grant-scraper/core/domain"
	"grant-scraper/core/interfaces"
	"grant-scraper/infrastructure/storage/file"
)

// Store implements CatalogStore over a Cache
type Store struct {
	cache interfaces.Cache
	key   string
}

// NewStore creates a store that reads and writes key in cache
func NewStore(cache interfaces.Cache, key string) *Store {
	return &Store{cache: cache, key: key}
}

// Load reads the catalog. A missing key is an empty catalog.
func (s *Store) Load(ctx context.Context) (*domain.Catalog, error) {
	data, err := s.cache.Get(ctx, s.key)
	if errors.Is(err, interfaces.ErrCacheMiss) {
		return domain.NewCatalog(), nil
	}
	if err != nil {
		return nil, err
	}
	return file.Decode(s.key, data)
}

// Save replaces the catalog document. The key never expires.
func (s *Store) Save(ctx context.Context, catalog *domain.Catalog) error {
	data, err := file.Encode(catalog)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, s.key, data, 0)
}
