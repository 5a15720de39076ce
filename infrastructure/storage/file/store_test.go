package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grant-scraper/core/domain"
	coreerrors "grant-scraper/core/errors"
	"grant-scraper/core/interfaces"
)

var _ interfaces.CatalogStore = (*Store)(nil)

func sampleCatalog() *domain.Catalog {
	ts := "2024-05-01 09:00:00"
	g := domain.NewGrant("canpan_0123456789", "子育て支援<助成>", "https://example.com/grant/detail/1", "CANPAN")
	g.SetAmount(1000000, true)
	g.IsNew = true
	return &domain.Catalog{LastUpdated: &ts, Grants: []domain.Grant{g}}
}

func TestStore_LoadMissingIsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "data"))

	catalog, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, catalog.LastUpdated)
	assert.Empty(t, catalog.Grants)
	assert.NotNil(t, catalog.Grants)
}

func TestStore_SaveThenLoad(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "data"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleCatalog()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Grants, 1)
	assert.Equal(t, "canpan_0123456789", loaded.Grants[0].ID)
	assert.Equal(t, int64(1000000), *loaded.Grants[0].AmountValue)
	assert.Equal(t, "2024-05-01 09:00:00", *loaded.LastUpdated)
}

func TestStore_SaveFormat(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(context.Background(), sampleCatalog()))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	s := string(data)

	assert.Contains(t, s, "子育て支援<助成>", "text is written unescaped")
	assert.Contains(t, s, "\n  \"grants\": [", "two-space indentation")
	assert.True(t, strings.HasPrefix(s, "{\n  \"last_updated\""))
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	require.NoError(t, store.Save(context.Background(), sampleCatalog()))
	require.NoError(t, store.Save(context.Background(), sampleCatalog()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, FileName, entries[0].Name())
}

func TestStore_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{not json"), 0o644))

	_, err := NewStore(dir).Load(context.Background())

	assert.True(t, coreerrors.IsCorruptState(err))
}

func TestStore_LoadNullGrants(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"last_updated":null,"grants":null}`), 0o644))

	catalog, err := NewStore(dir).Load(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, catalog.Grants)
}
