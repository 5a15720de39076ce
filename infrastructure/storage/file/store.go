// ABOUTME: File-backed catalog store writing grants.json under the data directory
// ABOUTME: Writes through a temp file and rename so readers never see a partial document

package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"grant-scraper/core/domain"
	coreerrors "grant-scraper/core/errors"
)

// FileName is the catalog document inside the data directory
const FileName = "grants.json"

// Store implements CatalogStore on the local filesystem
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created on first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the location of the catalog document
func (s *Store) Path() string {
	return filepath.Join(s.dir, FileName)
}

// Load reads the catalog. A missing file is an empty catalog.
func (s *Store) Load(ctx context.Context) (*domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewCatalog(), nil
	}
	if err != nil {
		return nil, &coreerrors.CorruptStateError{Path: s.Path(), Err: err}
	}

	return Decode(s.Path(), data)
}

// Save replaces the catalog document atomically
func (s *Store) Save(ctx context.Context, catalog *domain.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(catalog)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".grants-*.json")
	if err != nil {
		return fmt.Errorf("create temp catalog: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp catalog: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp catalog: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp catalog: %w", err)
	}

	if err := os.Rename(tmpName, s.Path()); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}

// Encode renders a catalog the way it is persisted: indented, with
// non-ASCII text and markup characters left unescaped
func Encode(catalog *domain.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(catalog); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a persisted catalog. location only labels the error.
func Decode(location string, data []byte) (*domain.Catalog, error) {
	var catalog domain.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, &coreerrors.CorruptStateError{Path: location, Err: err}
	}
	if catalog.Grants == nil {
		catalog.Grants = []domain.Grant{}
	}
	return &catalog, nil
}
