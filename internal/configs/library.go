package configs

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/ccrypt/ccrypt/internal/catalog"
	kerrors "github.com/ccrypt/ccrypt/internal/errors"
)

// Library is a catalog together with where it is persisted.
type Library struct {
	*catalog.Catalog

	// UUID identifies this catalog across renames of the library file.
	UUID string

	// Path is the library file location.
	Path string
}

type libraryFile struct {
	UUID    string           `toml:"catalog_uuid"`
	NextID  uint64           `toml:"next_id"`
	Records []catalog.Record `toml:"records"`
}

// GenerateCatalogUUID generates a new catalog identifier.
func GenerateCatalogUUID() string {
	return uuid.New().String()
}

// LoadLibrary loads the catalog stored at path. A missing file yields an
// empty catalog with a fresh UUID.
func LoadLibrary(path string, capacity int) (*Library, error) {
	lib := &Library{
		Catalog: catalog.New(catalog.WithCapacity(capacity)),
		Path:    path,
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		lib.UUID = GenerateCatalogUUID()
		return lib, nil
	}

	var file libraryFile
	if err := LoadTOML(path, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrCatalogCorrupt, path, err)
	}

	if err := lib.Restore(file.Records, file.NextID); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	lib.UUID = file.UUID
	if lib.UUID == "" {
		lib.UUID = GenerateCatalogUUID()
	}

	return lib, nil
}

// SaveLibrary persists the catalog snapshot and marks it saved.
func SaveLibrary(lib *Library) error {
	file := libraryFile{
		UUID:    lib.UUID,
		NextID:  lib.NextID(),
		Records: lib.Records(),
	}

	if err := SaveTOML(lib.Path, file); err != nil {
		return fmt.Errorf("failed to save library: %w", err)
	}

	lib.MarkSaved()
	return nil
}

// SaveLibraryIfModified saves only when the catalog changed. It reports
// whether a write happened.
func SaveLibraryIfModified(lib *Library) (bool, error) {
	if !lib.Modified() {
		return false, nil
	}
	if err := SaveLibrary(lib); err != nil {
		return false, err
	}
	return true, nil
}
