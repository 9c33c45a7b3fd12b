// internal/storage/paths.go
// Path generation for the dataset download cache.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/noahchrist/myCbbModel/internal/shared"
)

// getCachePath is an internal helper to create and validate cache paths.
// subDirs are joined *after* cacheRoot (e.g., "datasets", owner, slug).
func getCachePath(cacheRoot string, subDirs ...string) (string, error) {
	dir := filepath.Join(cacheRoot, filepath.Join(subDirs...))

	// --- SECURITY: Prevent Path Traversal ---
	cleanedDir := filepath.Clean(dir)
	cleanedRoot := filepath.Clean(cacheRoot)
	if !strings.HasPrefix(cleanedDir, cleanedRoot) || cleanedDir == cleanedRoot {
		return "", fmt.Errorf("invalid path: potential path traversal")
	}

	if err := os.MkdirAll(cleanedDir, 0755); err != nil {
		return "", fmt.Errorf("could not create directory structure: %w", err)
	}

	return cleanedDir, nil
}

// GetArchivePath returns the full path the dataset archive is downloaded to.
// It creates the necessary owner/slug subdirectories if they don't exist.
func GetArchivePath(cacheRoot string, ref shared.DatasetRef) (string, error) {
	dir, err := getCachePath(cacheRoot, "datasets", ref.Owner, ref.Slug)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ref.Slug+".zip"), nil
}

// GetExtractDir returns the directory the dataset archive is unpacked into.
// It creates the necessary subdirectories if they don't exist.
func GetExtractDir(cacheRoot string, ref shared.DatasetRef) (string, error) {
	return getCachePath(cacheRoot, "datasets", ref.Owner, ref.Slug, "files")
}
