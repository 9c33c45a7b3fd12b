// filepath: internal/storage/prune.go
package storage

import (
	"os"
	"path/filepath"
	"time"

	"github.com/noahchrist/myCbbModel/internal/logging"
)

// PruneCache removes cached dataset directories whose archive has not been
// touched for longer than maxAge. A maxAge of 0 disables pruning.
// Returns the number of dataset directories removed.
func PruneCache(cacheRoot string, maxAge time.Duration) (int, error) {
	if maxAge == 0 {
		return 0, nil
	}

	datasetsDir := filepath.Join(cacheRoot, "datasets")
	owners, err := os.ReadDir(datasetsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil // Nothing cached yet
		}
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for _, owner := range owners {
		if !owner.IsDir() {
			continue
		}
		ownerDir := filepath.Join(datasetsDir, owner.Name())

		slugs, err := os.ReadDir(ownerDir)
		if err != nil {
			return removed, err
		}

		for _, slug := range slugs {
			if !slug.IsDir() {
				continue
			}
			slugDir := filepath.Join(ownerDir, slug.Name())

			info, err := os.Stat(slugDir)
			if err != nil {
				return removed, err
			}
			if info.ModTime().After(cutoff) {
				continue
			}

			if err := os.RemoveAll(slugDir); err != nil {
				return removed, err
			}
			logging.Log.Infof("Pruned cached dataset %s/%s (last used %s)",
				owner.Name(), slug.Name(), info.ModTime().Format(time.RFC3339))
			removed++
		}
	}

	return removed, nil
}
