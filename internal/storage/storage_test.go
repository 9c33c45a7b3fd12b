// filepath: internal/storage/storage_test.go
package storage

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/noahchrist/myCbbModel/internal/shared"

	"github.com/stretchr/testify/assert"
)

func testRef() shared.DatasetRef {
	return shared.DatasetRef{Owner: "nateduncan", Slug: "2011current-ncaa-basketball-games"}
}

func TestGetArchivePath(t *testing.T) {
	root := t.TempDir()

	path, err := GetArchivePath(root, testRef())
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, filepath.Join("datasets", "nateduncan", "2011current-ncaa-basketball-games", "2011current-ncaa-basketball-games.zip")))

	// Directory structure was created
	info, err := os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGetCachePathTraversal(t *testing.T) {
	root := t.TempDir()

	_, err := GetArchivePath(root, shared.DatasetRef{Owner: "..", Slug: ".."})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "path traversal")
}

func writeTestZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	assert.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		assert.NoError(t, err)
		_, err = w.Write([]byte(content))
		assert.NoError(t, err)
	}
	assert.NoError(t, zw.Close())
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")

	size, err := SaveFile(strings.NewReader("team,pts\nPurdue,87\n"), path)
	assert.NoError(t, err)
	assert.Equal(t, int64(19), size)

	content, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "team,pts\nPurdue,87\n", string(content))
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "dataset.zip")
	writeTestZip(t, archive, map[string]string{
		"games_2023.csv":        "Team,Pts\nPurdue,87\n",
		"nested/games_2024.csv": "Team,Pts\nGonzaga,91\n",
	})

	dest := filepath.Join(dir, "out")
	files, err := ExtractZip(archive, dest)
	assert.NoError(t, err)
	assert.Len(t, files, 2)

	content, err := os.ReadFile(filepath.Join(dest, "games_2023.csv"))
	assert.NoError(t, err)
	assert.Contains(t, string(content), "Purdue")

	content, err = os.ReadFile(filepath.Join(dest, "nested", "games_2024.csv"))
	assert.NoError(t, err)
	assert.Contains(t, string(content), "Gonzaga")
}

func TestExtractZipSlip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	writeTestZip(t, archive, map[string]string{
		"../escape.txt": "should not land outside dest",
	})

	dest := filepath.Join(dir, "out")
	_, err := ExtractZip(archive, dest)
	assert.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "escape.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestPruneCache(t *testing.T) {
	root := t.TempDir()

	// Fresh entry stays
	freshPath, err := GetArchivePath(root, testRef())
	assert.NoError(t, err)
	_, err = SaveFile(strings.NewReader("zipdata"), freshPath)
	assert.NoError(t, err)

	// Stale entry is removed
	staleRef := shared.DatasetRef{Owner: "someowner", Slug: "old-dataset"}
	stalePath, err := GetArchivePath(root, staleRef)
	assert.NoError(t, err)
	_, err = SaveFile(strings.NewReader("zipdata"), stalePath)
	assert.NoError(t, err)

	staleDir := filepath.Dir(stalePath)
	old := time.Now().Add(-60 * 24 * time.Hour)
	assert.NoError(t, os.Chtimes(staleDir, old, old))

	removed, err := PruneCache(root, 30*24*time.Hour)
	assert.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(staleDir)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Dir(freshPath))
	assert.NoError(t, err)

	// Disabled pruning is a no-op
	removed, err = PruneCache(root, 0)
	assert.NoError(t, err)
	assert.Zero(t, removed)

	// Missing cache root is fine
	removed, err = PruneCache(filepath.Join(root, "does-not-exist"), time.Hour)
	assert.NoError(t, err)
	assert.Zero(t, removed)
}
