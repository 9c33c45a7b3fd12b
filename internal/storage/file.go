// filepath: internal/storage/file.go
// Package storage manages the on-disk cache of downloaded dataset archives.
// This file handles saving and unpacking archives.
package storage

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SaveFile saves file data from a reader to a specified path.
// It streams the file to avoid loading it entirely into memory.
func SaveFile(fileData io.Reader, path string) (int64, error) {
	// Create the destination file.
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("could not create file: %w", err)
	}
	defer f.Close()

	// Stream the download data to the file. This is the main data transfer.
	fileSize, err := io.Copy(f, fileData)
	if err != nil {
		return 0, fmt.Errorf("could not write file: %w", err)
	}

	return fileSize, nil
}

// ExtractZip unpacks an archive into destDir and returns the paths of the
// extracted files. Directory entries are created but not returned.
func ExtractZip(archivePath, destDir string) ([]string, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("could not open archive: %w", err)
	}
	defer reader.Close()

	cleanedDest := filepath.Clean(destDir)
	extracted := make([]string, 0, len(reader.File))

	for _, f := range reader.File {
		target := filepath.Join(cleanedDest, f.Name)

		// --- SECURITY: Prevent Zip Slip ---
		if !strings.HasPrefix(filepath.Clean(target), cleanedDest+string(os.PathSeparator)) {
			return nil, fmt.Errorf("invalid archive entry path: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return nil, fmt.Errorf("could not create directory %s: %w", target, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return nil, fmt.Errorf("could not create directory for %s: %w", target, err)
		}

		src, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("could not open archive entry %s: %w", f.Name, err)
		}

		if _, err := SaveFile(src, target); err != nil {
			src.Close()
			return nil, fmt.Errorf("could not extract %s: %w", f.Name, err)
		}
		src.Close()

		extracted = append(extracted, target)
	}

	return extracted, nil
}
