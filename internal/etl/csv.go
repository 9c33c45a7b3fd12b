// filepath: internal/etl/csv.go
package etl

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/noahchrist/myCbbModel/internal/models"
)

// ReadGamesFile parses one CSV file into raw rows in canonical column order.
// The header is matched against the candidate spellings; data rows are
// returned untouched so duplicate detection can run before cleaning.
func ReadGamesFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Source files occasionally carry ragged rows; missing cells become empty.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", filepath.Base(path), err)
	}

	mapping, err := MatchColumns(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	order := models.StandardGameColumns.Names()
	rows := make([][]string, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
		}

		row := make([]string, len(order))
		for i, target := range order {
			idx := mapping[target]
			if idx < len(record) {
				row[i] = record[idx]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// DedupeRows drops exact duplicate rows, keeping the first occurrence.
// Comparison happens on the raw values, before any cleaning.
func DedupeRows(rows [][]string) ([][]string, int64) {
	seen := make(map[string]struct{}, len(rows))
	unique := make([][]string, 0, len(rows))
	for _, row := range rows {
		// The unit separator keeps adjacent fields from colliding.
		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, row)
	}
	return unique, int64(len(rows) - len(unique))
}
