// filepath: internal/repository/schema.go
package repository

import (
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/noahchrist/myCbbModel/internal/db/migrations"
	"github.com/noahchrist/myCbbModel/internal/logging"

	"github.com/pressly/goose/v3"
)

// EnsureSchemaBootstrapped migrates a brand-new database to the latest
// schema version. Databases that already carry a goose version table are
// left alone so operators stay in control of manual migrations.
func (s *Repository) EnsureSchemaBootstrapped() error {
	var name string
	err := s.DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='goose_db_version'").Scan(&name)
	if err == nil {
		// Version table exists, this is not a fresh database.
		return nil
	}

	logging.Log.Info("Fresh database detected, applying schema migrations...")

	goose.SetLogger(logging.Log)
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(s.DB, "."); err != nil {
		return fmt.Errorf("failed to bootstrap schema: %w", err)
	}
	return nil
}

// MigrationVersion returns the highest applied migration version.
func (s *Repository) MigrationVersion() (int64, error) {
	var current int64
	err := s.DB.QueryRow("SELECT COALESCE(MAX(version_id), 0) FROM goose_db_version WHERE is_applied = 1").Scan(&current)
	if err != nil {
		return 0, fmt.Errorf("no migration version found: %w", err)
	}
	return current, nil
}

// ValidateSchema checks that the database is migrated to the latest
// embedded migration version.
func (s *Repository) ValidateSchema() error {
	latest, err := latestMigrationVersion()
	if err != nil {
		return fmt.Errorf("failed to determine latest migration version: %w", err)
	}

	current, err := s.MigrationVersion()
	if err != nil {
		return fmt.Errorf("database schema is outdated (run 'cbbmodel migrate up'): %w", err)
	}

	if current < latest {
		return fmt.Errorf("database schema is outdated: version %d, expected %d (run 'cbbmodel migrate up')", current, latest)
	}
	return nil
}

// latestMigrationVersion parses the highest numeric prefix of the embedded
// migration files (goose's NNNNN_name.sql convention).
func latestMigrationVersion() (int64, error) {
	entries, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, fmt.Errorf("no embedded migrations found")
	}

	var latest int64
	for _, name := range entries {
		prefix, _, ok := strings.Cut(path.Base(name), "_")
		if !ok {
			continue
		}
		v, err := strconv.ParseInt(prefix, 10, 64)
		if err != nil {
			continue
		}
		if v > latest {
			latest = v
		}
	}
	return latest, nil
}
