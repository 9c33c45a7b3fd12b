// filepath: internal/repository/repository.go
// Package repository implements SQLite persistence for game tables and ETL runs.
package repository

import (
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/noahchrist/myCbbModel/internal/config"

	"github.com/Masterminds/squirrel"
	"github.com/patrickmn/go-cache"
	_ "modernc.org/sqlite" // SQLite driver
)

// SafeNameRegex guards every identifier that is interpolated into SQL.
var SafeNameRegex = regexp.MustCompile("^[a-zA-Z_][a-zA-Z0-9_]*$")

// Repository provides access to the SQLite database.
type Repository struct {
	DB      *sql.DB
	Builder squirrel.StatementBuilderType // SQL Query Builder
	Cache   *cache.Cache                  // Caches table schema lookups
}

// NewRepository opens the SQLite database referenced by the configuration.
func NewRepository(cfg *config.Config) (*Repository, error) {
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; serialize access through one connection
	// instead of relying on SQLITE_BUSY retries.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &Repository{
		DB:      db,
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		Cache:   cache.New(5*time.Minute, 10*time.Minute),
	}, nil
}

// Close closes the underlying database handle.
func (s *Repository) Close() error {
	return s.DB.Close()
}

// Ping verifies the database connection is alive.
func (s *Repository) Ping() error {
	return s.DB.Ping()
}

// BeginTx starts a transaction wrapped in our Tx helper type.
func (s *Repository) BeginTx() (*Tx, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}
	return &Tx{tx}, nil
}
