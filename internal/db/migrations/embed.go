// filepath: internal/db/migrations/embed.go
package migrations

import "embed"

// FS carries the goose migration files for the etl_runs schema.
//
//go:embed *.sql
var FS embed.FS
