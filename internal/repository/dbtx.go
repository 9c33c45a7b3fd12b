// filepath: internal/repository/dbtx.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/noahchrist/myCbbModel/internal/models"
	"github.com/noahchrist/myCbbModel/internal/shared"

	"github.com/Masterminds/squirrel"
)

// Tx is a wrapper around *sql.Tx that provides transactional database operations.
type Tx struct {
	*sql.Tx
}

// InsertGamesInTx inserts a batch of game rows within a transaction.
// All rows share one multi-value INSERT so a batch is written in a single
// statement. Missing keys and nil values become NULL.
func (tx *Tx) InsertGamesInTx(builder squirrel.StatementBuilderType, table string, games []models.Game) (int64, error) {
	if !SafeNameRegex.MatchString(table) {
		return 0, fmt.Errorf("games table %q: %w", table, shared.ErrInvalidName)
	}
	if len(games) == 0 {
		return 0, nil
	}

	columns := models.StandardGameColumns.Names()
	quoted := make([]string, 0, len(columns))
	for _, col := range columns {
		quoted = append(quoted, fmt.Sprintf("\"%s\"", col))
	}

	insert := builder.Insert(fmt.Sprintf("\"%s\"", table)).Columns(quoted...)
	for _, game := range games {
		values := make([]interface{}, 0, len(columns))
		for _, col := range columns {
			values = append(values, game[col])
		}
		insert = insert.Values(values...)
	}

	sqlQuery, args, err := insert.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert query: %w", err)
	}

	res, err := tx.Exec(sqlQuery, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert games: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// CreateRunInTx writes a new run record within a transaction.
func (tx *Tx) CreateRunInTx(builder squirrel.StatementBuilderType, run *models.Run) error {
	insert := builder.Insert("etl_runs").
		Columns("id", "dataset", "table_name", "mode", "status", "files", "duplicates_dropped", "rows_loaded", "error", "started_at").
		Values(run.ID, run.Dataset, run.TableName, run.Mode, run.Status, run.Files, run.Duplicates, run.RowsLoaded, run.Error, run.StartedAt)

	sqlQuery, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build run insert: %w", err)
	}

	_, err = tx.Exec(sqlQuery, args...)
	return err
}
