// filepath: internal/repository/runs_repo.go
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/noahchrist/myCbbModel/internal/models"
	"github.com/noahchrist/myCbbModel/internal/shared"
)

// runColumns is the select list for etl_runs, in scanRun order.
var runColumns = []string{
	"id", "dataset", "table_name", "mode", "status",
	"files", "duplicates_dropped", "rows_loaded", "error",
	"started_at", "finished_at",
}

// CreateRun records the start of a collection run.
func (s *Repository) CreateRun(run *models.Run) error {
	tx, err := s.BeginTx()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.CreateRunInTx(s.Builder, run); err != nil {
		return err
	}
	return tx.Commit()
}

// FinishRun stores the run's final status and counters and stamps
// finished_at. The passed run is updated in place.
func (s *Repository) FinishRun(run *models.Run) error {
	now := time.Now().UTC()
	update := s.Builder.Update("etl_runs").
		Set("status", run.Status).
		Set("files", run.Files).
		Set("duplicates_dropped", run.Duplicates).
		Set("rows_loaded", run.RowsLoaded).
		Set("error", run.Error).
		Set("finished_at", now).
		Where("id = ?", run.ID)

	sqlQuery, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build run update: %w", err)
	}

	res, err := s.DB.Exec(sqlQuery, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return shared.ErrRunNotFound
	}

	run.FinishedAt = &now
	return nil
}

// GetRun retrieves a single run by its ID.
func (s *Repository) GetRun(id string) (*models.Run, error) {
	query := s.Builder.Select(runColumns...).From("etl_runs").Where("id = ?", id)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	run, err := scanRun(s.DB.QueryRow(sqlQuery, args...))
	if err == sql.ErrNoRows {
		return nil, shared.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// GetRuns retrieves the most recent runs, newest first.
func (s *Repository) GetRuns(limit int) ([]models.Run, error) {
	query := s.Builder.Select(runColumns...).
		From("etl_runs").
		OrderBy("started_at DESC").
		Limit(uint64(limit))

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.DB.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	// Initialize an empty, non-nil slice to ensure JSON marshals to [] instead of null.
	runs := make([]models.Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*models.Run, error) {
	var run models.Run
	var finishedAt sql.NullTime
	err := row.Scan(
		&run.ID, &run.Dataset, &run.TableName, &run.Mode, &run.Status,
		&run.Files, &run.Duplicates, &run.RowsLoaded, &run.Error,
		&run.StartedAt, &finishedAt,
	)
	if err != nil {
		return nil, err
	}
	if finishedAt.Valid {
		t := finishedAt.Time
		run.FinishedAt = &t
	}
	return &run, nil
}
