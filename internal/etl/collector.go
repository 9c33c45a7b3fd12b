// filepath: internal/etl/collector.go
package etl

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/noahchrist/myCbbModel/internal/config"
	"github.com/noahchrist/myCbbModel/internal/logging"
	"github.com/noahchrist/myCbbModel/internal/models"
	"github.com/noahchrist/myCbbModel/internal/services"
	"github.com/noahchrist/myCbbModel/internal/shared"
	"github.com/noahchrist/myCbbModel/internal/storage"

	"github.com/oklog/ulid/v2"
)

// summaryRows is how many freshly loaded rows the post-load summary shows.
const summaryRows = 5

// Dependencies defines the required services for the collector.
type Dependencies struct {
	Store      Store
	Downloader Downloader
	Auditor    services.Auditor
}

// Options control a single collection run.
type Options struct {
	Dataset       string
	Table         string
	Mode          shared.LoadMode
	ForceDownload bool
}

// Collector runs the game data collection pipeline.
type Collector struct {
	deps Dependencies
	cfg  *config.Config
}

// NewCollector creates a new Collector.
func NewCollector(deps Dependencies, cfg *config.Config) *Collector {
	return &Collector{deps: deps, cfg: cfg}
}

// Run executes the pipeline and records it in etl_runs. The returned run
// carries the final status and counters even when an error is returned.
func (c *Collector) Run(ctx context.Context, opts Options) (*models.Run, error) {
	if !opts.Mode.Valid() {
		return nil, fmt.Errorf("unsupported load mode %q", opts.Mode)
	}
	ref, err := shared.ParseDatasetRef(opts.Dataset)
	if err != nil {
		return nil, err
	}

	run := &models.Run{
		ID:        ulid.Make().String(),
		Dataset:   ref.String(),
		TableName: opts.Table,
		Mode:      string(opts.Mode),
		Status:    models.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	if err := c.deps.Store.CreateRun(run); err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}
	logging.Log.Infof("Starting collection run %s: %s into table '%s' (%s)",
		run.ID, run.Dataset, run.TableName, run.Mode)

	if err := c.collect(ctx, ref, opts, run); err != nil {
		run.Status = models.RunStatusFailed
		run.Error = err.Error()
		if finishErr := c.deps.Store.FinishRun(run); finishErr != nil {
			logging.Log.Errorf("Failed to record run failure: %v", finishErr)
		}
		c.audit(ctx, run)
		return run, err
	}

	run.Status = models.RunStatusSucceeded
	if err := c.deps.Store.FinishRun(run); err != nil {
		return run, fmt.Errorf("failed to record run completion: %w", err)
	}
	c.audit(ctx, run)
	logging.Log.Infof("Collection run %s completed: %d rows in table '%s'",
		run.ID, run.RowsLoaded, run.TableName)
	return run, nil
}

// collect is the pipeline body. It mutates the run's counters as it goes.
func (c *Collector) collect(ctx context.Context, ref shared.DatasetRef, opts Options, run *models.Run) error {
	c.pruneCache()

	archivePath, err := c.fetchArchive(ctx, ref, opts.ForceDownload)
	if err != nil {
		return err
	}

	csvFiles, err := c.extractDataFiles(archivePath, ref)
	if err != nil {
		return err
	}
	logging.Log.Infof("Found %d CSV file(s) in the archive", len(csvFiles))

	var rawRows [][]string
	for _, path := range csvFiles {
		rows, err := ReadGamesFile(path)
		if err != nil {
			return err
		}
		logging.Log.Infof("Loaded %d rows from %s", len(rows), filepath.Base(path))
		rawRows = append(rawRows, rows...)
		run.Files++
	}

	if run.Files > 1 {
		before := len(rawRows)
		rawRows, run.Duplicates = DedupeRows(rawRows)
		logging.Log.Infof("Combined %d rows into %d unique rows", before, len(rawRows))
	}

	logging.Log.Info("Cleaning data...")
	games := make([]models.Game, 0, len(rawRows))
	for _, row := range rawRows {
		games = append(games, CleanGame(row))
	}

	if err := c.prepareTable(opts); err != nil {
		return err
	}

	var countBefore int64
	if opts.Mode == shared.LoadModeAppend {
		countBefore, err = c.deps.Store.CountGames(opts.Table)
		if err != nil {
			return fmt.Errorf("failed to count existing rows: %w", err)
		}
	}

	batchSize := c.cfg.ETL.BatchSize
	if batchSize <= 0 {
		batchSize = len(games)
	}
	for start := 0; start < len(games); start += batchSize {
		end := start + batchSize
		if end > len(games) {
			end = len(games)
		}
		inserted, err := c.deps.Store.InsertGames(opts.Table, games[start:end])
		if err != nil {
			return fmt.Errorf("failed to insert batch: %w", err)
		}
		run.RowsLoaded += inserted
	}
	logging.Log.Infof("Wrote %d rows to table '%s'", run.RowsLoaded, opts.Table)

	if err := c.verifyCount(opts.Table, countBefore, run); err != nil {
		return err
	}

	c.logSummary(opts.Table)
	return nil
}

// pruneCache drops stale cached datasets before the run touches the cache.
// Failures are logged, never fatal.
func (c *Collector) pruneCache() {
	maxAge, err := shared.ParseDuration(c.cfg.ETL.CacheMaxAge)
	if err != nil {
		logging.Log.Warnf("Invalid cache_max_age %q: %v", c.cfg.ETL.CacheMaxAge, err)
		return
	}
	pruned, err := storage.PruneCache(c.cfg.ETL.CacheRoot, maxAge)
	if err != nil {
		logging.Log.Warnf("Cache prune failed: %v", err)
		return
	}
	if pruned > 0 {
		logging.Log.Infof("Pruned %d stale dataset(s) from the cache", pruned)
	}
}

// fetchArchive returns the local path of the dataset archive, downloading it
// unless a cached copy can be reused.
func (c *Collector) fetchArchive(ctx context.Context, ref shared.DatasetRef, force bool) (string, error) {
	archivePath, err := storage.GetArchivePath(c.cfg.ETL.CacheRoot, ref)
	if err != nil {
		return "", err
	}

	if !force {
		if info, err := os.Stat(archivePath); err == nil && info.Size() > 0 {
			logging.Log.Infof("Using cached archive %s (%d bytes)", archivePath, info.Size())
			return archivePath, nil
		}
	}

	logging.Log.Infof("Downloading dataset %s from Kaggle...", ref)
	size, err := c.deps.Downloader.DownloadDataset(ctx, ref, archivePath)
	if err != nil {
		logging.Log.Warn("You may need to configure Kaggle credentials. Visit: https://www.kaggle.com/docs/api#authentication")
		return "", fmt.Errorf("failed to download dataset: %w", err)
	}
	logging.Log.Infof("Dataset downloaded to %s (%d bytes)", archivePath, size)
	return archivePath, nil
}

// extractDataFiles unpacks the archive and returns the contained CSV files.
func (c *Collector) extractDataFiles(archivePath string, ref shared.DatasetRef) ([]string, error) {
	extractDir, err := storage.GetExtractDir(c.cfg.ETL.CacheRoot, ref)
	if err != nil {
		return nil, err
	}

	files, err := storage.ExtractZip(archivePath, extractDir)
	if err != nil {
		return nil, fmt.Errorf("failed to extract archive: %w", err)
	}

	csvFiles := make([]string, 0, len(files))
	for _, f := range files {
		if strings.EqualFold(filepath.Ext(f), ".csv") {
			csvFiles = append(csvFiles, f)
		}
	}
	if len(csvFiles) == 0 {
		return nil, shared.ErrNoDataFiles
	}
	return csvFiles, nil
}

// prepareTable brings the target table into the state the load mode expects.
func (c *Collector) prepareTable(opts Options) error {
	switch opts.Mode {
	case shared.LoadModeReplace:
		if err := c.deps.Store.DropGamesTable(opts.Table); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
		return c.deps.Store.CreateGamesTable(opts.Table)

	case shared.LoadModeAppend:
		exists, err := c.deps.Store.GamesTableExists(opts.Table)
		if err != nil {
			return err
		}
		if !exists {
			return c.deps.Store.CreateGamesTable(opts.Table)
		}
		columns, err := c.deps.Store.GamesTableColumns(opts.Table)
		if err != nil {
			return err
		}
		expected := append([]string{"id"}, models.StandardGameColumns.Names()...)
		if !equalColumns(columns, expected) {
			return fmt.Errorf("table %q has columns [%s]: %w",
				opts.Table, strings.Join(columns, ", "), shared.ErrSchemaMismatch)
		}
		return nil

	default:
		return fmt.Errorf("unsupported load mode %q", opts.Mode)
	}
}

// verifyCount compares the table's row count against what the run loaded.
// A failing count query only warns; a mismatching count fails the run.
func (c *Collector) verifyCount(table string, countBefore int64, run *models.Run) error {
	count, err := c.deps.Store.CountGames(table)
	if err != nil {
		logging.Log.Warnf("Could not verify row count: %v", err)
		return nil
	}

	expected := countBefore + run.RowsLoaded
	if count != expected {
		return fmt.Errorf("%w: expected %d rows in %q, counted %d",
			shared.ErrRowCountMismatch, expected, table, count)
	}
	logging.Log.Infof("Verification: %d rows confirmed in table '%s'", count, table)
	return nil
}

// logSummary logs the first rows of the loaded table in CSV form.
func (c *Collector) logSummary(table string) {
	games, err := c.deps.Store.HeadGames(table, summaryRows)
	if err != nil {
		logging.Log.Warnf("Could not load summary rows: %v", err)
		return
	}
	if len(games) == 0 {
		return
	}

	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	header := append([]string{"id"}, models.StandardGameColumns.Names()...)
	writer.Write(header)
	for _, game := range games {
		record := make([]string, 0, len(header))
		for _, col := range header {
			record = append(record, formatValue(game[col]))
		}
		writer.Write(record)
	}
	writer.Flush()

	logging.Log.Infof("First %d rows of '%s':\n%s", len(games), table, buf.String())
}

func (c *Collector) audit(ctx context.Context, run *models.Run) {
	if c.deps.Auditor == nil {
		return
	}
	c.deps.Auditor.Log(ctx, "collect.run", "cli", run.TableName, map[string]interface{}{
		"run_id":             run.ID,
		"dataset":            run.Dataset,
		"mode":               run.Mode,
		"status":             run.Status,
		"files":              run.Files,
		"duplicates_dropped": run.Duplicates,
		"rows_loaded":        run.RowsLoaded,
	})
}

// formatValue renders a scanned value for the summary CSV.
// SQLite drivers return different concrete types per column affinity.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format("2006-01-02")
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func equalColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
