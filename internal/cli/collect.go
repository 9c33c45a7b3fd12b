// filepath: internal/cli/collect.go
package cli

import (
	"context"
	"fmt"

	"github.com/noahchrist/myCbbModel/internal/audit"
	"github.com/noahchrist/myCbbModel/internal/etl"
	"github.com/noahchrist/myCbbModel/internal/kaggle"
	"github.com/noahchrist/myCbbModel/internal/logging"
	"github.com/noahchrist/myCbbModel/internal/repository"
	"github.com/noahchrist/myCbbModel/internal/shared"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ifExistsValue is a pflag.Value that only accepts the supported load modes.
type ifExistsValue string

var _ pflag.Value = (*ifExistsValue)(nil)

func (v *ifExistsValue) String() string { return string(*v) }

func (v *ifExistsValue) Set(s string) error {
	if !shared.LoadMode(s).Valid() {
		return fmt.Errorf("must be one of: %s, %s", shared.LoadModeReplace, shared.LoadModeAppend)
	}
	*v = ifExistsValue(s)
	return nil
}

func (v *ifExistsValue) Type() string { return "string" }

var ifExists ifExistsValue

// collectCmd downloads the games dataset and loads it into SQLite.
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Download the games dataset from Kaggle and load it into the database",
	Long: `Downloads the configured Kaggle dataset archive (reusing a cached copy when available),
extracts its CSV files, normalizes and cleans the game rows, and loads them into a
SQLite table. Each run is recorded in etl_runs. This does not start the HTTP server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCollect()
	},
}

func init() {
	RootCmd.AddCommand(collectCmd)

	collectCmd.Flags().StringVar(&dataset, "dataset", "", "Kaggle dataset in owner/slug form. Defaults to the configured dataset.")
	collectCmd.Flags().StringVar(&table, "table", "", "Target table for the loaded games. Defaults to the configured table.")
	collectCmd.Flags().Var(&ifExists, "if-exists", "What to do when the target table already exists: replace or append.")
	collectCmd.Flags().BoolVar(&forceDownload, "force-download", false, "Re-download the dataset archive even when a cached copy exists.")
	collectCmd.Flags().StringVar(&cacheRoot, "cache-root", "", "Directory for cached dataset archives. (Env: CBB_CACHE_ROOT)")
}

func runCollect() error {
	opts := etl.Options{
		Dataset:       cfg.ETL.Dataset,
		Table:         cfg.ETL.Table,
		Mode:          shared.LoadMode(cfg.ETL.IfExists),
		ForceDownload: forceDownload,
	}
	if dataset != "" {
		opts.Dataset = dataset
	}
	if table != "" {
		opts.Table = table
	}
	if ifExists != "" {
		opts.Mode = shared.LoadMode(ifExists)
	}

	creds, err := kaggle.LoadCredentials()
	if err != nil {
		return err
	}

	repo, err := repository.NewRepository(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchemaBootstrapped(); err != nil {
		return fmt.Errorf("failed to bootstrap database: %w", err)
	}
	if err := repo.ValidateSchema(); err != nil {
		return fmt.Errorf("cannot collect into an outdated database: %w", err)
	}

	client := kaggle.NewClient(&kaggle.ClientConfig{
		Credentials:     creds,
		MaxDownloadSize: cfg.MaxDownloadSizeBytes,
	})
	auditor := audit.NewLoggerAuditor(cfg.Logging.AuditEnabled)

	collector := etl.NewCollector(etl.Dependencies{
		Store:      repo,
		Downloader: client,
		Auditor:    auditor,
	}, cfg)

	run, err := collector.Run(context.Background(), opts)
	if err != nil {
		return fmt.Errorf("collection failed: %w", err)
	}

	logging.Log.Infof("Run %s finished: %d file(s) processed, %d duplicate(s) dropped, %d row(s) loaded into '%s'",
		run.ID, run.Files, run.Duplicates, run.RowsLoaded, run.TableName)
	return nil
}
