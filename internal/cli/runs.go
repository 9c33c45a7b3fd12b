// filepath: internal/cli/runs.go
package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/noahchrist/myCbbModel/internal/repository"

	"github.com/spf13/cobra"
)

// runsCmd lists recent collection runs.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent collection runs",
	Long:  `Prints the most recent etl_runs records, newest first. This does not start the HTTP server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRuns()
	},
}

func init() {
	RootCmd.AddCommand(runsCmd)

	runsCmd.Flags().IntVar(&runsLimit, "limit", 10, "Maximum number of runs to list.")
}

func runRuns() error {
	repo, err := repository.NewRepository(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer repo.Close()

	// A fresh database simply has no runs yet.
	if err := repo.EnsureSchemaBootstrapped(); err != nil {
		return fmt.Errorf("failed to bootstrap database: %w", err)
	}

	runs, err := repo.GetRuns(runsLimit)
	if err != nil {
		return fmt.Errorf("failed to load runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No collection runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tSTATUS\tMODE\tTABLE\tFILES\tDUPES\tROWS\tERROR")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			run.ID,
			run.StartedAt.Format(time.RFC3339),
			run.Status,
			run.Mode,
			run.TableName,
			run.Files,
			run.Duplicates,
			run.RowsLoaded,
			run.Error,
		)
	}
	return w.Flush()
}
