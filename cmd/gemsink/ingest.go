package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/secs-tools/gemsink/internal/gemsink/config"
	"github.com/secs-tools/gemsink/internal/gemsink/runner"
	"github.com/secs-tools/gemsink/internal/gemsink/store"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Flatten SECS/GEM JSON payloads into the destination table",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIngest,
}

var (
	flagDriver string
	flagDB     string
	flagTable  string
)

func init() {
	ingestCmd.Flags().StringVar(&flagDriver, "driver", "", "destination driver: sqlite3|postgres|mysql (default sqlite3)")
	ingestCmd.Flags().StringVar(&flagDB, "db", "", "destination path (sqlite3) or database name (default events.db)")
	ingestCmd.Flags().StringVar(&flagTable, "table", "", "destination table (default events)")
}

// storageTarget resolves the effective driver, database, and table from
// config plus command line overrides.
func storageTarget(cfg *config.Config, driverFlag, dbFlag, tableFlag string) (driver, database, table string) {
	driver = cfg.Storage.Driver
	if driverFlag != "" {
		driver = driverFlag
	}
	table = cfg.Storage.Table
	if tableFlag != "" {
		table = tableFlag
	}
	database = cfg.Storage.Database
	if driver == store.DriverSQLite {
		database = cfg.Storage.Path
	}
	if dbFlag != "" {
		database = dbFlag
	}
	return driver, database, table
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	driver, database, table := storageTarget(cfg, flagDriver, flagDB, flagTable)

	// Input reader
	var in io.Reader
	inputLabel := "stdin"
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
		inputLabel = args[0]
	} else {
		in = os.Stdin
	}

	dsn := store.BuildDSN(driver, cfg.Storage.User, cfg.Storage.Password, cfg.Storage.Host, cfg.Storage.Port, database)
	st, err := store.Open(driver, dsn)
	if err != nil {
		return err
	}
	defer st.Close()

	summary, err := runner.RunIngest(context.Background(), in, st, runner.IngestOptions{
		Input: inputLabel,
		Table: table,
	}, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Inserted %d row(s) into '%s' in %s.\n", summary.Rows, table, database)
	return nil
}
