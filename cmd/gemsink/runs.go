package main

import (
	"context"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/secs-tools/gemsink/internal/gemsink/config"
	"github.com/secs-tools/gemsink/internal/gemsink/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded ingest runs",
	RunE:  runRuns,
}

var (
	flagRunsDriver string
	flagRunsDB     string
	flagSince      string
)

func init() {
	runsCmd.Flags().StringVar(&flagRunsDriver, "driver", "", "destination driver: sqlite3|postgres|mysql (default sqlite3)")
	runsCmd.Flags().StringVar(&flagRunsDB, "db", "", "destination path (sqlite3) or database name (default events.db)")
	runsCmd.Flags().StringVar(&flagSince, "since", "", "only show runs started at or after this time (any common format)")
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	driver, database, _ := storageTarget(cfg, flagRunsDriver, flagRunsDB, "")

	var since time.Time
	if flagSince != "" {
		t, err := dateparse.ParseAny(flagSince)
		if err != nil {
			return fmt.Errorf("parse --since: %w", err)
		}
		since = t.UTC()
	}

	dsn := store.BuildDSN(driver, cfg.Storage.User, cfg.Storage.Password, cfg.Storage.Host, cfg.Storage.Port, database)
	st, err := store.Open(driver, dsn)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	if err := st.EnsureRunTable(ctx); err != nil {
		return err
	}
	runs, err := st.ListRuns(ctx, since)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No ingest runs recorded.")
		return nil
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  input=%s table=%s payloads=%d events=%d rows=%d\n",
			r.StartedAt, r.RunID, r.Input, r.TableName, r.Payloads, r.Events, r.Rows)
	}
	return nil
}
