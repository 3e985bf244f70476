package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/secs-tools/gemsink/internal/gemsink/config"
	"github.com/secs-tools/gemsink/internal/gemsink/event"
	"github.com/secs-tools/gemsink/internal/gemsink/logger"
	"github.com/secs-tools/gemsink/internal/gemsink/payload"
	"github.com/secs-tools/gemsink/internal/gemsink/store"
)

// IngestOptions configures one ingest run.
type IngestOptions struct {
	Input string // label for logs and the run record, "stdin" when reading a pipe
	Table string
}

// IngestSummary describes one completed ingest run.
type IngestSummary struct {
	RunID     string `json:"run_id"`
	Timestamp string `json:"timestamp"`
	Input     string `json:"input"`
	Table     string `json:"table"`
	Payloads  int    `json:"payloads"`
	Events    int    `json:"events"`
	Rows      int    `json:"rows_inserted"`
}

func appendRunLog(path string, summary IngestSummary) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	return enc.Encode(summary)
}

// RunIngest is the core ingest loop: scan payloads, normalize, flatten, then
// insert every extracted row inside a single transaction. It is factored out
// from the Cobra command so it can be unit tested.
//
// There is no partial-success mode: the first malformed payload, unsupported
// payload type, or storage failure aborts the run and nothing is committed.
func RunIngest(ctx context.Context, in io.Reader, st *store.Store, opts IngestOptions, cfg *config.Config) (*IngestSummary, error) {
	log := logger.L()
	runID := uuid.NewString()
	startTime := time.Now()
	log.Infow("starting ingest run",
		"run_id", runID,
		"input", opts.Input,
		"table", opts.Table)

	var rows []event.Row
	payloads, events := 0, 0

	sc := payload.NewScanner(in)
	for sc.Scan() {
		payloads++
		if payloads%1000 == 0 {
			log.Infow("ingest progress",
				"payloads", payloads,
				"events", events,
				"rows", len(rows))
		}

		docs, err := payload.Normalize(sc.Value())
		if err != nil {
			log.Errorw("normalize payload",
				"payload_index", payloads,
				"err", err.Error())
			return nil, fmt.Errorf("normalize payload %d: %w", payloads, err)
		}
		for _, doc := range docs {
			evt, err := event.Decode(doc)
			if err != nil {
				log.Errorw("decode event",
					"payload_index", payloads,
					"err", err.Error())
				return nil, fmt.Errorf("payload %d: %w", payloads, err)
			}
			events++
			rows = append(rows, event.Flatten(evt)...)
		}
	}
	if err := sc.Err(); err != nil {
		log.Errorw("scan input", "err", err.Error())
		return nil, fmt.Errorf("scan input: %w", err)
	}
	log.Debugw("flattened input",
		"payloads", payloads,
		"events", events,
		"rows", len(rows))

	if err := st.EnsureEventTable(ctx, opts.Table); err != nil {
		log.Errorw("ensure event table", "table", opts.Table, "err", err.Error())
		return nil, err
	}
	if err := st.EnsureRunTable(ctx); err != nil {
		log.Errorw("ensure run table", "err", err.Error())
		return nil, err
	}

	tx, err := st.Begin(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.InsertRows(ctx, tx, opts.Table, rows); err != nil {
		_ = tx.Rollback()
		log.Errorw("insert rows", "table", opts.Table, "err", err.Error())
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		log.Errorw("commit ingest", "err", err.Error())
		return nil, fmt.Errorf("commit ingest: %w", err)
	}

	summary := IngestSummary{
		RunID:     runID,
		Timestamp: startTime.UTC().Format(time.RFC3339Nano),
		Input:     opts.Input,
		Table:     opts.Table,
		Payloads:  payloads,
		Events:    events,
		Rows:      len(rows),
	}

	// The rows are committed at this point; audit bookkeeping failures are
	// logged, not fatal.
	if err := st.RecordRun(ctx, store.RunRecord{
		RunID:     summary.RunID,
		StartedAt: summary.Timestamp,
		Input:     summary.Input,
		TableName: summary.Table,
		Payloads:  summary.Payloads,
		Events:    summary.Events,
		Rows:      summary.Rows,
	}); err != nil {
		log.Errorw("record ingest run", "run_id", runID, "err", err.Error())
	}
	if cfg != nil && cfg.Logging.RunLog != "" {
		if err := appendRunLog(cfg.Logging.RunLog, summary); err != nil {
			log.Errorw("write run log",
				"path", cfg.Logging.RunLog,
				"err", err.Error())
		} else {
			log.Debugw("wrote run summary", "path", cfg.Logging.RunLog)
		}
	}

	duration := time.Since(startTime)
	log.Infow("completed ingest run",
		"run_id", runID,
		"duration", duration,
		"payloads", payloads,
		"events", events,
		"rows_inserted", len(rows))

	return &summary, nil
}
