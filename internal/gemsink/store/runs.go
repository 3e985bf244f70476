package store

import (
	"context"
	"fmt"
	"time"
)

const runTable = "ingest_runs"

// RunRecord is one row of the ingest audit table. StartedAt is RFC3339Nano
// UTC, the canonical stored form.
type RunRecord struct {
	RunID     string
	StartedAt string
	Input     string
	TableName string
	Payloads  int
	Events    int
	Rows      int
}

// EnsureRunTable idempotently creates the ingest audit table.
func (s *Store) EnsureRunTable(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	RUN_ID TEXT,
	STARTED_AT TEXT,
	INPUT TEXT,
	TABLE_NAME TEXT,
	PAYLOADS INTEGER,
	EVENTS INTEGER,
	ROWS_INSERTED INTEGER
)`, runTable)
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", runTable, err)
	}
	return nil
}

// RecordRun appends one run record. It is called after the ingest
// transaction commits, so a failure here never undoes inserted rows.
func (s *Store) RecordRun(ctx context.Context, rec RunRecord) error {
	q := fmt.Sprintf(
		"INSERT INTO %s (RUN_ID, STARTED_AT, INPUT, TABLE_NAME, PAYLOADS, EVENTS, ROWS_INSERTED) VALUES (%s, %s, %s, %s, %s, %s, %s)",
		runTable, s.ph(1), s.ph(2), s.ph(3), s.ph(4), s.ph(5), s.ph(6), s.ph(7))
	if _, err := s.db.ExecContext(ctx, q,
		rec.RunID, rec.StartedAt, rec.Input, rec.TableName,
		rec.Payloads, rec.Events, rec.Rows); err != nil {
		return fmt.Errorf("record run %s: %w", rec.RunID, err)
	}
	return nil
}

// ListRuns returns recorded runs in insertion order. When since is non-zero,
// runs started before it are skipped. Timestamps that fail to parse are kept
// rather than silently dropped.
func (s *Store) ListRuns(ctx context.Context, since time.Time) ([]RunRecord, error) {
	q := fmt.Sprintf(
		"SELECT RUN_ID, STARTED_AT, INPUT, TABLE_NAME, PAYLOADS, EVENTS, ROWS_INSERTED FROM %s", runTable)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(&rec.RunID, &rec.StartedAt, &rec.Input, &rec.TableName,
			&rec.Payloads, &rec.Events, &rec.Rows); err != nil {
			return nil, fmt.Errorf("scan run record: %w", err)
		}
		if !since.IsZero() {
			if t, err := time.Parse(time.RFC3339Nano, rec.StartedAt); err == nil && t.Before(since) {
				continue
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return out, nil
}
