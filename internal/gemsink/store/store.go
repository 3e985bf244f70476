package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/secs-tools/gemsink/internal/gemsink/event"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// eventColumns lists the destination columns in insert order. FUNTIONC and
// CARIERID are long-standing misspellings in the downstream schema; they are
// kept so existing consumers keep working.
var eventColumns = []string{
	"STREAM", "FUNTIONC", "CEID", "RPTID", "EQPID",
	"LOTID", "CARIERID", "JIGID", "MATID", "MATERIALID",
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store wraps a database handle for one ingest destination.
type Store struct {
	db     *sql.DB
	driver string
}

// Open opens the destination database. The driver must be one of sqlite3,
// postgres, or mysql. The connection is held for the duration of one ingest
// and released by Close.
func Open(driver, dsn string) (*Store, error) {
	switch driver {
	case DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if driver == DriverSQLite {
		// single writer; the ingest is one synchronous call chain
		db.SetMaxOpenConns(1)
	}
	return &Store{db: db, driver: driver}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for read-side helpers and tests.
func (s *Store) DB() *sql.DB { return s.db }

// ph returns the bind placeholder for 1-based position i.
func (s *Store) ph(i int) string {
	if s.driver == DriverPostgres {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

func checkIdent(table string) error {
	if !identPattern.MatchString(table) {
		return fmt.Errorf("invalid table name: %q", table)
	}
	return nil
}

// EnsureEventTable idempotently creates the flattened-row table.
func (s *Store) EnsureEventTable(ctx context.Context, table string) error {
	if err := checkIdent(table); err != nil {
		return err
	}
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	STREAM INTEGER,
	FUNTIONC INTEGER,
	CEID TEXT,
	RPTID TEXT,
	EQPID TEXT,
	LOTID TEXT,
	CARIERID TEXT,
	JIGID TEXT,
	MATID TEXT,
	MATERIALID TEXT
)`, table)
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	return nil
}

// Begin starts the ingest transaction. The caller commits or rolls back; a
// failure partway through row insertion must leave nothing committed.
func (s *Store) Begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return tx, nil
}

// InsertRows appends rows in order within tx. Row contents are not
// validated here; a shape mismatch surfaces as a driver error.
func (s *Store) InsertRows(ctx context.Context, tx *sql.Tx, table string, rows []event.Row) error {
	if err := checkIdent(table); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, s.insertSQL(table))
	if err != nil {
		return fmt.Errorf("prepare insert into %s: %w", table, err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, row.Args()...); err != nil {
			return fmt.Errorf("insert row %d into %s: %w", i, table, err)
		}
	}
	return nil
}

func (s *Store) insertSQL(table string) string {
	binds := make([]string, len(eventColumns))
	for i := range eventColumns {
		binds[i] = s.ph(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(eventColumns, ", "), strings.Join(binds, ", "))
}

// CountRows returns the number of rows in table.
func (s *Store) CountRows(ctx context.Context, table string) (int, error) {
	if err := checkIdent(table); err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rows in %s: %w", table, err)
	}
	return n, nil
}
