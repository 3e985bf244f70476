package store

import "fmt"

// BuildDSN constructs a driver DSN. For sqlite3 the database argument is the
// file path and host/port/credentials are ignored; a busy timeout is added
// so a ListRuns issued against a database mid-ingest waits instead of
// failing.
func BuildDSN(driver, user, pass, host string, port int, database string) string {
	switch driver {
	case DriverPostgres:
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", user, pass, host, port, database)
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", user, pass, host, port, database)
	default:
		return database + "?_busy_timeout=5000"
	}
}
