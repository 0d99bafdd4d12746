package database

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Driver identifies which database/sql driver a connection uses.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "pgx"
)

// Dialect captures the SQL differences between the supported backends so
// query code can be written once against ? placeholders.
type Dialect struct {
	driver Driver
}

// NewDialect returns the dialect for a driver. Open picks the right one
// from the DSN; this is for callers that manage their own connection.
func NewDialect(driver Driver) Dialect {
	return Dialect{driver: driver}
}

// Driver returns the underlying driver name.
func (d Dialect) Driver() Driver { return d.driver }

// Rebind rewrites ? placeholders into the backend's positional style. Query
// text in this codebase never quotes a literal question mark, so a plain
// scan is enough.
func (d Dialect) Rebind(query string) string {
	if d.driver != DriverPostgres || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// IsUniqueViolation reports whether err is a unique-constraint violation
// from either backend. Postgres surfaces SQLSTATE 23505; the SQLite driver
// only exposes the violation through its message text.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
