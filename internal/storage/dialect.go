package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/pkm/internal/migration"
)

// Dialect captures the SQL differences between the supported databases
type Dialect struct {
	driverName string
	migration  migration.Driver
	postgres   bool
}

var (
	// SQLite is the pure-Go SQLite driver (modernc.org/sqlite)
	SQLite = Dialect{driverName: "sqlite", migration: migration.DriverSQLite}
	// SQLite3 is the cgo SQLite driver (github.com/mattn/go-sqlite3)
	SQLite3 = Dialect{driverName: "sqlite3", migration: migration.DriverSQLite}
	// Postgres is the PostgreSQL driver (github.com/lib/pq)
	Postgres = Dialect{driverName: "postgres", migration: migration.DriverPostgres, postgres: true}
)

// DriverName returns the database/sql driver name.
func (d Dialect) DriverName() string { return d.driverName }

// Migration returns the schema script set for the dialect.
func (d Dialect) Migration() migration.Driver { return d.migration }

// IsPostgres reports whether the dialect targets PostgreSQL.
func (d Dialect) IsPostgres() bool { return d.postgres }

func (d Dialect) String() string { return d.driverName }

// Rebind rewrites ? placeholders into the dialect's style. Question marks
// inside single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if !d.postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// GroupConcat returns the aggregate that joins expr with commas.
func (d Dialect) GroupConcat(expr string) string {
	if d.postgres {
		return fmt.Sprintf("string_agg(%s, ',')", expr)
	}
	return fmt.Sprintf("GROUP_CONCAT(%s)", expr)
}

// Exec runs a statement written with ? placeholders.
func (d Dialect) Exec(ctx context.Context, q Querier, query string, args ...interface{}) (int64, error) {
	res, err := q.ExecContext(ctx, d.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// InsertID runs an INSERT written with ? placeholders and returns the id of
// the new row.
func (d Dialect) InsertID(ctx context.Context, q Querier, query string, args ...interface{}) (int64, error) {
	if d.postgres {
		var id int64
		if err := q.QueryRowContext(ctx, d.Rebind(query)+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
