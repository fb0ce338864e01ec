package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/pkm/internal/constants"
	"github.com/julianstephens/pkm/internal/logger"
	"github.com/julianstephens/pkm/internal/migration"
)

var (
	// ErrNotInitialized is returned when a store has no schema yet
	ErrNotInitialized = errors.New("storage not initialized, run 'pkm import' or 'pkm bootstrap' first")
	// ErrNotFound is returned when a record addressed by id or name does not exist
	ErrNotFound = errors.New("record not found")
	// ErrUnknownDriver is returned for a driver name that is not registered
	ErrUnknownDriver = errors.New("unknown database driver")
)

// Kind is the type of relational store a target points at
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
)

// Target identifies a relational store
type Target struct {
	Kind    Kind
	Path    string // SQLite file
	ConnStr string // PostgreSQL URL or DSN, without password
	Schema  string // PostgreSQL schema; defaults to constants.PostgresSchema
	Dialect Dialect
}

// ParseTarget interprets a --db value. PostgreSQL URLs and DSNs select the
// postgres dialect; anything else is a SQLite path opened with the named
// driver ("sqlite" or "sqlite3").
func ParseTarget(db, driver string) (Target, error) {
	db = strings.TrimSpace(db)
	if db == "" {
		return Target{}, fmt.Errorf("no database configured")
	}

	if IsPostgresConnString(db) {
		if _, err := ValidateConnString(db); err != nil {
			return Target{}, err
		}
		return Target{Kind: KindPostgres, ConnStr: db, Schema: constants.PostgresSchema, Dialect: Postgres}, nil
	}

	dialect := SQLite
	switch driver {
	case "", SQLite.DriverName():
	case SQLite3.DriverName():
		dialect = SQLite3
	default:
		return Target{}, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	if !slices.Contains(sql.Drivers(), dialect.DriverName()) {
		return Target{}, fmt.Errorf("%w: %q is not compiled into this binary", ErrUnknownDriver, dialect.DriverName())
	}

	path, err := expandPath(db)
	if err != nil {
		return Target{}, err
	}
	return Target{Kind: KindSQLite, Path: path, Dialect: dialect}, nil
}

// PostgresTarget returns a target for a connection string that may carry
// credentials, such as one read from the OS keyring.
func PostgresTarget(connStr string) (Target, error) {
	if !IsPostgresConnString(connStr) {
		return Target{}, fmt.Errorf("%w: not a PostgreSQL URL or DSN", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return Target{}, fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	return Target{Kind: KindPostgres, ConnStr: connStr, Schema: constants.PostgresSchema, Dialect: Postgres}, nil
}

// String returns a non-sensitive label for the target
func (t Target) String() string {
	if t.Kind == KindPostgres {
		return "postgresql (schema " + t.schema() + ")"
	}
	return t.Path
}

func (t Target) schema() string {
	if t.Schema == "" {
		return constants.PostgresSchema
	}
	return t.Schema
}

func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}

func (t Target) dsn() string {
	switch {
	case t.Kind == KindPostgres:
		return withSearchPath(t.ConnStr, t.schema())
	case t.Dialect.DriverName() == SQLite3.DriverName():
		return "file:" + t.Path + "?_foreign_keys=on&_busy_timeout=5000"
	default:
		return "file:" + t.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
}

// Store is an open relational store
type Store struct {
	target  Target
	db      *sql.DB
	dialect Dialect
	loc     *time.Location
}

// Open connects to the target, creating the SQLite file or PostgreSQL schema
// when missing. The connection pool is limited to a single connection.
func Open(ctx context.Context, target Target) (*Store, error) {
	if target.Kind == KindSQLite {
		if err := os.MkdirAll(filepath.Dir(target.Path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	db, err := sql.Open(target.Dialect.DriverName(), target.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		if target.Kind == KindPostgres && strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(target.ConnStr) {
			return nil, fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if target.Kind == KindPostgres {
		if _, err := db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+quoteIdent(target.schema())); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	logger.Debug("Opened store", "target", target.String(), "driver", target.Dialect.DriverName())
	return &Store{target: target, db: db, dialect: target.Dialect, loc: time.Local}, nil
}

// OpenExisting connects to a store that must already carry a compatible schema.
func OpenExisting(ctx context.Context, target Target) (*Store, error) {
	if target.Kind == KindSQLite {
		if _, err := os.Stat(target.Path); os.IsNotExist(err) {
			return nil, ErrNotInitialized
		}
	}

	s, err := Open(ctx, target)
	if err != nil {
		return nil, err
	}

	runner, err := migration.NewEmbeddedRunner(s.db, s.dialect.Migration())
	if err != nil {
		s.Close()
		return nil, err
	}
	version, err := runner.GetCurrentVersion()
	if err != nil {
		s.Close()
		return nil, err
	}
	if version == 0 {
		s.Close()
		return nil, ErrNotInitialized
	}
	if err := runner.ValidateVersion(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Bootstrap applies the embedded schema scripts to the store.
func (s *Store) Bootstrap(ctx context.Context) error {
	return migration.Bootstrap(ctx, s.db, s.dialect.Migration())
}

// Close releases the connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB returns the underlying connection pool.
func (s *Store) DB() *sql.DB { return s.db }

// Dialect returns the SQL dialect of the store.
func (s *Store) Dialect() Dialect { return s.dialect }

// Target returns the target the store was opened from.
func (s *Store) Target() Target { return s.target }

// Location returns the zone timestamps are read and written in.
func (s *Store) Location() *time.Location { return s.loc }

// SetLocation changes the zone timestamps are read and written in.
func (s *Store) SetLocation(loc *time.Location) {
	if loc != nil {
		s.loc = loc
	}
}

func (s *Store) exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	return s.dialect.Exec(ctx, s.db, query, args...)
}

func (s *Store) query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return s.db.QueryRowContext(ctx, s.dialect.Rebind(query), args...)
}
