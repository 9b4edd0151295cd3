package store

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// Store provides durable storage for the donation ledger.
// It wraps a single relational database (SQLite or MySQL) and exposes
// one-statement CRUD operations per entity. Concurrency control is
// delegated entirely to the backing engine.
type Store struct {
	db      *sql.DB
	dialect Dialect
	log     *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger attaches a logger for schema and lifecycle events.
// Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// Open connects to the database identified by dsn and ensures the ledger
// schema exists.
//
// For SQLite the dsn is a file path (created if missing) and the
// connection is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// This function is idempotent - safe to call on every process start.
// Any failure (unreachable storage, insufficient privilege) is returned
// and must be treated as fatal by the caller.
func Open(dialect Dialect, dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := New(db, dialect, opts...)

	if dialect == DialectSQLite {
		// SQLite only supports one writer at a time; a single pooled
		// connection also guarantees the pragmas below apply to every
		// statement the store runs.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)

		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply pragmas: %w", err)
		}
	}

	if err := s.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// New wraps an existing database handle. Used by Open and by tests that
// supply their own handle; EnsureSchema is not called.
func New(db *sql.DB, dialect Dialect, opts ...Option) *Store {
	s := &Store{db: db, dialect: dialect, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer Store methods when available.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the backing engine dialect.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Query executes a read-only query and returns the resulting rows.
// This is the entry point used by the report engine. Callers are
// responsible for closing the returned rows.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(s.dialect, "query", err)
	}
	return rows, nil
}

// EnsureSchema creates the four ledger tables if they do not exist.
// Idempotent: invoking it against an already-initialized database is a
// no-op and never duplicates structures.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range s.dialect.schema() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return classify(s.dialect, "ensure schema", err)
		}
	}
	s.log.Debug("schema ensured", zap.String("dialect", string(s.dialect)))
	return nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
