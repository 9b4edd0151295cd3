// Package report implements the fifteen fixed aggregate reports over the
// donation ledger.
//
// The engine is read-only: it never mutates table state, and every report
// is computed from the current committed rows on each call. Reports that
// return a single "top" row break ties by the backing engine's stable
// default ordering.
package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/surplus/internal/store"
)

// ErrEmptyDataset is returned by single-row reports when the tables they
// aggregate over hold no qualifying rows. Multi-row reports return empty
// result sets instead.
var ErrEmptyDataset = errors.New("report: empty dataset")

// Engine executes the fixed aggregate reports against a record store.
type Engine struct {
	store *store.Store
}

// NewEngine creates a report engine over the given store.
func NewEngine(s *store.Store) *Engine {
	return &Engine{store: s}
}

// query runs a report query and hands each row to scan.
// A storage fault is surfaced, never converted into an empty result.
func (e *Engine) query(ctx context.Context, name, q string, scan func(*sql.Rows) error, args ...any) error {
	rows, err := e.store.Query(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("report %s: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("report %s: scan: %w", name, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("report %s: %w", name, err)
	}
	return nil
}

// queryOne runs a report query expected to yield at most one row.
// Returns ErrEmptyDataset when no row qualifies.
func (e *Engine) queryOne(ctx context.Context, name, q string, scan func(*sql.Rows) error, args ...any) error {
	found := false
	err := e.query(ctx, name, q, func(rows *sql.Rows) error {
		found = true
		return scan(rows)
	}, args...)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("report %s: %w", name, ErrEmptyDataset)
	}
	return nil
}
