package store

import (
	_ "embed"
	"fmt"
	"strings"
)

// Dialect selects the backing relational engine.
type Dialect string

const (
	DialectSQLite Dialect = "sqlite"
	DialectMySQL  Dialect = "mysql"
)

// Dialects lists the supported backends.
var Dialects = []Dialect{DialectSQLite, DialectMySQL}

// ParseDialect validates a driver name from configuration.
func ParseDialect(name string) (Dialect, error) {
	switch Dialect(name) {
	case DialectSQLite:
		return DialectSQLite, nil
	case DialectMySQL:
		return DialectMySQL, nil
	}
	return "", fmt.Errorf("unknown driver %q: must be one of %v", name, Dialects)
}

//go:embed schema_sqlite.sql
var schemaSQLite string

//go:embed schema_mysql.sql
var schemaMySQL string

// driverName returns the database/sql driver name for the dialect.
func (d Dialect) driverName() string {
	if d == DialectMySQL {
		return "mysql"
	}
	return "sqlite3"
}

// schema returns the DDL statements for the dialect, one per element.
// Both schemas use CREATE TABLE IF NOT EXISTS throughout, so applying
// them is idempotent.
func (d Dialect) schema() []string {
	raw := schemaSQLite
	if d == DialectMySQL {
		raw = schemaMySQL
	}

	// MySQL rejects multi-statement Exec by default, so the DDL is
	// split and applied one statement at a time.
	var stmts []string
	for _, stmt := range strings.Split(raw, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}
