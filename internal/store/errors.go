package store

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

// ErrorCode categorizes storage errors.
type ErrorCode string

const (
	// CodeConnection indicates the backing store could not be reached or
	// the round trip failed for a reason unrelated to the data itself.
	CodeConnection ErrorCode = "CONNECTION"

	// CodeDuplicateKey indicates a primary-key collision on add.
	CodeDuplicateKey ErrorCode = "DUPLICATE_KEY"

	// CodeForeignKey indicates a referenced row does not exist on add,
	// or the target row is still referenced on delete.
	CodeForeignKey ErrorCode = "FOREIGN_KEY"

	// CodeValidation indicates a CHECK or NOT NULL constraint rejected
	// the statement.
	CodeValidation ErrorCode = "VALIDATION"
)

// Error is a storage error with a category code.
//
// The store never recovers locally: every failed round trip is classified
// and surfaced to the caller. A storage fault is never reported as
// "zero results".
type Error struct {
	Code ErrorCode
	Op   string // operation, e.g. "add provider"
	Err  error  // underlying driver error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsDuplicateKey returns true if the error is a primary-key collision.
// Uses errors.As to handle wrapped errors.
func IsDuplicateKey(err error) bool {
	return hasCode(err, CodeDuplicateKey)
}

// IsForeignKey returns true if the error is a referential-integrity
// violation.
func IsForeignKey(err error) bool {
	return hasCode(err, CodeForeignKey)
}

// IsValidation returns true if the error is a constraint (CHECK/NOT NULL)
// violation.
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsConnection returns true if the error is a storage fault rather than a
// data conflict.
func IsConnection(err error) bool {
	return hasCode(err, CodeConnection)
}

func hasCode(err error, code ErrorCode) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// classify maps a driver error onto a store Error for the given dialect.
// Anything that is not a recognized constraint violation is treated as a
// storage fault (CodeConnection).
func classify(d Dialect, op string, err error) error {
	switch d {
	case DialectSQLite:
		var se sqlite3.Error
		if errors.As(err, &se) {
			return &Error{Code: sqliteCode(se), Op: op, Err: err}
		}
	case DialectMySQL:
		var me *mysql.MySQLError
		if errors.As(err, &me) {
			return &Error{Code: mysqlCode(me), Op: op, Err: err}
		}
	}
	return &Error{Code: CodeConnection, Op: op, Err: err}
}

func sqliteCode(err sqlite3.Error) ErrorCode {
	switch err.ExtendedCode {
	case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
		return CodeDuplicateKey
	case sqlite3.ErrConstraintForeignKey:
		return CodeForeignKey
	case sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
		return CodeValidation
	}
	return CodeConnection
}

// MySQL error numbers for constraint violations.
// https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	mysqlErrDupEntry        = 1062
	mysqlErrBadNull         = 1048
	mysqlErrRowIsReferenced = 1451
	mysqlErrNoReferencedRow = 1452
	mysqlErrCheckViolated   = 3819
)

func mysqlCode(err *mysql.MySQLError) ErrorCode {
	switch err.Number {
	case mysqlErrDupEntry:
		return CodeDuplicateKey
	case mysqlErrRowIsReferenced, mysqlErrNoReferencedRow:
		return CodeForeignKey
	case mysqlErrBadNull, mysqlErrCheckViolated:
		return CodeValidation
	}
	return CodeConnection
}
