package db

import (
	"database/sql"
	"strings"

	"github.com/bitswalk/jobly/src/common/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe.Code == pgerrcode.UniqueViolation
	}
	return false
}

// violatesUnique reports whether err is a unique violation on table.column.
// PostgreSQL names single-column unique constraints <table>_<column>_key.
func violatesUnique(err error, table, column string) bool {
	if !isUniqueViolation(err) {
		return false
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return strings.Contains(se.Error(), table+"."+column)
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe.ConstraintName == table+"_"+column+"_key"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe.Code == pgerrcode.ForeignKeyViolation
	}
	return false
}

func isCheckViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintCheck ||
			se.ExtendedCode == sqlite3.ErrConstraintNotNull
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe.Code == pgerrcode.CheckViolation ||
			pe.Code == pgerrcode.NotNullViolation ||
			pe.Code == pgerrcode.NumericValueOutOfRange ||
			pe.Code == pgerrcode.StringDataRightTruncationDataException
	}
	return false
}

// classify maps a driver error to the error kinds the API understands.
// Constraint violations are client errors; anything else is a query
// failure carrying the driver error as its cause.
func classify(err error, onUnique, onForeignKey *errors.Error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return err
	case onUnique != nil && isUniqueViolation(err):
		return onUnique.WithCause(err)
	case onForeignKey != nil && isForeignKeyViolation(err):
		return onForeignKey.WithCause(err)
	case isCheckViolation(err):
		return errors.ErrInvalidFieldValue.WithCause(err)
	default:
		return errors.ErrDatabaseQuery.WithCause(err)
	}
}
