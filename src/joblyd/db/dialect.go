package db

import (
	"fmt"
	"strings"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Dialect captures the few places where SQLite and PostgreSQL disagree.
//
// Every query in this package uses $n placeholders. PostgreSQL binds them by
// number; go-sqlite3 treats them as named parameters and numbers them in
// order of first appearance, so placeholders must appear in ascending order
// in the statement text.
type Dialect struct {
	// Name is DriverSQLite or DriverPostgres
	Name string
	// DriverName is the database/sql driver registered for the dialect
	DriverName string
	// ILike is the case-insensitive pattern match operator
	ILike string
}

// DialectFor returns the dialect for a configured driver name
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "", DriverSQLite, "sqlite3":
		return Dialect{Name: DriverSQLite, DriverName: "sqlite3", ILike: "LIKE"}, nil
	case DriverPostgres, "postgresql", "pgx":
		return Dialect{Name: DriverPostgres, DriverName: "pgx", ILike: "ILIKE"}, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// Positive returns a predicate that holds when the decimal column is
// strictly greater than zero. SQLite stores equity as TEXT to keep its
// exact decimal form, so it has to be cast before comparing.
func (d Dialect) Positive(column string) string {
	if d.Name == DriverSQLite {
		return fmt.Sprintf("CAST(%s AS REAL) > 0", column)
	}
	return column + " > 0"
}
