// Package db holds the relational store of joblyd: the connection wrapper,
// the SQL dialect differences between SQLite and PostgreSQL, and the
// company, job and user repositories.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bitswalk/jobly/src/common/errors"
	"github.com/bitswalk/jobly/src/common/paths"
	"github.com/bitswalk/jobly/src/joblyd/db/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Database wraps the connection pool and the dialect it speaks
type Database struct {
	db      *sql.DB
	dialect Dialect
}

// Config holds the database configuration
type Config struct {
	// Driver is "sqlite" or "postgres"
	Driver string
	// DSN is a SQLite file path (or go-sqlite3 URI) or a PostgreSQL URL
	DSN string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns a default database configuration
func DefaultConfig() Config {
	return Config{
		Driver:          DriverSQLite,
		DSN:             "~/.jobly/jobly.db",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	}
}

// New opens the database, checks connectivity and applies pending migrations
func New(ctx context.Context, cfg Config) (*Database, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.DSN
	inMemory := strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
	if dialect.Name == DriverSQLite {
		dsn = sqliteDSN(dsn)
		if !inMemory {
			if err := paths.EnsureParent(strings.TrimPrefix(strings.SplitN(dsn, "?", 2)[0], "file:")); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open(dialect.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect.Name == DriverSQLite {
		// SQLite serialises writers; one connection avoids SQLITE_BUSY and
		// keeps a shared in-memory database alive for the pool's lifetime.
		db.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.MaxIdleConns)
		}
	}
	if cfg.ConnMaxLifetime > 0 && !inMemory {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.ErrDatabaseConnection.WithCause(err)
	}

	if err := migrations.NewRunner(db, dialect.Name).Run(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{db: db, dialect: dialect}, nil
}

// sqliteDSN expands the path and turns on foreign key enforcement for
// every connection go-sqlite3 opens.
func sqliteDSN(dsn string) string {
	if dsn == ":memory:" {
		dsn = "file::memory:?cache=shared"
	}
	if !strings.HasPrefix(dsn, "file:") {
		dsn = paths.Expand(dsn)
	}
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// DB returns the underlying connection pool
func (d *Database) DB() *sql.DB {
	return d.db
}

// Dialect returns the SQL dialect of the open database
func (d *Database) Dialect() Dialect {
	return d.dialect
}

// Ping checks that the store is reachable
func (d *Database) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Close closes the connection pool
func (d *Database) Close() error {
	return d.db.Close()
}

// GetSetting retrieves a setting value by key. It returns sql.ErrNoRows
// when the key is not set.
func (d *Database) GetSetting(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetSetting stores or updates a setting value
func (d *Database) SetSetting(key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}
