// Package migrations provides database schema versioning for joblyd.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/bitswalk/jobly/src/common/logs"
)

var log *logs.Logger

// SetLogger sets the logger for the migrations package
func SetLogger(l *logs.Logger) {
	log = l
}

// Driver names, matching the db package
const (
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// Migration represents a single schema change. Statements are per driver;
// a driver without an entry in Up has nothing to do for that version.
type Migration struct {
	Version     int
	Description string
	Up          map[string][]string
}

// Runner applies migrations to a database
type Runner struct {
	db         *sql.DB
	driver     string
	migrations []Migration
}

// NewRunner creates a migration runner for the given driver
func NewRunner(db *sql.DB, driver string) *Runner {
	r := &Runner{
		db:     db,
		driver: driver,
	}
	r.registerAll()
	return r
}

func (r *Runner) registerAll() {
	r.migrations = []Migration{
		migration001InitialSchema(),
		migration002Applications(),
		migration003CompanyLogoKey(),
	}

	sort.Slice(r.migrations, func(i, j int) bool {
		return r.migrations[i].Version < r.migrations[j].Version
	})
}

func (r *Runner) ensureMigrationsTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func (r *Runner) appliedVersions(ctx context.Context) (map[int]bool, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

// Run executes all pending migrations in version order
func (r *Runner) Run(ctx context.Context) error {
	if err := r.ensureMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to ensure migrations table: %w", err)
	}

	applied, err := r.appliedVersions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, m := range r.migrations {
		if applied[m.Version] {
			continue
		}

		if err := r.runMigration(ctx, m); err != nil {
			if log != nil {
				log.Error("Migration failed", "version", m.Version, "description", m.Description, "error", err)
			}
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Description, err)
		}
	}

	return nil
}

func (r *Runner) runMigration(ctx context.Context, m Migration) error {
	if log != nil {
		log.Debug("Applying migration", "version", m.Version, "description", m.Description, "driver", r.driver)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range m.Up[r.driver] {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, description, applied_at) VALUES ($1, $2, $3)",
		m.Version, m.Description, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}

// CurrentVersion returns the highest applied migration version
func (r *Runner) CurrentVersion(ctx context.Context) (int, error) {
	if err := r.ensureMigrationsTable(ctx); err != nil {
		return 0, err
	}

	var version int
	err := r.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	return version, err
}

// PendingCount returns the number of migrations not yet applied
func (r *Runner) PendingCount(ctx context.Context) (int, error) {
	if err := r.ensureMigrationsTable(ctx); err != nil {
		return 0, err
	}

	applied, err := r.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}

	pending := 0
	for _, m := range r.migrations {
		if !applied[m.Version] {
			pending++
		}
	}

	return pending, nil
}
