package migration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Migrator applies pending migrations against an open database. Each
// migration runs inside its own transaction and is recorded in the
// schema_migrations table, so re-running Apply is a no-op once the schema is
// current.
type Migrator struct {
	db *sql.DB
}

// NewMigrator wraps the given database handle.
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db}
}

// Apply brings the schema up to date.
func (m *Migrator) Apply(ctx context.Context) error {
	if m == nil || m.db == nil {
		return fmt.Errorf("migration: database not configured")
	}

	if _, err := m.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version     TEXT PRIMARY KEY,
    description TEXT NOT NULL,
    applied_at  TEXT NOT NULL
)`); err != nil {
		return fmt.Errorf("migration: failed to ensure version table: %w", err)
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return err
	}

	for _, mig := range Migrations() {
		if applied[mig.Version] {
			continue
		}
		if err := m.apply(ctx, mig); err != nil {
			return fmt.Errorf("migration %s (%s): %w", mig.Version, mig.Description, err)
		}
	}
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("migration: failed to read applied versions: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("migration: failed to scan version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, statement := range splitStatements(mig.SQL) {
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
			}
			return err
		}
	}

	appliedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)`,
		mig.Version, mig.Description, appliedAt,
	); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// splitStatements breaks a migration script into individual statements so it
// works with drivers that reject multi-statement Exec calls.
func splitStatements(script string) []string {
	parts := strings.Split(script, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		statements = append(statements, trimmed)
	}
	return statements
}
