package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS imports (
					id TEXT PRIMARY KEY,
					source_file TEXT NOT NULL,
					imported_at DATETIME NOT NULL,
					gender TEXT NOT NULL DEFAULT '',
					subject_name TEXT,
					tax_id TEXT,
					birth_date TEXT,
					mother_name TEXT,
					warnings TEXT
				)`,

				`CREATE TABLE IF NOT EXISTS bonds (
					import_id TEXT NOT NULL,
					sequence INTEGER NOT NULL,
					registration_id TEXT NOT NULL DEFAULT '',
					employer_code TEXT NOT NULL DEFAULT '',
					origin_name TEXT NOT NULL DEFAULT '',
					category TEXT NOT NULL,
					start_date TEXT,
					end_date TEXT,
					end_source TEXT NOT NULL,
					activity_type TEXT NOT NULL DEFAULT 'common',
					indicators TEXT,
					concurrent INTEGER NOT NULL DEFAULT 0,
					included INTEGER NOT NULL DEFAULT 1,
					PRIMARY KEY (import_id, sequence),
					FOREIGN KEY (import_id) REFERENCES imports(id) ON DELETE CASCADE
				)`,

				`CREATE TABLE IF NOT EXISTS remunerations (
					import_id TEXT NOT NULL,
					sequence INTEGER NOT NULL,
					position INTEGER NOT NULL,
					competence TEXT NOT NULL,
					salary TEXT NOT NULL,
					indicators TEXT,
					PRIMARY KEY (import_id, sequence, position),
					FOREIGN KEY (import_id, sequence) REFERENCES bonds(import_id, sequence) ON DELETE CASCADE
				)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Index imports by date and subject",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE INDEX IF NOT EXISTS idx_imports_imported_at ON imports(imported_at)`,
				`CREATE INDEX IF NOT EXISTS idx_imports_tax_id ON imports(tax_id)`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Migrate applies every pending migration, tracking the version in PRAGMA user_version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	currentVersion, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

func (s *SQLiteStorage) schemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
