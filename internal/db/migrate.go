package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// dialectMap maps database drivers to goose dialects
var dialectMap = map[string]goose.Dialect{
	"sqlite": goose.DialectSQLite3,
	"pgx":    goose.DialectPostgres,
}

// newProvider builds a goose provider over the embedded migrations.
func newProvider(db *sql.DB, driver string) (*goose.Provider, error) {
	dialect, ok := dialectMap[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	migrationsDir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to get migrations directory: %w", err)
	}

	provider, err := goose.NewProvider(dialect, db, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	provider, err := newProvider(db, driver)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("migrations completed successfully", "applied", len(results))
	return nil
}

func MigrateDown(ctx context.Context, db *sql.DB, driver string) error {
	provider, err := newProvider(db, driver)
	if err != nil {
		return err
	}

	result, err := provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	if result != nil && result.Source != nil {
		slog.Info("rolled back one migration", "version", result.Source.Version)
	}
	return nil
}

// MigrationState is one row of migration status output.
type MigrationState struct {
	Version int64
	Path    string
	Applied bool
}

func MigrationStatus(ctx context.Context, db *sql.DB, driver string) ([]MigrationState, error) {
	provider, err := newProvider(db, driver)
	if err != nil {
		return nil, err
	}

	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}

	states := make([]MigrationState, 0, len(statuses))
	for _, st := range statuses {
		states = append(states, MigrationState{
			Version: st.Source.Version,
			Path:    st.Source.Path,
			Applied: st.State == goose.StateApplied,
		})
	}
	return states, nil
}
