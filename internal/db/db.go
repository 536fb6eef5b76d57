package db

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const pingTimeout = 5 * time.Second

type pool struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
}

// sqlite serialises writers, so a small pool keeps busy_timeout waits short.
var pools = map[string]pool{
	"sqlite": {maxOpen: 4, maxIdle: 4, maxLifetime: 0},
	"pgx":    {maxOpen: 25, maxIdle: 5, maxLifetime: 5 * time.Minute},
}

// Open connects to driver ("sqlite" or "pgx") and verifies the connection.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	settings, ok := pools[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if driver == "sqlite" {
		err := ensureSQLiteDir(dsn)
		if err != nil {
			return nil, err
		}
	}

	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(settings.maxOpen)
	conn.SetMaxIdleConns(settings.maxIdle)
	conn.SetConnMaxLifetime(settings.maxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err = conn.PingContext(pingCtx)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("database connected", "driver", driver)
	return conn, nil
}

// ensureSQLiteDir creates the parent directory of a file database.
func ensureSQLiteDir(dsn string) error {
	path, query, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if path == "" || path == ":memory:" || strings.Contains(query, "mode=memory") {
		return nil
	}

	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}
