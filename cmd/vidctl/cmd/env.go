package cmd

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/vidshare/internal/config"
	"github.com/templui/vidshare/internal/db"
	"github.com/templui/vidshare/internal/logger"
)

// openDB loads the server configuration and connects to its database.
func openDB(ctx context.Context) (*config.Config, *sqlx.DB, error) {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), "")

	database, err := db.Open(ctx, cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return cfg, database, nil
}
