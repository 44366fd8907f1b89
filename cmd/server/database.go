package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/inventory-api/internal/config"
	"github.com/phrazzld/inventory-api/internal/platform/postgres"
)

const pingTimeout = 5 * time.Second

// setupAppDatabase opens the connection pool, checks that the database is
// reachable and optionally applies the embedded schema.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sqlx.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetimeMinutes) * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("database connection established",
		slog.Int("max_open_conns", cfg.Database.MaxOpenConns))

	if cfg.Database.ApplySchema {
		if err := postgres.ApplySchema(ctx, db, logger); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return sqlx.NewDb(db, "pgx"), nil
}
