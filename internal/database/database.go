package database

import (
	"context"
	"database/sql"
	"fmt"

	"items-api/internal/config"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// OpenSQLite opens the embedded SQLite database file and verifies it is usable.
// The file is created when it does not exist.
func OpenSQLite(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*sql.DB, error) {
	logger.Info().
		Str("path", cfg.Path).
		Int("busy_timeout_ms", cfg.BusyTimeoutMS).
		Msg("opening sqlite database")

	db, err := sql.Open("sqlite", cfg.SQLiteDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("sqlite database opened successfully")

	return db, nil
}

// PostgresConfig parses the PostgreSQL connection settings and verifies that a
// connection can be established. The returned config is used to open one
// connection per repository call.
func PostgresConfig(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgx.ConnConfig, error) {
	connConfig, err := pgx.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("checking postgres connectivity")

	if err := Ping(ctx, connConfig); err != nil {
		return nil, err
	}

	logger.Info().Msg("postgres connection verified")

	return connConfig, nil
}

// Ping opens a single connection with connConfig, pings it and closes it.
func Ping(ctx context.Context, connConfig *pgx.ConnConfig) error {
	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close(ctx)

	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}
