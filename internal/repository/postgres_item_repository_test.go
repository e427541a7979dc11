package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a PostgreSQL testcontainer and returns its connection config.
func setupPostgres(t *testing.T) *pgx.ConnConfig {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = pgContainer.Terminate(ctx)
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	connConfig, err := pgx.ParseConfig(connStr)
	require.NoError(t, err)

	return connConfig
}

func TestPostgresItemRepository(t *testing.T) {
	connConfig := setupPostgres(t)
	ctx := context.Background()

	// One container serves every subtest; each gets a fresh table.
	newRepo := func(t *testing.T) ItemRepository {
		conn, err := pgx.ConnectConfig(ctx, connConfig)
		require.NoError(t, err)
		_, err = conn.Exec(ctx, "DROP TABLE IF EXISTS items")
		require.NoError(t, err)
		require.NoError(t, conn.Close(ctx))

		repo := NewPostgresItemRepository(connConfig, zerolog.Nop())
		require.NoError(t, repo.EnsureSchema(ctx))
		return repo
	}

	testItemRepository(t, newRepo)
}
