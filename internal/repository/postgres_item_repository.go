package repository

import (
	"context"
	"errors"
	"fmt"

	"items-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS items (
		id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		price DOUBLE PRECISION
	)
`

// postgresItemRepository implements the ItemRepository interface using PostgreSQL.
// It opens a fresh connection for every call.
type postgresItemRepository struct {
	connConfig *pgx.ConnConfig
	logger     zerolog.Logger
}

// NewPostgresItemRepository creates a new PostgreSQL-backed item repository.
func NewPostgresItemRepository(connConfig *pgx.ConnConfig, logger zerolog.Logger) ItemRepository {
	return &postgresItemRepository{
		connConfig: connConfig,
		logger:     logger.With().Str("repository", "item").Str("driver", "postgres").Logger(),
	}
}

// connect opens a connection; callers must Close it.
func (r *postgresItemRepository) connect(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.ConnectConfig(ctx, r.connConfig)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to connect to database")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return conn, nil
}

// EnsureSchema creates the items table if it does not exist.
func (r *postgresItemRepository) EnsureSchema(ctx context.Context) error {
	conn, err := r.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, postgresSchema); err != nil {
		r.logger.Error().Err(err).Msg("failed to create items table")
		return fmt.Errorf("failed to create items table: %w", err)
	}

	r.logger.Debug().Msg("items table ready")

	return nil
}

// List retrieves every stored item.
func (r *postgresItemRepository) List(ctx context.Context) ([]model.Item, error) {
	conn, err := r.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close(ctx)

	query := `
		SELECT id, name, description, price
		FROM items
		ORDER BY id
	`

	rows, err := conn.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query items")
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan item row")
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating item rows")
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// GetByID retrieves a single item by its ID.
func (r *postgresItemRepository) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	conn, err := r.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close(ctx)

	return r.getByID(ctx, conn, id)
}

func (r *postgresItemRepository) getByID(ctx context.Context, conn *pgx.Conn, id int64) (*model.Item, error) {
	query := `
		SELECT id, name, description, price
		FROM items
		WHERE id = $1
	`

	var item model.Item
	err := conn.QueryRow(ctx, query, id).Scan(&item.ID, &item.Name, &item.Description, &item.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("item_id", id).Msg("item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("item_id", id).Msg("failed to query item")
		return nil, fmt.Errorf("failed to query item: %w", err)
	}

	return &item, nil
}

// Create inserts the item and sets its storage-assigned ID.
func (r *postgresItemRepository) Create(ctx context.Context, item *model.Item) error {
	conn, err := r.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	query := `
		INSERT INTO items (name, description, price)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := conn.QueryRow(ctx, query, item.Name, item.Description, item.Price).Scan(&item.ID); err != nil {
		r.logger.Error().Err(err).Str("name", item.Name).Msg("failed to create item")
		return fmt.Errorf("failed to create item: %w", err)
	}

	r.logger.Debug().Int64("item_id", item.ID).Msg("item created successfully")

	return nil
}

// Update reads the item, merges the update into it and writes it back.
func (r *postgresItemRepository) Update(ctx context.Context, id int64, update model.ItemUpdate) (*model.Item, error) {
	conn, err := r.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close(ctx)

	item, err := r.getByID(ctx, conn, id)
	if err != nil || item == nil {
		return nil, err
	}

	update.ApplyTo(item)

	query := `
		UPDATE items
		SET name = $1, description = $2, price = $3
		WHERE id = $4
	`

	if _, err := conn.Exec(ctx, query, item.Name, item.Description, item.Price, id); err != nil {
		r.logger.Error().Err(err).Int64("item_id", id).Msg("failed to update item")
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	r.logger.Debug().Int64("item_id", id).Msg("item updated successfully")

	return item, nil
}

// Delete removes the item and reports whether a row was deleted.
func (r *postgresItemRepository) Delete(ctx context.Context, id int64) (bool, error) {
	conn, err := r.connect(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close(ctx)

	tag, err := conn.Exec(ctx, "DELETE FROM items WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Int64("item_id", id).Msg("failed to delete item")
		return false, fmt.Errorf("failed to delete item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Count returns the number of stored items.
func (r *postgresItemRepository) Count(ctx context.Context) (int, error) {
	conn, err := r.connect(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close(ctx)

	var count int
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count items")
		return 0, fmt.Errorf("failed to count items: %w", err)
	}

	return count, nil
}

// Ping checks that storage is reachable.
func (r *postgresItemRepository) Ping(ctx context.Context) error {
	conn, err := r.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	return conn.Ping(ctx)
}
