package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"items-api/internal/model"

	"github.com/rs/zerolog"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		price REAL
	)
`

// sqliteItemRepository implements the ItemRepository interface using SQLite.
type sqliteItemRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewSQLiteItemRepository creates a new SQLite-backed item repository.
func NewSQLiteItemRepository(db *sql.DB, logger zerolog.Logger) ItemRepository {
	return &sqliteItemRepository{
		db:     db,
		logger: logger.With().Str("repository", "item").Str("driver", "sqlite").Logger(),
	}
}

// conn acquires a dedicated connection; callers must Close it.
func (r *sqliteItemRepository) conn(ctx context.Context) (*sql.Conn, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to acquire connection")
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return conn, nil
}

// EnsureSchema creates the items table if it does not exist.
func (r *sqliteItemRepository) EnsureSchema(ctx context.Context) error {
	conn, err := r.conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		r.logger.Error().Err(err).Msg("failed to create items table")
		return fmt.Errorf("failed to create items table: %w", err)
	}

	r.logger.Debug().Msg("items table ready")

	return nil
}

// List retrieves every stored item.
func (r *sqliteItemRepository) List(ctx context.Context) ([]model.Item, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	query := `
		SELECT id, name, description, price
		FROM items
		ORDER BY id
	`

	rows, err := conn.QueryContext(ctx, query)
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
func (r *sqliteItemRepository) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return r.getByID(ctx, conn, id)
}

func (r *sqliteItemRepository) getByID(ctx context.Context, conn *sql.Conn, id int64) (*model.Item, error) {
	query := `
		SELECT id, name, description, price
		FROM items
		WHERE id = ?
	`

	var item model.Item
	err := conn.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.Name, &item.Description, &item.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug().Int64("item_id", id).Msg("item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("item_id", id).Msg("failed to query item")
		return nil, fmt.Errorf("failed to query item: %w", err)
	}

	return &item, nil
}

// Create inserts the item and sets its storage-assigned ID.
func (r *sqliteItemRepository) Create(ctx context.Context, item *model.Item) error {
	conn, err := r.conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	query := `
		INSERT INTO items (name, description, price)
		VALUES (?, ?, ?)
	`

	result, err := conn.ExecContext(ctx, query, item.Name, item.Description, item.Price)
	if err != nil {
		r.logger.Error().Err(err).Str("name", item.Name).Msg("failed to create item")
		return fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to read inserted item id")
		return fmt.Errorf("failed to read inserted item id: %w", err)
	}
	item.ID = id

	r.logger.Debug().Int64("item_id", id).Msg("item created successfully")

	return nil
}

// Update reads the item, merges the update into it and writes it back.
// The read and the write run on the same connection but not in a transaction.
func (r *sqliteItemRepository) Update(ctx context.Context, id int64, update model.ItemUpdate) (*model.Item, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	item, err := r.getByID(ctx, conn, id)
	if err != nil || item == nil {
		return nil, err
	}

	update.ApplyTo(item)

	query := `
		UPDATE items
		SET name = ?, description = ?, price = ?
		WHERE id = ?
	`

	if _, err := conn.ExecContext(ctx, query, item.Name, item.Description, item.Price, id); err != nil {
		r.logger.Error().Err(err).Int64("item_id", id).Msg("failed to update item")
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	r.logger.Debug().Int64("item_id", id).Msg("item updated successfully")

	return item, nil
}

// Delete removes the item and reports whether a row was deleted.
func (r *sqliteItemRepository) Delete(ctx context.Context, id int64) (bool, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		r.logger.Error().Err(err).Int64("item_id", id).Msg("failed to delete item")
		return false, fmt.Errorf("failed to delete item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error().Err(err).Int64("item_id", id).Msg("failed to read affected rows")
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

// Count returns the number of stored items.
func (r *sqliteItemRepository) Count(ctx context.Context) (int, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	var count int
	if err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count items")
		return 0, fmt.Errorf("failed to count items: %w", err)
	}

	return count, nil
}

// Ping checks that storage is reachable.
func (r *sqliteItemRepository) Ping(ctx context.Context) error {
	conn, err := r.conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.PingContext(ctx)
}
