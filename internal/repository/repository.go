package repository

import (
	"context"

	"items-api/internal/model"
)

// ItemRepository defines the interface for item data access operations.
//
// Every call acquires its own storage connection and releases it before
// returning. Missing rows are reported as a nil item (or false for Delete)
// with a nil error.
type ItemRepository interface {
	// EnsureSchema creates the items table if it does not exist.
	EnsureSchema(ctx context.Context) error

	// List retrieves every stored item.
	List(ctx context.Context) ([]model.Item, error)

	// GetByID retrieves a single item by its ID.
	GetByID(ctx context.Context, id int64) (*model.Item, error)

	// Create inserts the item and sets its storage-assigned ID.
	Create(ctx context.Context, item *model.Item) error

	// Update reads the item, merges the update into it and writes it back.
	Update(ctx context.Context, id int64, update model.ItemUpdate) (*model.Item, error)

	// Delete removes the item and reports whether a row was deleted.
	Delete(ctx context.Context, id int64) (bool, error)

	// Count returns the number of stored items.
	Count(ctx context.Context) (int, error)

	// Ping checks that storage is reachable.
	Ping(ctx context.Context) error
}
