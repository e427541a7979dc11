package service

import (
	"context"

	"items-api/internal/model"
)

// ItemService defines operations for item management.
type ItemService interface {
	// List retrieves all items.
	List(ctx context.Context) ([]model.Item, error)

	// GetByID retrieves a single item by ID.
	GetByID(ctx context.Context, id int64) (*model.Item, error)

	// Create stores a new item and returns it with its assigned ID.
	Create(ctx context.Context, req *model.ItemCreate) (*model.Item, error)

	// Update merges the provided fields into an existing item.
	Update(ctx context.Context, id int64, req *model.ItemUpdate) (*model.Item, error)

	// Delete removes an item.
	Delete(ctx context.Context, id int64) error

	// Healthy reports whether storage is reachable.
	Healthy(ctx context.Context) error
}
