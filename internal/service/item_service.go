package service

import (
	"context"
	"fmt"

	"items-api/internal/model"
	"items-api/internal/repository"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog"
)

// itemService implements ItemService.
type itemService struct {
	itemRepo repository.ItemRepository
	logger   zerolog.Logger
}

// NewItemService creates a new item service.
func NewItemService(itemRepo repository.ItemRepository, logger zerolog.Logger) ItemService {
	return &itemService{
		itemRepo: itemRepo,
		logger:   logger.With().Str("service", "item").Logger(),
	}
}

// List retrieves all items.
func (s *itemService) List(ctx context.Context) ([]model.Item, error) {
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list items")
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	s.logger.Debug().Int("count", len(items)).Msg("retrieved items")

	return items, nil
}

// GetByID retrieves a single item by ID.
func (s *itemService) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("item_id", id).Msg("failed to get item by ID")
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if item == nil {
		s.logger.Debug().Int64("item_id", id).Msg("item not found")
		return nil, model.ErrItemNotFound
	}

	return item, nil
}

// Create stores a new item and returns it with its assigned ID.
func (s *itemService) Create(ctx context.Context, req *model.ItemCreate) (*model.Item, error) {
	if req == nil {
		return nil, fmt.Errorf("item request cannot be nil")
	}

	var item model.Item
	if err := copier.Copy(&item, req); err != nil {
		return nil, fmt.Errorf("failed to build item: %w", err)
	}

	if err := s.itemRepo.Create(ctx, &item); err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create item")
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Info().Int64("item_id", item.ID).Msg("item created")

	return &item, nil
}

// Update merges the provided fields into an existing item.
func (s *itemService) Update(ctx context.Context, id int64, req *model.ItemUpdate) (*model.Item, error) {
	if req == nil {
		req = &model.ItemUpdate{}
	}

	item, err := s.itemRepo.Update(ctx, id, *req)
	if err != nil {
		s.logger.Error().Err(err).Int64("item_id", id).Msg("failed to update item")
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	if item == nil {
		s.logger.Debug().Int64("item_id", id).Msg("item not found for update")
		return nil, model.ErrItemNotFound
	}

	s.logger.Info().Int64("item_id", id).Msg("item updated")

	return item, nil
}

// Delete removes an item.
func (s *itemService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.itemRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("item_id", id).Msg("failed to delete item")
		return fmt.Errorf("failed to delete item: %w", err)
	}

	if !deleted {
		s.logger.Debug().Int64("item_id", id).Msg("item not found for delete")
		return model.ErrItemNotFound
	}

	s.logger.Info().Int64("item_id", id).Msg("item deleted")

	return nil
}

// Healthy reports whether storage is reachable.
func (s *itemService) Healthy(ctx context.Context) error {
	if err := s.itemRepo.Ping(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("storage health check failed")
		return fmt.Errorf("storage unavailable: %w", err)
	}
	return nil
}
