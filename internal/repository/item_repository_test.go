package repository

import (
	"context"
	"testing"

	"items-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

// testItemRepository runs the behaviour every ItemRepository must provide.
// newRepo must return a repository over an empty, initialised items table.
func testItemRepository(t *testing.T, newRepo func(t *testing.T) ItemRepository) {
	ctx := context.Background()

	t.Run("Create assigns increasing IDs", func(t *testing.T) {
		repo := newRepo(t)

		first := &model.Item{Name: "First"}
		second := &model.Item{Name: "Second"}
		require.NoError(t, repo.Create(ctx, first))
		require.NoError(t, repo.Create(ctx, second))

		assert.Positive(t, first.ID)
		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("Create then GetByID round-trips", func(t *testing.T) {
		repo := newRepo(t)

		tests := []struct {
			name string
			item model.Item
		}{
			{
				name: "All fields",
				item: model.Item{Name: "Widget", Description: strPtr("A widget"), Price: floatPtr(9.99)},
			},
			{
				name: "Nullable fields unset",
				item: model.Item{Name: "Bare"},
			},
			{
				name: "Empty description and zero price",
				item: model.Item{Name: "Zero", Description: strPtr(""), Price: floatPtr(0)},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				item := tt.item
				require.NoError(t, repo.Create(ctx, &item))

				got, err := repo.GetByID(ctx, item.ID)
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, item, *got)
			})
		}
	})

	t.Run("GetByID returns nil for missing item", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.GetByID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("List on empty table returns empty slice", func(t *testing.T) {
		repo := newRepo(t)

		items, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("Update merges only provided fields", func(t *testing.T) {
		repo := newRepo(t)

		item := &model.Item{Name: "Widget", Description: strPtr("A widget"), Price: floatPtr(9.99)}
		require.NoError(t, repo.Create(ctx, item))

		updated, err := repo.Update(ctx, item.ID, model.ItemUpdate{Name: strPtr("Widget2")})
		require.NoError(t, err)
		require.NotNil(t, updated)

		expected := model.Item{ID: item.ID, Name: "Widget2", Description: strPtr("A widget"), Price: floatPtr(9.99)}
		assert.Equal(t, expected, *updated)

		stored, err := repo.GetByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, expected, *stored)
	})

	t.Run("Update fills previously null fields", func(t *testing.T) {
		repo := newRepo(t)

		item := &model.Item{Name: "Bare"}
		require.NoError(t, repo.Create(ctx, item))

		updated, err := repo.Update(ctx, item.ID, model.ItemUpdate{Description: strPtr("Now described"), Price: floatPtr(3.5)})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Bare", updated.Name)
		assert.Equal(t, "Now described", *updated.Description)
		assert.Equal(t, 3.5, *updated.Price)
	})

	t.Run("Update returns nil for missing item", func(t *testing.T) {
		repo := newRepo(t)

		updated, err := repo.Update(ctx, 999, model.ItemUpdate{Name: strPtr("Ghost")})
		require.NoError(t, err)
		assert.Nil(t, updated)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Delete reports whether a row was removed", func(t *testing.T) {
		repo := newRepo(t)

		item := &model.Item{Name: "Doomed"}
		require.NoError(t, repo.Create(ctx, item))

		deleted, err := repo.Delete(ctx, item.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		got, err := repo.GetByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		deleted, err = repo.Delete(ctx, item.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("List reflects creates, updates and deletes", func(t *testing.T) {
		repo := newRepo(t)

		const created = 6
		ids := make([]int64, 0, created)
		for i := 0; i < created; i++ {
			item := &model.Item{Name: "Item", Price: floatPtr(float64(i))}
			require.NoError(t, repo.Create(ctx, item))
			ids = append(ids, item.ID)
		}

		_, err := repo.Update(ctx, ids[1], model.ItemUpdate{Name: strPtr("Renamed")})
		require.NoError(t, err)

		for _, id := range ids[3:] {
			deleted, err := repo.Delete(ctx, id)
			require.NoError(t, err)
			require.True(t, deleted)
		}

		items, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 3)

		byID := make(map[int64]model.Item, len(items))
		for _, item := range items {
			byID[item.ID] = item
		}
		assert.Equal(t, "Item", byID[ids[0]].Name)
		assert.Equal(t, "Renamed", byID[ids[1]].Name)
		assert.Equal(t, 1.0, *byID[ids[1]].Price)
		assert.Equal(t, "Item", byID[ids[2]].Name)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("EnsureSchema is idempotent and keeps rows", func(t *testing.T) {
		repo := newRepo(t)

		item := &model.Item{Name: "Survivor", Price: floatPtr(1.25)}
		require.NoError(t, repo.Create(ctx, item))

		require.NoError(t, repo.EnsureSchema(ctx))
		require.NoError(t, repo.EnsureSchema(ctx))

		items, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, *item, items[0])
	})

	t.Run("Ping succeeds", func(t *testing.T) {
		repo := newRepo(t)
		assert.NoError(t, repo.Ping(ctx))
	})
}
