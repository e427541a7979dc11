package seed

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	"items-api/internal/config"
	"items-api/internal/database"
	"items-api/internal/model"
	"items-api/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepository(t *testing.T) repository.ItemRepository {
	t.Helper()

	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, config.DatabaseConfig{
		Path:          filepath.Join(t.TempDir(), "seed.db"),
		BusyTimeoutMS: 5000,
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewSQLiteItemRepository(db, zerolog.Nop())
	require.NoError(t, repo.EnsureSchema(ctx))
	return repo
}

// loaderFor serves fixed records per path.
func loaderFor(files map[string][]model.ItemCreate) *mockLoader {
	return &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.ItemCreate, error) {
			recs, ok := files[path]
			if !ok {
				return nil, errors.New("no such seed file")
			}
			return recs, nil
		},
	}
}

func TestSeeder_Run_EmptyTable(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)

	price := 4.5
	loader := loaderFor(map[string][]model.ItemCreate{
		"a.gz": {{Name: "A1", Price: &price}, {Name: "A2"}},
		"b.gz": {{Name: "B1"}},
	})

	seeder := NewSeeder([]string{"a.gz", "b.gz"}, loader, repo, zerolog.Nop())

	inserted, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Rows follow file order, then record order
	assert.Equal(t, "A1", items[0].Name)
	require.NotNil(t, items[0].Price)
	assert.Equal(t, 4.5, *items[0].Price)
	assert.Equal(t, "A2", items[1].Name)
	assert.Equal(t, "B1", items[2].Name)
	assert.Less(t, items[0].ID, items[1].ID)
	assert.Less(t, items[1].ID, items[2].ID)
}

func TestSeeder_Run_SkipsPopulatedTable(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)

	require.NoError(t, repo.Create(ctx, &model.Item{Name: "Existing"}))

	var calls atomic.Int32
	loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.ItemCreate, error) {
			calls.Add(1)
			return itemRecords("Seeded"), nil
		},
	}

	seeder := NewSeeder([]string{"a.gz"}, loader, repo, zerolog.Nop())

	inserted, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
	assert.Equal(t, int32(0), calls.Load())

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSeeder_Run_Twice(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)

	loader := loaderFor(map[string][]model.ItemCreate{"a.gz": itemRecords("One", "Two")})
	seeder := NewSeeder([]string{"a.gz"}, loader, repo, zerolog.Nop())

	inserted, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	inserted, err = seeder.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSeeder_Run_NoFiles(t *testing.T) {
	repo := setupRepository(t)

	seeder := NewSeeder(nil, &mockLoader{}, repo, zerolog.Nop())

	inserted, err := seeder.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
}

func TestSeeder_Run_Errors(t *testing.T) {
	tests := []struct {
		name        string
		files       []string
		loader      Loader
		errContains string
	}{
		{
			name:        "load failure",
			files:       []string{"a.gz", "missing.gz"},
			loader:      loaderFor(map[string][]model.ItemCreate{"a.gz": itemRecords("Fine")}),
			errContains: "failed to load seed file missing.gz",
		},
		{
			name:  "record without name",
			files: []string{"a.gz", "b.gz"},
			loader: loaderFor(map[string][]model.ItemCreate{
				"a.gz": itemRecords("Fine"),
				"b.gz": itemRecords("AlsoFine", ""),
			}),
			errContains: "b.gz record 2: name failed required validation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := setupRepository(t)

			seeder := NewSeeder(tt.files, tt.loader, repo, zerolog.Nop())

			inserted, err := seeder.Run(ctx)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.Equal(t, 0, inserted)

			// Nothing is written when any file is bad
			count, err := repo.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, count)
		})
	}
}

func TestSeeder_Run_FromGzipFiles(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)

	first := createTestSeedFile(t, "first.ndjson.gz", []string{
		`{"name":"Widget","description":"A widget","price":9.99}`,
	})
	second := createTestSeedFile(t, "second.ndjson.gz", []string{
		`{"name":"Gadget"}`,
		`{"name":"Gizmo","price":1}`,
	})

	seeder := NewSeeder([]string{first, second}, NewFileLoader(zerolog.Nop()), repo, zerolog.Nop())

	inserted, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)

	item, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Widget", item.Name)
	require.NotNil(t, item.Description)
	assert.Equal(t, "A widget", *item.Description)
}
