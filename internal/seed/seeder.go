package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"items-api/internal/model"
	"items-api/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Seeder populates an empty items table from seed files.
type Seeder struct {
	files    []string
	loader   Loader
	repo     repository.ItemRepository
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewSeeder creates a seeder for the given files.
func NewSeeder(files []string, loader Loader, repo repository.ItemRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		files:    files,
		loader:   loader,
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With().Str("component", "seeder").Logger(),
	}
}

// Run inserts every record from the seed files when the table is empty and
// returns how many rows were written. A populated table is left untouched.
func (s *Seeder) Run(ctx context.Context) (int, error) {
	if len(s.files) == 0 {
		return 0, nil
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	if count > 0 {
		s.logger.Info().Int("existing_items", count).Msg("items table not empty, skipping seed")
		return 0, nil
	}

	batches, err := s.loadAll(ctx)
	if err != nil {
		return 0, err
	}

	// Validate everything before the first insert so a bad file leaves no partial seed
	for i, batch := range batches {
		for j := range batch {
			if err := s.validate.Struct(&batch[j]); err != nil {
				return 0, fmt.Errorf("%s record %d: %w", s.files[i], j+1, describe(err))
			}
		}
	}

	inserted := 0
	for _, batch := range batches {
		for j := range batch {
			var item model.Item
			if err := copier.Copy(&item, &batch[j]); err != nil {
				return inserted, fmt.Errorf("failed to map seed record: %w", err)
			}
			if err := s.repo.Create(ctx, &item); err != nil {
				return inserted, fmt.Errorf("failed to insert seed record: %w", err)
			}
			inserted++
		}
	}

	s.logger.Info().
		Int("file_count", len(s.files)).
		Int("items_inserted", inserted).
		Msg("seed complete")

	return inserted, nil
}

// loadAll loads every file concurrently, keeping results in file order.
func (s *Seeder) loadAll(ctx context.Context) ([][]model.ItemCreate, error) {
	batches := make([][]model.ItemCreate, len(s.files))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range s.files {
		g.Go(func() error {
			records, err := s.loader.Load(gctx, path)
			if err != nil {
				return fmt.Errorf("failed to load seed file %s: %w", path, err)
			}
			batches[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("seed load failed")
		return nil, err
	}

	return batches, nil
}

func describe(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, strings.ToLower(fe.Field())+" failed "+fe.Tag()+" validation")
	}
	return errors.New(strings.Join(parts, "; "))
}
