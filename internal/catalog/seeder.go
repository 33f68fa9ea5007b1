package catalog

import (
	"context"
	"fmt"
	"sync"

	"foodpedia/internal/model"

	"github.com/rs/zerolog"
)

// Seeder loads catalogue files and inserts restaurants that are not stored yet.
type Seeder struct {
	loader Loader
	store  Store
	files  []string
	logger zerolog.Logger
}

// NewSeeder creates a seeder over the given files.
func NewSeeder(loader Loader, store Store, files []string, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader: loader,
		store:  store,
		files:  files,
		logger: logger.With().Str("component", "catalog-seeder").Logger(),
	}
}

// Seed loads every file concurrently, merges them in configuration order with
// later files winning on duplicate ids, and inserts the result. Existing
// restaurants and their rating summaries are left untouched. Returns the number
// of restaurants inserted.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	s.logger.Info().Int("file_count", len(s.files)).Msg("seeding restaurant catalogue")

	type loadResult struct {
		index       int
		restaurants []model.Restaurant
		err         error
	}

	resultChan := make(chan loadResult, len(s.files))
	var wg sync.WaitGroup

	for i, path := range s.files {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			restaurants, err := s.loader.Load(ctx, path)
			resultChan <- loadResult{index: index, restaurants: restaurants, err: err}
		}(i, path)
	}

	wg.Wait()
	close(resultChan)

	results := make([]loadResult, len(s.files))
	for result := range resultChan {
		results[result.index] = result
	}

	for i, result := range results {
		if result.err != nil {
			s.logger.Error().Err(result.err).Str("file", s.files[i]).Msg("failed to load catalogue file")
			return 0, fmt.Errorf("failed to load catalogue file %s: %w", s.files[i], result.err)
		}
	}

	batches := make([][]model.Restaurant, len(results))
	for i, result := range results {
		batches[i] = result.restaurants
	}
	merged := Merge(batches...)

	inserted, err := s.store.Upsert(ctx, merged)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to store restaurant catalogue")
		return inserted, fmt.Errorf("failed to store restaurant catalogue: %w", err)
	}

	s.logger.Info().
		Int("loaded", len(merged)).
		Int("inserted", inserted).
		Msg("restaurant catalogue seeded")

	return inserted, nil
}

// Merge concatenates batches, keeping each id at its first position and the
// value from the last batch that contains it.
func Merge(batches ...[]model.Restaurant) []model.Restaurant {
	merged := []model.Restaurant{}
	position := make(map[string]int)

	for _, batch := range batches {
		for _, rs := range batch {
			if i, ok := position[rs.ID]; ok {
				merged[i] = rs
				continue
			}
			position[rs.ID] = len(merged)
			merged = append(merged, rs)
		}
	}

	return merged
}
