package integration

import (
	"context"
	"testing"

	"foodpedia/internal/catalog"
	"foodpedia/internal/model"
	"foodpedia/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogSeeding_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	CleanupDB(t, testDB.Pool)

	ctx := context.Background()
	logger := zerolog.Nop()
	restaurantRepo := repository.NewRestaurantRepository(testDB.Pool, logger)

	require.Equal(t, len(testCatalog), SeedCatalog(t, testDB.Pool))

	t.Run("reseeding leaves existing rows and summaries alone", func(t *testing.T) {
		tx, err := repository.NewReviewRepository(testDB.Pool, logger).BeginTx(ctx)
		require.NoError(t, err)
		summary := model.RatingSummary{Avg: 4.5, Count: 2, Breakdown: model.Breakdown{1: 0, 2: 0, 3: 0, 4: 1, 5: 1}}
		require.NoError(t, restaurantRepo.UpdateSummary(ctx, tx, "r1", summary))
		require.NoError(t, tx.Commit(ctx))

		renamed := []model.Restaurant{
			{ID: "r1", Name: "Sakura Sushi Renamed", Cuisine: "Japanese"},
			{ID: "r4", Name: "Golden Dragon", Cuisine: "Chinese", Emoji: "🥟"},
		}
		seeder := catalog.NewSeeder(
			catalog.NewFileLoader(logger),
			restaurantRepo,
			[]string{WriteCatalogFile(t, renamed)},
			logger,
		)

		inserted, err := seeder.Seed(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, inserted)

		r1, err := restaurantRepo.GetByID(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, "Sakura Sushi", r1.Name)
		assert.Equal(t, summary, r1.RatingSummary)

		r4, err := restaurantRepo.GetByID(ctx, "r4")
		require.NoError(t, err)
		require.NotNil(t, r4)
		assert.Equal(t, 0, r4.Count)
	})

	t.Run("last file wins across files", func(t *testing.T) {
		first := WriteCatalogFile(t, []model.Restaurant{{ID: "r5", Name: "Old Name", Cuisine: "French"}})
		second := WriteCatalogFile(t, []model.Restaurant{{ID: "r5", Name: "Le Petit Bistro", Cuisine: "French"}})

		seeder := catalog.NewSeeder(catalog.NewFileLoader(logger), restaurantRepo, []string{first, second}, logger)

		inserted, err := seeder.Seed(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, inserted)

		r5, err := restaurantRepo.GetByID(ctx, "r5")
		require.NoError(t, err)
		assert.Equal(t, "Le Petit Bistro", r5.Name)
	})
}
