package repository

import (
	"context"
	"testing"
	"time"

	"foodpedia/internal/database"
	"foodpedia/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer with the schema applied.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.EnsureSchema(ctx, pool, zerolog.Nop()))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func testRestaurants() []model.Restaurant {
	return []model.Restaurant{
		{ID: "r1", Name: "Sakura Sushi", Cuisine: "Japanese", Neighborhood: "Downtown", Emoji: "🍣", Tags: []string{"Omakase", "Date Night"}},
		{ID: "r2", Name: "Bella Napoli", Cuisine: "Italian", Neighborhood: "Little Italy", Emoji: "🍕", Tags: []string{"Wood-fired"}},
		{ID: "r3", Name: "Taco Loco", Cuisine: "Mexican", Neighborhood: "Mission", Emoji: "🌮", Tags: []string{"Late Night"}},
	}
}

func seedRestaurants(t *testing.T, pool *pgxpool.Pool) {
	repo := NewRestaurantRepository(pool, zerolog.Nop())
	_, err := repo.Upsert(context.Background(), testRestaurants())
	require.NoError(t, err)
}

func seedUser(t *testing.T, pool *pgxpool.Pool, name, email string) *model.User {
	user := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: "hash",
		JoinedDate:   time.Now().UTC().Truncate(24 * time.Hour),
	}
	require.NoError(t, NewUserRepository(pool, zerolog.Nop()).Create(context.Background(), user))
	return user
}

func newTestReview(restaurantID string, user *model.User, rating int, date time.Time) *model.Review {
	now := time.Now().UTC()
	return &model.Review{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		UserID:       user.ID,
		UserName:     user.Name,
		Rating:       rating,
		Text:         "A perfectly reasonable review text.",
		Tags:         []string{"Cozy"},
		Date:         date,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func insertReview(t *testing.T, pool *pgxpool.Pool, review *model.Review) {
	ctx := context.Background()
	repo := NewReviewRepository(pool, zerolog.Nop())

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, tx, review))
	require.NoError(t, tx.Commit(ctx))
}
