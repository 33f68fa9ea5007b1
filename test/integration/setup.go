package integration

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"foodpedia/internal/catalog"
	"foodpedia/internal/database"
	"foodpedia/internal/model"
	"foodpedia/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container with the application schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	poolConfig.MaxConns = 20

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// testCatalog is the restaurant catalogue every integration test starts from.
var testCatalog = []model.Restaurant{
	{ID: "r1", Name: "Sakura Sushi", Cuisine: "Japanese", PriceRange: "$$$", Emoji: "🍣", Tags: []string{"Omakase"}, Neighborhood: "Downtown", OpenNow: true},
	{ID: "r2", Name: "Bella Napoli", Cuisine: "Italian", PriceRange: "$$", Emoji: "🍕", Tags: []string{"Pizza"}, Neighborhood: "Little Italy", OpenNow: true},
	{ID: "r3", Name: "Taco Loco", Cuisine: "Mexican", PriceRange: "$", Emoji: "🌮", Tags: []string{"Late Night"}, Neighborhood: "Mission"},
}

// WriteCatalogFile writes restaurants as a gzipped JSON-lines file and returns its path.
func WriteCatalogFile(t *testing.T, restaurants []model.Restaurant) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "restaurants.jsonl.gz")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create catalogue file: %v", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	encoder := json.NewEncoder(gzipWriter)
	for _, rs := range restaurants {
		if err := encoder.Encode(rs); err != nil {
			t.Fatalf("failed to write catalogue entry %s: %v", rs.ID, err)
		}
	}
	if err := gzipWriter.Close(); err != nil {
		t.Fatalf("failed to close catalogue file: %v", err)
	}

	return path
}

// SeedCatalog loads the test catalogue through the catalogue seeder.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()

	logger := zerolog.Nop()
	seeder := catalog.NewSeeder(
		catalog.NewFileLoader(logger),
		repository.NewRestaurantRepository(pool, logger),
		[]string{WriteCatalogFile(t, testCatalog)},
		logger,
	)

	inserted, err := seeder.Seed(context.Background())
	if err != nil {
		t.Fatalf("failed to seed catalogue: %v", err)
	}
	return inserted
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "TRUNCATE reviews, users, restaurants"); err != nil {
		t.Fatalf("failed to clean tables: %v", err)
	}
}
