//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"

	"foodpedia/internal/config"

	"github.com/jackc/pgx/v5"
)

// Connects with the DB_* environment settings and reports what the schema holds.
// Usage: go run scripts/check_db_connection.go
func main() {
	dbCfg := config.DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     5432,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		Database: getEnv("DB_NAME", "foodpedia"),
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbCfg.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	var dbName string
	if err := conn.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully connected to database: %s\n", dbName)

	for _, table := range []string{"restaurants", "users", "reviews"} {
		var count int64
		err := conn.QueryRow(ctx, "SELECT count(*) FROM "+pgx.Identifier{table}.Sanitize()).Scan(&count)
		if err != nil {
			fmt.Printf("  - %-12s unavailable (%v)\n", table, err)
			continue
		}
		fmt.Printf("  - %-12s %d rows\n", table, count)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
