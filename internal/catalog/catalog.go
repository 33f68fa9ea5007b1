// Package catalog loads the restaurant catalogue from gzipped JSON-lines files
// and seeds it into storage.
package catalog

import (
	"context"

	"foodpedia/internal/model"
)

// Loader reads one catalogue file.
type Loader interface {
	// Load reads a gzipped JSON-lines file and returns its restaurants in file order.
	Load(ctx context.Context, path string) ([]model.Restaurant, error)
}

// Store persists catalogue entries without touching existing rows.
type Store interface {
	Upsert(ctx context.Context, restaurants []model.Restaurant) (int, error)
}
