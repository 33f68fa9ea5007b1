//go:build ignore

package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"foodpedia/internal/model"
)

// generateSampleCatalog writes a gzipped JSON-lines restaurant catalogue.
// Usage: go run scripts/generate_sample_catalog.go
func main() {
	dataDir := "data/catalog"

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	restaurants := []model.Restaurant{
		{
			ID: "r1", Name: "Sakura Sushi", Cuisine: "Japanese", PriceRange: "$$$",
			Address: "12 Harbour St", Phone: "(555) 010-1001", Hours: "12:00-22:00",
			Website: "https://sakura.example.com", Description: "Omakase counter with fish flown in daily.",
			Emoji: "🍣", Tags: []string{"Omakase", "Date Night"}, Neighborhood: "Downtown", OpenNow: true,
		},
		{
			ID: "r2", Name: "Bella Napoli", Cuisine: "Italian", PriceRange: "$$",
			Address: "48 Mulberry Ave", Phone: "(555) 010-1002", Hours: "11:30-23:00",
			Description: "Wood-fired Neapolitan pizza and fresh pasta.",
			Emoji: "🍕", Tags: []string{"Pizza", "Family Friendly"}, Neighborhood: "Little Italy", OpenNow: true,
		},
		{
			ID: "r3", Name: "Taco Loco", Cuisine: "Mexican", PriceRange: "$",
			Address: "301 Valencia St", Phone: "(555) 010-1003", Hours: "10:00-02:00",
			Description: "Street tacos, salsas made in-house, late-night window.",
			Emoji: "🌮", Tags: []string{"Late Night", "Cheap Eats"}, Neighborhood: "Mission", OpenNow: true,
		},
		{
			ID: "r4", Name: "Golden Dragon", Cuisine: "Chinese", PriceRange: "$$",
			Address: "88 Grant Ave", Phone: "(555) 010-1004", Hours: "10:00-22:00",
			Description: "Cantonese dim sum trolleys every weekend morning.",
			Emoji: "🥟", Tags: []string{"Dim Sum", "Groups"}, Neighborhood: "Chinatown", OpenNow: false,
		},
		{
			ID: "r5", Name: "Le Petit Bistro", Cuisine: "French", PriceRange: "$$$$",
			Address: "7 Rue Lane", Phone: "(555) 010-1005", Hours: "17:30-23:00",
			Description: "Classic bistro cooking and a long wine list.",
			Emoji: "🥐", Tags: []string{"Wine", "Date Night"}, Neighborhood: "West End", OpenNow: false,
		},
		{
			ID: "r6", Name: "Spice Route", Cuisine: "Indian", PriceRange: "$$",
			Address: "220 Curry Rd", Phone: "(555) 010-1006", Hours: "11:00-22:30",
			Description: "Regional Indian curries and tandoor breads.",
			Emoji: "🍛", Tags: []string{"Vegetarian", "Spicy"}, Neighborhood: "Eastside", OpenNow: true,
		},
		{
			ID: "r7", Name: "Bangkok Street", Cuisine: "Thai", PriceRange: "$",
			Address: "15 Canal St", Phone: "(555) 010-1007", Hours: "11:00-21:00",
			Description: "Boat noodles and grilled skewers.",
			Emoji: "🍜", Tags: []string{"Spicy", "Cheap Eats"}, Neighborhood: "Riverside", OpenNow: true,
		},
		{
			ID: "r8", Name: "The Burger Joint", Cuisine: "American", PriceRange: "$",
			Address: "500 Main St", Phone: "(555) 010-1008", Hours: "11:00-23:00",
			Description: "Smash burgers, hand-cut fries and milkshakes.",
			Emoji: "🍔", Tags: []string{"Burgers", "Family Friendly"}, Neighborhood: "Midtown", OpenNow: true,
		},
	}

	filePath := filepath.Join(dataDir, "restaurants.jsonl.gz")
	if err := writeCatalogFile(filePath, restaurants); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d restaurants\n", filePath, len(restaurants))
	fmt.Println("\nSeed it with: CATALOG_SEED=true CATALOG_FILES=" + filePath)
}

func writeCatalogFile(filePath string, restaurants []model.Restaurant) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	for _, rs := range restaurants {
		rs.RatingSummary = model.RatingSummary{}
		if err := encoder.Encode(rs); err != nil {
			return fmt.Errorf("failed to write restaurant %s: %w", rs.ID, err)
		}
	}

	return nil
}
