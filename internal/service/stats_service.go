package service

import (
	"context"
	"fmt"
	"sort"

	"foodpedia/internal/model"
	"foodpedia/internal/rating"
	"foodpedia/internal/repository"

	"github.com/rs/zerolog"
)

const topRestaurantCount = 5

// statsService implements StatsService.
type statsService struct {
	restaurantRepo repository.RestaurantRepository
	reviewRepo     repository.ReviewRepository
	logger         zerolog.Logger
}

// NewStatsService creates a new statistics service.
func NewStatsService(
	restaurantRepo repository.RestaurantRepository,
	reviewRepo repository.ReviewRepository,
	logger zerolog.Logger,
) StatsService {
	return &statsService{
		restaurantRepo: restaurantRepo,
		reviewRepo:     reviewRepo,
		logger:         logger.With().Str("service", "stats").Logger(),
	}
}

// Get computes platform-wide statistics. Per-restaurant numbers are derived from
// the review set rather than the cached summaries.
func (s *statsService) Get(ctx context.Context) (*model.PlatformStats, error) {
	restaurants, err := s.restaurantRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load restaurants for stats")
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	reviews, err := s.reviewRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load reviews for stats")
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	overall := rating.Summarize(reviews)
	perRestaurant := rating.ByRestaurant(reviews)

	stats := &model.PlatformStats{
		TotalReviews:     overall.Count,
		TotalRestaurants: len(restaurants),
		AvgRating:        overall.Avg,
		CuisineCount:     make(map[string]int),
		RatingDist:       overall.Breakdown,
		TopRestaurants:   []model.Restaurant{},
		ReviewsByCuisine: make(map[string]int),
	}

	for _, r := range restaurants {
		summary, ok := perRestaurant[r.ID]
		if !ok {
			summary = rating.Aggregate(r.ID, nil)
		}
		r.RatingSummary = summary

		stats.CuisineCount[r.Cuisine]++
		stats.ReviewsByCuisine[r.Cuisine] += summary.Count

		if summary.Count > 0 {
			stats.TopRestaurants = append(stats.TopRestaurants, r)
		}
	}

	sort.SliceStable(stats.TopRestaurants, func(i, j int) bool {
		a, b := stats.TopRestaurants[i], stats.TopRestaurants[j]
		if a.Avg != b.Avg {
			return a.Avg > b.Avg
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})
	if len(stats.TopRestaurants) > topRestaurantCount {
		stats.TopRestaurants = stats.TopRestaurants[:topRestaurantCount]
	}

	s.logger.Debug().
		Int("total_reviews", stats.TotalReviews).
		Int("total_restaurants", stats.TotalRestaurants).
		Msg("stats computed")

	return stats, nil
}
