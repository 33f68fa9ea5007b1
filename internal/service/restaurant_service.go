package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodpedia/internal/model"
	"foodpedia/internal/repository"

	"github.com/rs/zerolog"
)

const (
	defaultRestaurantLimit = 50
	maxRestaurantLimit     = 100
	allCuisines            = "All"
)

// restaurantService implements RestaurantService.
type restaurantService struct {
	restaurantRepo repository.RestaurantRepository
	logger         zerolog.Logger
}

// NewRestaurantService creates a new restaurant service.
func NewRestaurantService(restaurantRepo repository.RestaurantRepository, logger zerolog.Logger) RestaurantService {
	return &restaurantService{
		restaurantRepo: restaurantRepo,
		logger:         logger.With().Str("service", "restaurant").Logger(),
	}
}

// List retrieves restaurants matching the filter.
func (s *restaurantService) List(ctx context.Context, filter model.RestaurantFilter) ([]model.Restaurant, error) {
	filter, err := normaliseFilter(filter)
	if err != nil {
		return nil, err
	}

	restaurants, err := s.restaurantRepo.List(ctx, filter)
	if err != nil {
		if errors.Is(err, model.ErrInvalidSort) {
			return nil, err
		}
		s.logger.Error().Err(err).
			Str("search", filter.Search).
			Str("cuisine", filter.Cuisine).
			Str("sort", filter.Sort).
			Msg("failed to list restaurants")
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}

	s.logger.Debug().
		Int("count", len(restaurants)).
		Str("sort", filter.Sort).
		Msg("retrieved restaurants")

	return restaurants, nil
}

// GetByID retrieves a single restaurant by ID.
func (s *restaurantService) GetByID(ctx context.Context, id string) (*model.Restaurant, error) {
	if id == "" {
		return nil, model.ErrRestaurantNotFound
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", id).Msg("failed to get restaurant by ID")
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	if restaurant == nil {
		return nil, model.ErrRestaurantNotFound
	}

	return restaurant, nil
}

// normaliseFilter applies defaults and bounds to a listing filter.
func normaliseFilter(filter model.RestaurantFilter) (model.RestaurantFilter, error) {
	filter.Search = strings.TrimSpace(filter.Search)

	filter.Cuisine = strings.TrimSpace(filter.Cuisine)
	if filter.Cuisine == allCuisines {
		filter.Cuisine = ""
	}

	switch filter.Sort {
	case "":
		filter.Sort = model.SortByRating
	case model.SortByRating, model.SortByReviews, model.SortByName:
	default:
		return filter, model.ErrInvalidSort
	}

	if filter.Limit <= 0 {
		filter.Limit = defaultRestaurantLimit
	}
	if filter.Limit > maxRestaurantLimit {
		filter.Limit = maxRestaurantLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return filter, nil
}
