package service

import (
	"context"

	"foodpedia/internal/auth"
	"foodpedia/internal/model"

	"github.com/google/uuid"
)

// RestaurantService defines operations for browsing restaurants.
type RestaurantService interface {
	// List retrieves restaurants matching the filter with their rating summaries.
	List(ctx context.Context, filter model.RestaurantFilter) ([]model.Restaurant, error)

	// GetByID retrieves a single restaurant by ID.
	GetByID(ctx context.Context, id string) (*model.Restaurant, error)
}

// ReviewService defines operations for reading and writing reviews.
// Every write recomputes the affected restaurant's rating summary before it returns.
type ReviewService interface {
	// ListByRestaurant retrieves a restaurant's reviews, newest first.
	ListByRestaurant(ctx context.Context, restaurantID string) ([]model.Review, error)

	// ListByUser retrieves a user's reviews with restaurant names, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserReview, error)

	// Submit creates a review. At most one review per user and restaurant is accepted.
	Submit(ctx context.Context, author auth.Principal, req *model.ReviewRequest) (*model.Review, error)

	// Update edits a review owned by author.
	Update(ctx context.Context, author auth.Principal, reviewID uuid.UUID, req *model.ReviewUpdateRequest) (*model.Review, error)

	// Delete removes a review owned by author.
	Delete(ctx context.Context, author auth.Principal, reviewID uuid.UUID) error
}

// StatsService defines the platform statistics dashboard.
type StatsService interface {
	// Get computes platform-wide statistics from the current review set.
	Get(ctx context.Context) (*model.PlatformStats, error)
}

// AuthService defines account operations.
type AuthService interface {
	// Register creates an account and signs the user in.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login verifies credentials and signs the user in.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// Me retrieves the profile of the signed-in user.
	Me(ctx context.Context, userID uuid.UUID) (*model.User, error)
}
