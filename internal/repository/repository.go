package repository

import (
	"context"

	"foodpedia/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RestaurantRepository defines the interface for restaurant data access operations.
type RestaurantRepository interface {
	// List retrieves restaurants matching the filter, ordered by filter.Sort.
	List(ctx context.Context, filter model.RestaurantFilter) ([]model.Restaurant, error)

	// GetAll retrieves every restaurant.
	GetAll(ctx context.Context) ([]model.Restaurant, error)

	// GetByID retrieves a single restaurant by its ID.
	// Returns nil without error when it does not exist.
	GetByID(ctx context.Context, id string) (*model.Restaurant, error)

	// LockForUpdate row-locks the restaurant within the transaction so summary
	// recomputations for the same restaurant are serialised.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id string) error

	// UpdateSummary overwrites the cached rating summary in a single statement.
	UpdateSummary(ctx context.Context, tx pgx.Tx, id string, summary model.RatingSummary) error

	// Upsert inserts restaurants that do not exist yet and returns how many were inserted.
	// Existing rows, including their summaries, are left untouched.
	Upsert(ctx context.Context, restaurants []model.Restaurant) (int, error)
}

// ReviewRepository defines the interface for review data access operations.
type ReviewRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a review within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, review *model.Review) error

	// Update rewrites rating, text and tags of a review within the provided transaction.
	Update(ctx context.Context, tx pgx.Tx, review *model.Review) error

	// Delete removes a review within the provided transaction.
	Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error

	// GetByID retrieves a review by its ID. Returns nil without error when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)

	// FindByRestaurantAndUser retrieves the review a user left on a restaurant, if any.
	FindByRestaurantAndUser(ctx context.Context, restaurantID string, userID uuid.UUID) (*model.Review, error)

	// ListByRestaurant retrieves a restaurant's reviews, newest first.
	ListByRestaurant(ctx context.Context, restaurantID string) ([]model.Review, error)

	// ListRatings retrieves the ratings of a restaurant's reviews within the provided transaction.
	ListRatings(ctx context.Context, tx pgx.Tx, restaurantID string) ([]model.Review, error)

	// ListAll retrieves the restaurant and rating of every review.
	ListAll(ctx context.Context) ([]model.Review, error)

	// ListByUser retrieves a user's reviews joined with their restaurants, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserReview, error)
}

// UserRepository defines the interface for user account data access operations.
type UserRepository interface {
	// Create inserts a new user. Returns model.ErrEmailTaken if the email is registered.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail retrieves a user by email, case-insensitively.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}
