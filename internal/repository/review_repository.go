package repository

import (
	"context"
	"errors"
	"fmt"

	"foodpedia/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const reviewColumns = `
	id, restaurant_id, user_id, user_name, rating, text, tags,
	review_date, helpful, created_at, updated_at`

// reviewRepository implements the ReviewRepository interface using PostgreSQL.
type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *reviewRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a review within the provided transaction.
func (r *reviewRepository) Create(ctx context.Context, tx pgx.Tx, review *model.Review) error {
	query := `
		INSERT INTO reviews (id, restaurant_id, user_id, user_name, rating, text, tags,
			review_date, helpful, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := tx.Exec(ctx, query,
		review.ID, review.RestaurantID, review.UserID, review.UserName, review.Rating, review.Text,
		nonNilTags(review.Tags), review.Date, review.Helpful, review.CreatedAt, review.UpdatedAt,
	)
	if err != nil {
		if constraint, ok := constraintViolation(err, pgUniqueViolation); ok && constraint == constraintReviewUnique {
			r.logger.Debug().
				Str("restaurant_id", review.RestaurantID).
				Str("user_id", review.UserID.String()).
				Msg("duplicate review rejected by constraint")
			return model.ErrDuplicateReview
		}
		if constraint, ok := constraintViolation(err, pgForeignKeyViolation); ok {
			switch constraint {
			case constraintReviewRestaurant:
				return model.ErrRestaurantNotFound
			case constraintReviewUser:
				return model.ErrUserNotFound
			}
		}
		r.logger.Error().
			Err(err).
			Str("review_id", review.ID.String()).
			Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}

	r.logger.Debug().
		Str("review_id", review.ID.String()).
		Str("restaurant_id", review.RestaurantID).
		Msg("review created successfully")

	return nil
}

// Update rewrites rating, text and tags of a review within the provided transaction.
func (r *reviewRepository) Update(ctx context.Context, tx pgx.Tx, review *model.Review) error {
	query := `
		UPDATE reviews
		SET rating = $2, text = $3, tags = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, review.ID, review.Rating, review.Text, nonNilTags(review.Tags), review.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", review.ID.String()).Msg("failed to update review")
		return fmt.Errorf("failed to update review: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

// Delete removes a review within the provided transaction.
func (r *reviewRepository) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to delete review")
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

// GetByID retrieves a review by its ID.
func (r *reviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)

	review, err := scanReview(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("review_id", id.String()).Msg("review not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to query review")
		return nil, fmt.Errorf("failed to query review: %w", err)
	}

	return review, nil
}

// FindByRestaurantAndUser retrieves the review a user left on a restaurant, if any.
func (r *reviewRepository) FindByRestaurantAndUser(ctx context.Context, restaurantID string, userID uuid.UUID) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE restaurant_id = $1 AND user_id = $2`

	review, err := scanReview(r.pool.QueryRow(ctx, query, restaurantID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().
			Err(err).
			Str("restaurant_id", restaurantID).
			Str("user_id", userID.String()).
			Msg("failed to query review by restaurant and user")
		return nil, fmt.Errorf("failed to query review: %w", err)
	}

	return review, nil
}

// ListByRestaurant retrieves a restaurant's reviews, newest first.
func (r *reviewRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]model.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE restaurant_id = $1
		ORDER BY review_date DESC, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		r.logger.Error().Err(err).Str("restaurant_id", restaurantID).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan review row")
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, *review)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating review rows")
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// ListRatings retrieves the ratings of a restaurant's reviews within the provided transaction.
func (r *reviewRepository) ListRatings(ctx context.Context, tx pgx.Tx, restaurantID string) ([]model.Review, error) {
	rows, err := tx.Query(ctx, `SELECT id, restaurant_id, rating FROM reviews WHERE restaurant_id = $1`, restaurantID)
	if err != nil {
		r.logger.Error().Err(err).Str("restaurant_id", restaurantID).Msg("failed to query ratings")
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}

	return collectRatings(rows)
}

// ListAll retrieves the restaurant and rating of every review.
func (r *reviewRepository) ListAll(ctx context.Context) ([]model.Review, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, restaurant_id, rating FROM reviews`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query all ratings")
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}

	return collectRatings(rows)
}

// ListByUser retrieves a user's reviews joined with their restaurants, newest first.
func (r *reviewRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserReview, error) {
	query := `
		SELECT rv.id, rv.restaurant_id, rv.user_id, rv.user_name, rv.rating, rv.text, rv.tags,
			rv.review_date, rv.helpful, rv.created_at, rv.updated_at,
			rs.name, rs.emoji
		FROM reviews rv
		JOIN restaurants rs ON rs.id = rv.restaurant_id
		WHERE rv.user_id = $1
		ORDER BY rv.review_date DESC, rv.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query user reviews")
		return nil, fmt.Errorf("failed to query user reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.UserReview{}
	for rows.Next() {
		var ur model.UserReview
		err := rows.Scan(
			&ur.ID, &ur.RestaurantID, &ur.UserID, &ur.UserName, &ur.Rating, &ur.Text, &ur.Tags,
			&ur.Date, &ur.Helpful, &ur.CreatedAt, &ur.UpdatedAt,
			&ur.RestaurantName, &ur.RestaurantEmoji,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan user review row")
			return nil, fmt.Errorf("failed to scan user review: %w", err)
		}
		reviews = append(reviews, ur)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating user review rows")
		return nil, fmt.Errorf("error iterating user reviews: %w", err)
	}

	return reviews, nil
}

func collectRatings(rows pgx.Rows) ([]model.Review, error) {
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.RestaurantID, &rv.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ratings: %w", err)
	}

	return reviews, nil
}

func scanReview(row pgx.Row) (*model.Review, error) {
	var rv model.Review
	err := row.Scan(
		&rv.ID, &rv.RestaurantID, &rv.UserID, &rv.UserName, &rv.Rating, &rv.Text, &rv.Tags,
		&rv.Date, &rv.Helpful, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}
