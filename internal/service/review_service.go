package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"foodpedia/internal/auth"
	"foodpedia/internal/model"
	"foodpedia/internal/rating"
	"foodpedia/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// reviewService implements ReviewService.
type reviewService struct {
	reviewRepo     repository.ReviewRepository
	restaurantRepo repository.RestaurantRepository
	logger         zerolog.Logger
	now            func() time.Time
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	restaurantRepo repository.RestaurantRepository,
	logger zerolog.Logger,
) ReviewService {
	return &reviewService{
		reviewRepo:     reviewRepo,
		restaurantRepo: restaurantRepo,
		logger:         logger.With().Str("service", "review").Logger(),
		now:            time.Now,
	}
}

// ListByRestaurant retrieves a restaurant's reviews, newest first.
func (s *reviewService) ListByRestaurant(ctx context.Context, restaurantID string) ([]model.Review, error) {
	if err := s.ensureRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", restaurantID).Msg("failed to list reviews")
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}

// ListByUser retrieves a user's reviews with restaurant names, newest first.
func (s *reviewService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserReview, error) {
	reviews, err := s.reviewRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list user reviews")
		return nil, fmt.Errorf("failed to list user reviews: %w", err)
	}

	return reviews, nil
}

// Submit creates a review and refreshes the restaurant's rating summary.
func (s *reviewService) Submit(ctx context.Context, author auth.Principal, req *model.ReviewRequest) (*model.Review, error) {
	if req == nil {
		return nil, fmt.Errorf("review request is nil")
	}

	text, tags, err := validateReviewContent(req.Rating, req.Text, req.Tags)
	if err != nil {
		return nil, err
	}

	if err := s.ensureRestaurant(ctx, req.RestaurantID); err != nil {
		return nil, err
	}

	existing, err := s.reviewRepo.FindByRestaurantAndUser(ctx, req.RestaurantID, author.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", req.RestaurantID).Msg("failed to check for existing review")
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}
	if existing != nil {
		s.logger.Warn().
			Str("restaurant_id", req.RestaurantID).
			Str("user_id", author.ID.String()).
			Msg("duplicate review rejected")
		return nil, model.ErrDuplicateReview
	}

	now := s.now().UTC()
	review := &model.Review{
		ID:           uuid.New(),
		RestaurantID: req.RestaurantID,
		UserID:       author.ID,
		UserName:     author.Name,
		Rating:       req.Rating,
		Text:         text,
		Tags:         tags,
		Date:         now.Truncate(24 * time.Hour),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.withTx(ctx, func(tx pgx.Tx) error {
		if err := s.restaurantRepo.LockForUpdate(ctx, tx, review.RestaurantID); err != nil {
			return err
		}
		if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
			return err
		}
		return s.refreshSummary(ctx, tx, review.RestaurantID)
	})
	if err != nil {
		return nil, s.writeError(err, "failed to submit review", review)
	}

	s.logger.Info().
		Str("review_id", review.ID.String()).
		Str("restaurant_id", review.RestaurantID).
		Int("rating", review.Rating).
		Msg("review submitted")

	return review, nil
}

// Update edits a review owned by author and refreshes the restaurant's rating summary.
func (s *reviewService) Update(ctx context.Context, author auth.Principal, reviewID uuid.UUID, req *model.ReviewUpdateRequest) (*model.Review, error) {
	if req == nil {
		return nil, fmt.Errorf("review request is nil")
	}

	text, tags, err := validateReviewContent(req.Rating, req.Text, req.Tags)
	if err != nil {
		return nil, err
	}

	review, err := s.ownedReview(ctx, author, reviewID)
	if err != nil {
		return nil, err
	}

	review.Rating = req.Rating
	review.Text = text
	review.Tags = tags
	review.UpdatedAt = s.now().UTC()

	err = s.withTx(ctx, func(tx pgx.Tx) error {
		if err := s.restaurantRepo.LockForUpdate(ctx, tx, review.RestaurantID); err != nil {
			return err
		}
		if err := s.reviewRepo.Update(ctx, tx, review); err != nil {
			return err
		}
		return s.refreshSummary(ctx, tx, review.RestaurantID)
	})
	if err != nil {
		return nil, s.writeError(err, "failed to update review", review)
	}

	s.logger.Info().
		Str("review_id", review.ID.String()).
		Str("restaurant_id", review.RestaurantID).
		Int("rating", review.Rating).
		Msg("review updated")

	return review, nil
}

// Delete removes a review owned by author and refreshes the restaurant's rating summary.
func (s *reviewService) Delete(ctx context.Context, author auth.Principal, reviewID uuid.UUID) error {
	review, err := s.ownedReview(ctx, author, reviewID)
	if err != nil {
		return err
	}

	err = s.withTx(ctx, func(tx pgx.Tx) error {
		if err := s.restaurantRepo.LockForUpdate(ctx, tx, review.RestaurantID); err != nil {
			return err
		}
		if err := s.reviewRepo.Delete(ctx, tx, review.ID); err != nil {
			return err
		}
		return s.refreshSummary(ctx, tx, review.RestaurantID)
	})
	if err != nil {
		return s.writeError(err, "failed to delete review", review)
	}

	s.logger.Info().
		Str("review_id", review.ID.String()).
		Str("restaurant_id", review.RestaurantID).
		Msg("review deleted")

	return nil
}

// refreshSummary recomputes the restaurant's summary from its current review set
// and overwrites the cached copy. Never patched incrementally.
func (s *reviewService) refreshSummary(ctx context.Context, tx pgx.Tx, restaurantID string) error {
	reviews, err := s.reviewRepo.ListRatings(ctx, tx, restaurantID)
	if err != nil {
		return err
	}

	summary := rating.Aggregate(restaurantID, reviews)
	if err := s.restaurantRepo.UpdateSummary(ctx, tx, restaurantID, summary); err != nil {
		return err
	}

	s.logger.Debug().
		Str("restaurant_id", restaurantID).
		Float64("avg", summary.Avg).
		Int("count", summary.Count).
		Msg("rating summary refreshed")

	return nil
}

// withTx runs fn in a transaction, committing on success and rolling back otherwise.
func (s *reviewService) withTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := s.reviewRepo.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// writeError passes domain errors through and wraps everything else.
func (s *reviewService) writeError(err error, msg string, review *model.Review) error {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		s.logger.Warn().
			Err(err).
			Str("review_id", review.ID.String()).
			Str("restaurant_id", review.RestaurantID).
			Msg(msg)
		return err
	}

	s.logger.Error().
		Err(err).
		Str("review_id", review.ID.String()).
		Str("restaurant_id", review.RestaurantID).
		Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}

func (s *reviewService) ensureRestaurant(ctx context.Context, restaurantID string) error {
	if restaurantID == "" {
		return model.ErrRestaurantNotFound
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", restaurantID).Msg("failed to get restaurant")
		return fmt.Errorf("failed to get restaurant: %w", err)
	}
	if restaurant == nil {
		s.logger.Debug().Str("restaurant_id", restaurantID).Msg("restaurant not found")
		return model.ErrRestaurantNotFound
	}

	return nil
}

func (s *reviewService) ownedReview(ctx context.Context, author auth.Principal, reviewID uuid.UUID) (*model.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		s.logger.Error().Err(err).Str("review_id", reviewID.String()).Msg("failed to get review")
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if review == nil {
		return nil, model.ErrReviewNotFound
	}

	if review.UserID != author.ID {
		s.logger.Warn().
			Str("review_id", reviewID.String()).
			Str("owner_id", review.UserID.String()).
			Str("user_id", author.ID.String()).
			Msg("review change by non-owner rejected")
		return nil, model.ErrForbidden
	}

	return review, nil
}

// validateReviewContent checks rating and text and returns the trimmed text and
// deduplicated tags.
func validateReviewContent(stars int, text string, tags []string) (string, []string, error) {
	if stars < model.MinStars || stars > model.MaxStars {
		return "", nil, model.ErrInvalidRating
	}

	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < model.MinReviewLength {
		return "", nil, model.ErrReviewTooShort
	}

	return text, normaliseTags(tags), nil
}

func normaliseTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
