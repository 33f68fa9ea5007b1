package model

import (
	"time"

	"github.com/google/uuid"
)

// MinReviewLength is the minimum number of characters in a trimmed review text.
const MinReviewLength = 20

// Review represents a user's star review of a restaurant.
type Review struct {
	ID           uuid.UUID `json:"id" db:"id"`
	RestaurantID string    `json:"restaurantId" db:"restaurant_id"`
	UserID       uuid.UUID `json:"userId" db:"user_id"`
	UserName     string    `json:"userName" db:"user_name"`
	Rating       int       `json:"rating" db:"rating"`
	Text         string    `json:"text" db:"text"`
	Tags         []string  `json:"tags" db:"tags"`
	Date         time.Time `json:"date" db:"review_date"`
	Helpful      int       `json:"helpful" db:"helpful"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// UserReview is a review joined with the restaurant it belongs to.
type UserReview struct {
	Review
	RestaurantName  string `json:"restaurantName"`
	RestaurantEmoji string `json:"restaurantEmoji"`
}

// ReviewRequest represents the request payload for submitting a review.
type ReviewRequest struct {
	RestaurantID string   `json:"restaurantId"`
	Rating       int      `json:"rating"`
	Text         string   `json:"text"`
	Tags         []string `json:"tags"`
}

// ReviewUpdateRequest represents the request payload for editing a review.
type ReviewUpdateRequest struct {
	Rating int      `json:"rating"`
	Text   string   `json:"text"`
	Tags   []string `json:"tags"`
}
