package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the repositories translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Constraint names from schema.sql.
const (
	constraintReviewUnique     = "reviews_restaurant_user_key"
	constraintReviewRestaurant = "reviews_restaurant_id_fkey"
	constraintReviewUser       = "reviews_user_id_fkey"
	constraintUserEmail        = "idx_users_email"
)

// constraintViolation reports the violated constraint name when err is a
// PostgreSQL error with the given code.
func constraintViolation(err error, code string) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// nonNilTags keeps NOT NULL array columns satisfied.
func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
