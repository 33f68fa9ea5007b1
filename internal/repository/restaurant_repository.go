package repository

import (
	"context"
	"errors"
	"fmt"

	"foodpedia/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const restaurantColumns = `
	id, name, cuisine, price_range, address, phone, hours, website, description,
	emoji, tags, neighborhood, open_now,
	rating_avg, rating_count, stars_1, stars_2, stars_3, stars_4, stars_5`

// restaurantOrderBy whitelists the ORDER BY clause per sort key.
var restaurantOrderBy = map[string]string{
	model.SortByRating:  "rating_avg DESC, rating_count DESC, name ASC",
	model.SortByReviews: "rating_count DESC, rating_avg DESC, name ASC",
	model.SortByName:    "name ASC, id ASC",
}

// restaurantRepository implements the RestaurantRepository interface using PostgreSQL.
type restaurantRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRestaurantRepository creates a new PostgreSQL-backed restaurant repository.
func NewRestaurantRepository(pool *pgxpool.Pool, logger zerolog.Logger) RestaurantRepository {
	return &restaurantRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "restaurant").Logger(),
	}
}

// List retrieves restaurants matching the filter.
func (r *restaurantRepository) List(ctx context.Context, filter model.RestaurantFilter) ([]model.Restaurant, error) {
	orderBy, ok := restaurantOrderBy[filter.Sort]
	if !ok {
		return nil, model.ErrInvalidSort
	}

	query := `
		SELECT ` + restaurantColumns + `
		FROM restaurants
		WHERE ($1::text = '' OR
			strpos(lower(name), lower($1::text)) > 0 OR
			strpos(lower(cuisine), lower($1::text)) > 0 OR
			strpos(lower(neighborhood), lower($1::text)) > 0 OR
			EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE strpos(lower(tag), lower($1::text)) > 0))
		AND ($2::text = '' OR cuisine = $2::text)
		ORDER BY ` + orderBy + `
		LIMIT $3 OFFSET $4
	`

	rows, err := r.pool.Query(ctx, query, filter.Search, filter.Cuisine, filter.Limit, filter.Offset)
	if err != nil {
		r.logger.Error().Err(err).
			Str("search", filter.Search).
			Str("cuisine", filter.Cuisine).
			Msg("failed to query restaurants")
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}

	return r.collect(rows)
}

// GetAll retrieves every restaurant ordered by name.
func (r *restaurantRepository) GetAll(ctx context.Context) ([]model.Restaurant, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+restaurantColumns+` FROM restaurants ORDER BY name`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query all restaurants")
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}

	return r.collect(rows)
}

// GetByID retrieves a single restaurant by its ID.
func (r *restaurantRepository) GetByID(ctx context.Context, id string) (*model.Restaurant, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)

	restaurant, err := scanRestaurant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("restaurant_id", id).Msg("restaurant not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("restaurant_id", id).Msg("failed to query restaurant")
		return nil, fmt.Errorf("failed to query restaurant: %w", err)
	}

	return restaurant, nil
}

// LockForUpdate row-locks the restaurant within the transaction.
func (r *restaurantRepository) LockForUpdate(ctx context.Context, tx pgx.Tx, id string) error {
	var locked string
	err := tx.QueryRow(ctx, `SELECT id FROM restaurants WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrRestaurantNotFound
		}
		r.logger.Error().Err(err).Str("restaurant_id", id).Msg("failed to lock restaurant")
		return fmt.Errorf("failed to lock restaurant: %w", err)
	}
	return nil
}

// UpdateSummary overwrites the cached rating summary in a single statement.
func (r *restaurantRepository) UpdateSummary(ctx context.Context, tx pgx.Tx, id string, summary model.RatingSummary) error {
	query := `
		UPDATE restaurants
		SET rating_avg = $2, rating_count = $3,
			stars_1 = $4, stars_2 = $5, stars_3 = $6, stars_4 = $7, stars_5 = $8
		WHERE id = $1
	`

	b := summary.Breakdown
	tag, err := tx.Exec(ctx, query, id, summary.Avg, summary.Count, b[1], b[2], b[3], b[4], b[5])
	if err != nil {
		r.logger.Error().Err(err).Str("restaurant_id", id).Msg("failed to update rating summary")
		return fmt.Errorf("failed to update rating summary: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrRestaurantNotFound
	}

	r.logger.Debug().
		Str("restaurant_id", id).
		Float64("avg", summary.Avg).
		Int("count", summary.Count).
		Msg("rating summary updated")

	return nil
}

// Upsert inserts restaurants that do not exist yet.
func (r *restaurantRepository) Upsert(ctx context.Context, restaurants []model.Restaurant) (int, error) {
	if len(restaurants) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO restaurants (id, name, cuisine, price_range, address, phone, hours,
			website, description, emoji, tags, neighborhood, open_now)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, rs := range restaurants {
		batch.Queue(query, rs.ID, rs.Name, rs.Cuisine, rs.PriceRange, rs.Address, rs.Phone, rs.Hours,
			rs.Website, rs.Description, rs.Emoji, nonNilTags(rs.Tags), rs.Neighborhood, rs.OpenNow)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for i := range restaurants {
		tag, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("restaurant_id", restaurants[i].ID).
				Msg("failed to upsert restaurant")
			return inserted, fmt.Errorf("failed to upsert restaurant %s: %w", restaurants[i].ID, err)
		}
		inserted += int(tag.RowsAffected())
	}

	r.logger.Debug().
		Int("submitted", len(restaurants)).
		Int("inserted", inserted).
		Msg("restaurants upserted")

	return inserted, nil
}

func (r *restaurantRepository) collect(rows pgx.Rows) ([]model.Restaurant, error) {
	defer rows.Close()

	restaurants := []model.Restaurant{}
	for rows.Next() {
		restaurant, err := scanRestaurant(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan restaurant row")
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, *restaurant)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating restaurant rows")
		return nil, fmt.Errorf("error iterating restaurants: %w", err)
	}

	return restaurants, nil
}

func scanRestaurant(row pgx.Row) (*model.Restaurant, error) {
	var (
		rs                 model.Restaurant
		s1, s2, s3, s4, s5 int
	)
	err := row.Scan(
		&rs.ID, &rs.Name, &rs.Cuisine, &rs.PriceRange, &rs.Address, &rs.Phone, &rs.Hours,
		&rs.Website, &rs.Description, &rs.Emoji, &rs.Tags, &rs.Neighborhood, &rs.OpenNow,
		&rs.Avg, &rs.Count, &s1, &s2, &s3, &s4, &s5,
	)
	if err != nil {
		return nil, err
	}
	rs.Breakdown = model.Breakdown{1: s1, 2: s2, 3: s3, 4: s4, 5: s5}
	return &rs, nil
}
