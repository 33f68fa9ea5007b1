package model

// MinStars and MaxStars bound a review rating.
const (
	MinStars = 1
	MaxStars = 5
)

// Breakdown is a histogram of review counts keyed by star rating 1..5.
type Breakdown map[int]int

// NewBreakdown returns a breakdown with every star key present and zeroed.
func NewBreakdown() Breakdown {
	b := make(Breakdown, MaxStars)
	for star := MinStars; star <= MaxStars; star++ {
		b[star] = 0
	}
	return b
}

// Total returns the sum of all star counts.
func (b Breakdown) Total() int {
	total := 0
	for _, c := range b {
		total += c
	}
	return total
}

// RatingSummary is the derived aggregate of a restaurant's reviews.
// It is never authoritative: the review set is.
type RatingSummary struct {
	Avg       float64   `json:"avg"`
	Count     int       `json:"count"`
	Breakdown Breakdown `json:"breakdown"`
}

// Restaurant represents a restaurant listing with its cached rating summary.
type Restaurant struct {
	ID           string   `json:"id" db:"id"`
	Name         string   `json:"name" db:"name"`
	Cuisine      string   `json:"cuisine" db:"cuisine"`
	PriceRange   string   `json:"priceRange" db:"price_range"`
	Address      string   `json:"address" db:"address"`
	Phone        string   `json:"phone" db:"phone"`
	Hours        string   `json:"hours" db:"hours"`
	Website      string   `json:"website" db:"website"`
	Description  string   `json:"description" db:"description"`
	Emoji        string   `json:"emoji" db:"emoji"`
	Tags         []string `json:"tags" db:"tags"`
	Neighborhood string   `json:"neighborhood" db:"neighborhood"`
	OpenNow      bool     `json:"openNow" db:"open_now"`

	RatingSummary
}

// Restaurant sort orders.
const (
	SortByRating  = "rating"
	SortByReviews = "reviews"
	SortByName    = "name"
)

// RestaurantFilter holds the browse/search parameters for listing restaurants.
type RestaurantFilter struct {
	Search  string
	Cuisine string
	Sort    string
	Limit   int
	Offset  int
}
