package model

// PlatformStats is the platform-wide statistics dashboard.
type PlatformStats struct {
	TotalReviews     int            `json:"totalReviews"`
	TotalRestaurants int            `json:"totalRestaurants"`
	AvgRating        float64        `json:"avgRating"`
	CuisineCount     map[string]int `json:"cuisineCount"`
	RatingDist       Breakdown      `json:"ratingDist"`
	TopRestaurants   []Restaurant   `json:"topRestaurants"`
	ReviewsByCuisine map[string]int `json:"reviewsByCuisine"`
}
