// Package rating derives restaurant rating summaries from review sets.
package rating

import (
	"math"

	"foodpedia/internal/model"
)

// Aggregate computes the rating summary of restaurantID over reviews.
// Reviews for other restaurants are ignored, as are ratings outside 1..5.
// An empty set yields a zero average and an all-zero breakdown.
func Aggregate(restaurantID string, reviews []model.Review) model.RatingSummary {
	acc := newAccumulator()
	for _, r := range reviews {
		if r.RestaurantID == restaurantID {
			acc.add(r.Rating)
		}
	}
	return acc.summary()
}

// Summarize computes a single summary over every review regardless of restaurant.
func Summarize(reviews []model.Review) model.RatingSummary {
	acc := newAccumulator()
	for _, r := range reviews {
		acc.add(r.Rating)
	}
	return acc.summary()
}

// ByRestaurant groups reviews by restaurant and summarises each group in one pass.
// Restaurants without reviews are absent from the result.
func ByRestaurant(reviews []model.Review) map[string]model.RatingSummary {
	accs := make(map[string]*accumulator)
	for _, r := range reviews {
		acc, ok := accs[r.RestaurantID]
		if !ok {
			acc = newAccumulator()
			accs[r.RestaurantID] = acc
		}
		acc.add(r.Rating)
	}

	out := make(map[string]model.RatingSummary, len(accs))
	for id, acc := range accs {
		out[id] = acc.summary()
	}
	return out
}

// Round2 rounds f to two decimal places.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

type accumulator struct {
	sum       int
	count     int
	breakdown model.Breakdown
}

func newAccumulator() *accumulator {
	return &accumulator{breakdown: model.NewBreakdown()}
}

func (a *accumulator) add(stars int) {
	if stars < model.MinStars || stars > model.MaxStars {
		return
	}
	a.sum += stars
	a.count++
	a.breakdown[stars]++
}

func (a *accumulator) summary() model.RatingSummary {
	s := model.RatingSummary{
		Count:     a.count,
		Breakdown: a.breakdown,
	}
	if a.count > 0 {
		s.Avg = Round2(float64(a.sum) / float64(a.count))
	}
	return s
}
