package planner

import "math"

// RoundRating rounds a mean rating to one decimal place, halves away from zero.
// It matches ROUND(AVG(rating)::numeric, 1) as used by the postgres
// ReviewRepository.RecordApprovedAggregate.
func RoundRating(mean float64) float64 {
	return math.Round(mean*10) / 10
}

// ApprovedAggregate computes the displayed rating and review count from the
// ratings of approved reviews. No approved reviews yields (0, 0).
//
// The postgres repository computes the same values in SQL; this is the
// in-process form for repositories without a database.
func ApprovedAggregate(ratings []int) (float64, int) {
	if len(ratings) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return RoundRating(float64(sum) / float64(len(ratings))), len(ratings)
}
