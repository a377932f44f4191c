package planner

import (
	"strings"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
)

// DestinationCost is the midpoint estimate of one destination. A destination
// without a price range costs 0.
func DestinationCost(dest domain.Destination) float64 {
	pr := dest.PriceRange()
	if pr == nil {
		return 0
	}
	return pr.Midpoint()
}

// TripCost sums the midpoint of every destination and multiplies by the
// traveler count. Itinerary totals, live trip estimates and booking totals all
// go through this function.
func TripCost(dests []domain.Destination, travelers int) float64 {
	subtotal := 0.0
	for _, dest := range dests {
		subtotal += DestinationCost(dest)
	}
	return subtotal * float64(travelers)
}

// Estimate wraps TripCost with the bookkeeping shown next to a trip total.
func Estimate(dests []domain.Destination, travelers int) domain.TripCostEstimate {
	est := domain.TripCostEstimate{
		Travelers: travelers,
		Total:     TripCost(dests, travelers),
		Currency:  Currency(dests),
	}
	for _, dest := range dests {
		if dest.PriceRange() == nil {
			est.Unpriced++
			continue
		}
		est.Priced++
	}
	return est
}

// Currency picks the first currency found among priced destinations.
func Currency(dests []domain.Destination) string {
	for _, dest := range dests {
		if pr := dest.PriceRange(); pr != nil && strings.TrimSpace(pr.Currency) != "" {
			return pr.Currency
		}
	}
	return domain.DefaultCurrency
}
