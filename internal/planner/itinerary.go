package planner

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
)

const (
	// PriceSlack widens the per-person daily budget when filtering by min price.
	PriceSlack       = 1.5
	// MaxDays bounds the itinerary length accepted from callers.
	MaxDays          = 30
	candidatesPerDay = 2
)

var (
	ErrInvalidRequest = errors.New("invalid itinerary request")
	ErrNoCandidates   = errors.New("no destinations match your criteria")
)

var travelTips = []string{
	"Book transport and accommodation early for weekends and public holidays.",
	"Carry some cash; smaller attractions and street vendors rarely take cards.",
	"Check the weather forecast the day before each visit.",
	"Keep digital and paper copies of your ID and bookings.",
}

// Tips returns the fixed advice attached to every itinerary.
func Tips() []string {
	return append([]string(nil), travelTips...)
}

func Validate(req domain.ItineraryRequest) error {
	switch {
	case math.IsNaN(req.Budget) || math.IsInf(req.Budget, 0) || req.Budget <= 0:
		return fmt.Errorf("%w: budget must be greater than zero", ErrInvalidRequest)
	case req.Days < 1:
		return fmt.Errorf("%w: days must be at least 1", ErrInvalidRequest)
	case req.Days > MaxDays:
		return fmt.Errorf("%w: days must be at most %d", ErrInvalidRequest, MaxDays)
	case req.Travelers < 1:
		return fmt.Errorf("%w: travelers must be at least 1", ErrInvalidRequest)
	}
	return nil
}

// DailyBudgetPerPerson assumes a validated request.
func DailyBudgetPerPerson(req domain.ItineraryRequest) float64 {
	return req.Budget / float64(req.Days) / float64(req.Travelers)
}

// PriceCeiling is the highest min price a candidate may have.
func PriceCeiling(req domain.ItineraryRequest) float64 {
	return DailyBudgetPerPerson(req) * PriceSlack
}

func CandidateLimit(days int) int {
	return days * candidatesPerDay
}

// Title describes the trip length and the chosen tags.
func Title(days int, tags []Tag) string {
	if len(tags) == 0 {
		return fmt.Sprintf("%d-day discovery trip", days)
	}
	labels := make([]string, len(tags))
	for i, tag := range tags {
		labels[i] = string(tag)
	}
	return fmt.Sprintf("%d-day trip: %s", days, strings.Join(labels, ", "))
}

// Build assigns candidates to days round-robin and totals the cost.
// Candidates must already be ordered by rating.
func Build(req domain.ItineraryRequest, tags []Tag, candidates []domain.Destination) (*domain.Itinerary, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	items := make([]domain.ItineraryItem, 0, req.Days)
	assigned := make([]domain.Destination, 0, req.Days)
	for day := 1; day <= req.Days; day++ {
		dest := candidates[(day-1)%len(candidates)]
		assigned = append(assigned, dest)
		items = append(items, domain.ItineraryItem{
			Day:           day,
			DestinationID: dest.ID,
			Destination: domain.ItineraryPlaceRef{
				Name:       dest.Name,
				Slug:       dest.Slug,
				Province:   dest.ProvinceName,
				Category:   dest.CategorySlug,
				PriceRange: dest.PriceRange(),
				Rating:     dest.Rating,
			},
			Duration:      dest.Duration,
			Note:          dayNote(day, dest, day > len(candidates)),
			EstimatedCost: DestinationCost(dest) * float64(req.Travelers),
		})
	}

	return &domain.Itinerary{
		Title:              Title(req.Days, tags),
		Items:              items,
		TotalEstimatedCost: TripCost(assigned, req.Travelers),
		Currency:           Currency(assigned),
		Tips:               Tips(),
	}, nil
}

func dayNote(day int, dest domain.Destination, repeat bool) string {
	place := dest.Name
	if dest.ProvinceName != nil && strings.TrimSpace(*dest.ProvinceName) != "" {
		place = fmt.Sprintf("%s, %s", dest.Name, *dest.ProvinceName)
	}
	if repeat {
		return fmt.Sprintf("Day %d: revisit %s and explore the spots you missed", day, place)
	}
	return fmt.Sprintf("Day %d: explore %s", day, place)
}
