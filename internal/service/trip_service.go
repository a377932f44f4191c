package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/planner"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/ports"
)

var (
	ErrTripValidation      = errors.New("trip validation failed")
	ErrTripNotFound        = errors.New("trip not found")
	ErrTripVersionConflict = errors.New("trip was modified by another request")
	ErrTripItemExists      = errors.New("destination already in trip")
	ErrTripItemNotFound    = errors.New("destination not in trip")
)

const (
	maxTripNameLength = 120
	maxTravelers      = 100
)

type TripCreateInput struct {
	Name        string
	Description *string
	Travelers   *int
	StartDate   *time.Time
}

// TripUpdateInput applies only non-nil fields. ExpectedVersion 0 skips the
// concurrency check and updates whatever is stored.
type TripUpdateInput struct {
	Name            *string
	Description     *string
	Status          *domain.TripStatus
	Travelers       *int
	StartDate       *time.Time
	ExpectedVersion int
}

type TripListResult struct {
	Items  []domain.Trip
	Total  int64
	Limit  int
	Offset int
}

type TripService struct {
	trips   ports.TripRepository
	catalog ports.DestinationCatalog
}

func NewTripService(trips ports.TripRepository, catalog ports.DestinationCatalog) *TripService {
	return &TripService{trips: trips, catalog: catalog}
}

func (s *TripService) Create(ctx context.Context, principal domain.Principal, input TripCreateInput) (*domain.Trip, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateTripName(name); err != nil {
		return nil, err
	}
	travelers := 1
	if input.Travelers != nil {
		travelers = *input.Travelers
	}
	if err := validateTravelers(travelers); err != nil {
		return nil, err
	}

	trip, err := s.trips.Create(ctx, &domain.Trip{
		UserID:      principal.UserID,
		Name:        name,
		Description: normalizeString(input.Description),
		Status:      domain.TripStatusPlanning,
		Travelers:   travelers,
		StartDate:   input.StartDate,
	})
	if err != nil {
		return nil, err
	}
	trip.Items = []domain.TripItem{}
	return trip, nil
}

func (s *TripService) List(ctx context.Context, principal domain.Principal, limit, offset int) (*TripListResult, error) {
	limit, offset = normalizePagination(limit, offset)
	trips, err := s.trips.ListByUser(ctx, principal.UserID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.trips.CountByUser(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return &TripListResult{Items: trips, Total: total, Limit: limit, Offset: offset}, nil
}

// Get returns the trip with its items in order.
func (s *TripService) Get(ctx context.Context, principal domain.Principal, tripID uuid.UUID) (*domain.Trip, error) {
	trip, err := s.loadOwned(ctx, principal, tripID)
	if err != nil {
		return nil, err
	}
	items, err := s.trips.ListItems(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	trip.Items = items
	return trip, nil
}

func (s *TripService) Update(ctx context.Context, principal domain.Principal, tripID uuid.UUID, input TripUpdateInput) (*domain.Trip, error) {
	trip, err := s.loadOwned(ctx, principal, tripID)
	if err != nil {
		return nil, err
	}
	expected := input.ExpectedVersion
	if expected == 0 {
		expected = trip.Version
	} else if expected != trip.Version {
		return nil, ErrTripVersionConflict
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := validateTripName(name); err != nil {
			return nil, err
		}
		trip.Name = name
	}
	if input.Description != nil {
		trip.Description = normalizeString(input.Description)
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, fmt.Errorf("%w: status must be planning, ongoing or completed", ErrTripValidation)
		}
		trip.Status = *input.Status
	}
	if input.Travelers != nil {
		if err := validateTravelers(*input.Travelers); err != nil {
			return nil, err
		}
		trip.Travelers = *input.Travelers
	}
	if input.StartDate != nil {
		trip.StartDate = input.StartDate
	}

	updated, err := s.trips.Update(ctx, trip, expected)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTripVersionConflict
		}
		return nil, err
	}
	return s.withItems(ctx, updated)
}

func (s *TripService) Delete(ctx context.Context, principal domain.Principal, tripID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, principal, tripID); err != nil {
		return err
	}
	if err := s.trips.Delete(ctx, tripID); err != nil {
		if isNotFound(err) {
			return ErrTripNotFound
		}
		return err
	}
	return nil
}

// AddDestination appends an active destination at the end of the trip.
func (s *TripService) AddDestination(ctx context.Context, principal domain.Principal, tripID, destinationID uuid.UUID, notes *string) (*domain.Trip, error) {
	trip, err := s.loadOwned(ctx, principal, tripID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureActiveDestination(ctx, destinationID); err != nil {
		return nil, err
	}

	items, err := s.trips.ListItems(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	next := 0
	for _, item := range items {
		if item.DestinationID == destinationID {
			return nil, ErrTripItemExists
		}
		if item.OrderIndex >= next {
			next = item.OrderIndex + 1
		}
	}

	if _, err := s.trips.AddItem(ctx, &domain.TripItem{
		TripID:        trip.ID,
		DestinationID: destinationID,
		OrderIndex:    next,
		Notes:         normalizeString(notes),
	}); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTripItemExists
		}
		return nil, err
	}
	return s.reload(ctx, trip.ID)
}

// RemoveDestination leaves the remaining order indexes untouched.
func (s *TripService) RemoveDestination(ctx context.Context, principal domain.Principal, tripID, destinationID uuid.UUID) (*domain.Trip, error) {
	if _, err := s.loadOwned(ctx, principal, tripID); err != nil {
		return nil, err
	}
	if err := s.trips.RemoveItem(ctx, tripID, destinationID); err != nil {
		if isNotFound(err) {
			return nil, ErrTripItemNotFound
		}
		return nil, err
	}
	return s.reload(ctx, tripID)
}

func (s *TripService) UpdateDestination(ctx context.Context, principal domain.Principal, tripID, destinationID uuid.UUID, notes *string, plannedDate *time.Time) (*domain.Trip, error) {
	if _, err := s.loadOwned(ctx, principal, tripID); err != nil {
		return nil, err
	}
	if _, err := s.trips.UpdateItem(ctx, tripID, destinationID, normalizeString(notes), plannedDate); err != nil {
		if isNotFound(err) {
			return nil, ErrTripItemNotFound
		}
		return nil, err
	}
	return s.reload(ctx, tripID)
}

// ReorderDestinations requires the full set of current destinations in the
// new order and rewrites indexes to 0..n-1.
func (s *TripService) ReorderDestinations(ctx context.Context, principal domain.Principal, tripID uuid.UUID, destinationIDs []uuid.UUID) (*domain.Trip, error) {
	if _, err := s.loadOwned(ctx, principal, tripID); err != nil {
		return nil, err
	}
	items, err := s.trips.ListItems(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if len(destinationIDs) != len(items) {
		return nil, fmt.Errorf("%w: order must list all %d destinations", ErrTripValidation, len(items))
	}
	current := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		current[item.DestinationID] = false
	}
	for _, id := range destinationIDs {
		used, ok := current[id]
		if !ok {
			return nil, fmt.Errorf("%w: destination %s is not in the trip", ErrTripValidation, id)
		}
		if used {
			return nil, fmt.Errorf("%w: destination %s listed twice", ErrTripValidation, id)
		}
		current[id] = true
	}

	if err := s.trips.ReorderItems(ctx, tripID, destinationIDs); err != nil {
		if isNotFound(err) {
			return nil, ErrTripItemNotFound
		}
		return nil, err
	}
	return s.reload(ctx, tripID)
}

// EstimateCost prices the trip's current destinations. A travelers override
// lets clients preview other group sizes without saving them.
func (s *TripService) EstimateCost(ctx context.Context, principal domain.Principal, tripID uuid.UUID, travelers *int) (*domain.TripCostEstimate, error) {
	trip, err := s.Get(ctx, principal, tripID)
	if err != nil {
		return nil, err
	}
	count := trip.Travelers
	if travelers != nil {
		if err := validateTravelers(*travelers); err != nil {
			return nil, err
		}
		count = *travelers
	}
	estimate := planner.Estimate(tripDestinations(trip.Items), count)
	return &estimate, nil
}

// EstimateDestinations prices an ad-hoc list. Every id counts once per
// occurrence; unknown or inactive ids fail the whole estimate.
func (s *TripService) EstimateDestinations(ctx context.Context, destinationIDs []uuid.UUID, travelers int) (*domain.TripCostEstimate, error) {
	if len(destinationIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one destination is required", ErrTripValidation)
	}
	if err := validateTravelers(travelers); err != nil {
		return nil, err
	}

	found, err := s.catalog.FindByIDs(ctx, destinationIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.Destination, len(found))
	for _, dest := range found {
		if dest.IsActive {
			byID[dest.ID] = dest
		}
	}

	dests := make([]domain.Destination, 0, len(destinationIDs))
	for _, id := range destinationIDs {
		dest, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrDestinationNotFound, id)
		}
		dests = append(dests, dest)
	}
	estimate := planner.Estimate(dests, travelers)
	return &estimate, nil
}

func (s *TripService) loadOwned(ctx context.Context, principal domain.Principal, tripID uuid.UUID) (*domain.Trip, error) {
	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	if trip.UserID != principal.UserID && !principal.IsAdmin {
		return nil, ErrForbidden
	}
	return trip, nil
}

func (s *TripService) reload(ctx context.Context, tripID uuid.UUID) (*domain.Trip, error) {
	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return s.withItems(ctx, trip)
}

func (s *TripService) withItems(ctx context.Context, trip *domain.Trip) (*domain.Trip, error) {
	items, err := s.trips.ListItems(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	trip.Items = items
	return trip, nil
}

func (s *TripService) ensureActiveDestination(ctx context.Context, destinationID uuid.UUID) error {
	found, err := s.catalog.FindByIDs(ctx, []uuid.UUID{destinationID})
	if err != nil {
		return err
	}
	if len(found) == 0 || !found[0].IsActive {
		return ErrDestinationNotFound
	}
	return nil
}

func tripDestinations(items []domain.TripItem) []domain.Destination {
	dests := make([]domain.Destination, 0, len(items))
	for _, item := range items {
		dests = append(dests, item.Destination())
	}
	return dests
}

func validateTripName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrTripValidation)
	}
	if len([]rune(name)) > maxTripNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrTripValidation, maxTripNameLength)
	}
	return nil
}

func validateTravelers(travelers int) error {
	if travelers < 1 || travelers > maxTravelers {
		return fmt.Errorf("%w: travelers must be between 1 and %d", ErrTripValidation, maxTravelers)
	}
	return nil
}
