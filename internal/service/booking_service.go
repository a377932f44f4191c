package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/planner"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/ports"
)

var (
	ErrBookingValidation     = errors.New("booking validation failed")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrBookingNotCancellable = errors.New("booking cannot be cancelled")
)

const notifyTimeout = 10 * time.Second

type BookingNotifier interface {
	SendBookingConfirmation(ctx context.Context, booking *domain.Booking, items []domain.TripItem) error
}

type BookingInput struct {
	Travelers    *int
	ContactEmail *string
	Notes        *string
}

type BookingListResult struct {
	Items  []domain.Booking
	Total  int64
	Limit  int
	Offset int
}

type BookingService struct {
	bookings ports.BookingRepository
	trips    ports.TripRepository
	notifier BookingNotifier
}

// NewBookingService accepts a nil notifier; confirmations are then skipped.
func NewBookingService(bookings ports.BookingRepository, trips ports.TripRepository, notifier BookingNotifier) *BookingService {
	return &BookingService{bookings: bookings, trips: trips, notifier: notifier}
}

// Confirm prices the trip as it stands now and records a confirmed booking.
// Mail delivery problems are logged and never fail the booking.
func (s *BookingService) Confirm(ctx context.Context, principal domain.Principal, tripID uuid.UUID, input BookingInput) (*domain.Booking, error) {
	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	if trip.UserID != principal.UserID {
		return nil, ErrForbidden
	}

	items, err := s.trips.ListItems(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: trip has no destinations", ErrBookingValidation)
	}

	travelers := trip.Travelers
	if input.Travelers != nil {
		travelers = *input.Travelers
	}
	if travelers < 1 || travelers > maxTravelers {
		return nil, fmt.Errorf("%w: travelers must be between 1 and %d", ErrBookingValidation, maxTravelers)
	}

	email := principal.Email
	if v := normalizeString(input.ContactEmail); v != nil {
		email = *v
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return nil, fmt.Errorf("%w: contact email is invalid", ErrBookingValidation)
	}

	dests := tripDestinations(items)
	booking, err := s.bookings.Create(ctx, &domain.Booking{
		UserID:       principal.UserID,
		TripID:       trip.ID,
		Travelers:    travelers,
		ContactEmail: strings.ToLower(addr.Address),
		Notes:        normalizeString(input.Notes),
		TotalCost:    planner.TripCost(dests, travelers),
		Currency:     planner.Currency(dests),
		Status:       domain.BookingStatusConfirmed,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, booking, items)
	return booking, nil
}

func (s *BookingService) List(ctx context.Context, principal domain.Principal, limit, offset int) (*BookingListResult, error) {
	limit, offset = normalizePagination(limit, offset)
	bookings, err := s.bookings.ListByUser(ctx, principal.UserID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.bookings.CountByUser(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return &BookingListResult{Items: bookings, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *BookingService) Get(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.UserID != principal.UserID && !principal.IsAdmin {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *BookingService) Cancel(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusConfirmed {
		return nil, ErrBookingNotCancellable
	}
	cancelled, err := s.bookings.Cancel(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookingNotCancellable
		}
		return nil, err
	}
	return cancelled, nil
}

func (s *BookingService) notify(ctx context.Context, booking *domain.Booking, items []domain.TripItem) {
	if s.notifier == nil {
		return
	}
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := s.notifier.SendBookingConfirmation(sendCtx, booking, items); err != nil {
		log.Printf("booking: confirmation mail for %s failed: %v", booking.ID, err)
	}
}
