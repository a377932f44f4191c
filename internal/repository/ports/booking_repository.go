package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Booking, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Cancel(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}
