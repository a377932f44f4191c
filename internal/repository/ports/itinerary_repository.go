package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
)

type ItineraryRepository interface {
	Create(ctx context.Context, itinerary *domain.SavedItinerary) (*domain.SavedItinerary, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.SavedItinerary, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.SavedItinerary, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
