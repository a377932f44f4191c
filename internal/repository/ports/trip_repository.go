package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
)

type TripRepository interface {
	Create(ctx context.Context, trip *domain.Trip) (*domain.Trip, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Trip, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	// Update returns sql.ErrNoRows when the stored version differs from expectedVersion.
	Update(ctx context.Context, trip *domain.Trip, expectedVersion int) (*domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListItems(ctx context.Context, tripID uuid.UUID) ([]domain.TripItem, error)
	AddItem(ctx context.Context, item *domain.TripItem) (*domain.TripItem, error)
	RemoveItem(ctx context.Context, tripID, destinationID uuid.UUID) error
	UpdateItem(ctx context.Context, tripID, destinationID uuid.UUID, notes *string, plannedDate *time.Time) (*domain.TripItem, error)
	// ReorderItems rewrites order indexes to match the position in destinationIDs.
	ReorderItems(ctx context.Context, tripID uuid.UUID, destinationIDs []uuid.UUID) error
}
