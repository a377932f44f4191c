package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
)

type DestinationRepository interface {
	Create(ctx context.Context, dest *domain.Destination) (*domain.Destination, error)
	// Update returns sql.ErrNoRows when the stored version differs from expectedVersion.
	Update(ctx context.Context, dest *domain.Destination, expectedVersion int) (*domain.Destination, error)
	SetHeroImage(ctx context.Context, id uuid.UUID, url string) (*domain.Destination, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error)
	FindActiveBySlug(ctx context.Context, slug string) (*domain.Destination, error)
	List(ctx context.Context, filter domain.DestinationListFilter) ([]domain.Destination, error)
	Count(ctx context.Context, filter domain.DestinationListFilter) (int64, error)
}

// DestinationCatalog is the read side consumed by the itinerary generator and
// the trip cost aggregator.
type DestinationCatalog interface {
	// FindActive returns active destinations ordered by rating descending.
	FindActive(ctx context.Context, filter domain.CatalogFilter, limit int) ([]domain.Destination, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Destination, error)
}
