package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	Update(ctx context.Context, review *domain.Review) (*domain.Review, error)
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*domain.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListApprovedByDestination(ctx context.Context, destinationID uuid.UUID, limit, offset int) ([]domain.Review, error)
	CountApprovedByDestination(ctx context.Context, destinationID uuid.UUID) (int64, error)
	ListPending(ctx context.Context, limit, offset int) ([]domain.Review, error)
	CountPending(ctx context.Context) (int64, error)
	// RecordApprovedAggregate recomputes rating and review count from the
	// approved reviews and stores them on the destination in one step.
	RecordApprovedAggregate(ctx context.Context, destinationID uuid.UUID) (*domain.RatingAggregate, error)
}
