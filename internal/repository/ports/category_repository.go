package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProvinceRepository interface {
	List(ctx context.Context) ([]domain.Province, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Province, error)
	Create(ctx context.Context, province *domain.Province) (*domain.Province, error)
}
