package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/ports"
)

var (
	ErrFavoriteAlreadyExists = errors.New("destination already saved to favorites")
	ErrFavoriteNotFound      = errors.New("favorite not found")
)

type FavoriteService struct {
	favorites    ports.FavoriteRepository
	destinations ports.DestinationRepository
}

type FavoriteListResult struct {
	Items  []domain.FavoriteListItem
	Total  int64
	Limit  int
	Offset int
}

func NewFavoriteService(favoriteRepo ports.FavoriteRepository, destinationRepo ports.DestinationRepository) *FavoriteService {
	return &FavoriteService{
		favorites:    favoriteRepo,
		destinations: destinationRepo,
	}
}

func (s *FavoriteService) Save(ctx context.Context, principal domain.Principal, destinationID uuid.UUID) (*domain.Favorite, error) {
	if _, err := s.destinations.FindActiveByID(ctx, destinationID); err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}

	favorite, err := s.favorites.Add(ctx, principal.UserID, destinationID)
	if err != nil {
		switch {
		case isNotFound(err), isUniqueViolation(err):
			return nil, ErrFavoriteAlreadyExists
		default:
			return nil, err
		}
	}
	return favorite, nil
}

func (s *FavoriteService) Remove(ctx context.Context, principal domain.Principal, destinationID uuid.UUID) error {
	if err := s.favorites.Remove(ctx, principal.UserID, destinationID); err != nil {
		if isNotFound(err) {
			return ErrFavoriteNotFound
		}
		return err
	}
	return nil
}

func (s *FavoriteService) List(ctx context.Context, principal domain.Principal, limit, offset int) (*FavoriteListResult, error) {
	nLimit, nOffset := normalizePagination(limit, offset)

	items, err := s.favorites.ListByUser(ctx, principal.UserID, nLimit, nOffset)
	if err != nil {
		return nil, err
	}

	total, err := s.favorites.CountByUser(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	return &FavoriteListResult{
		Items:  items,
		Total:  total,
		Limit:  nLimit,
		Offset: nOffset,
	}, nil
}

func (s *FavoriteService) Count(ctx context.Context, destinationID uuid.UUID) (int64, error) {
	if _, err := s.destinations.FindActiveByID(ctx, destinationID); err != nil {
		if isNotFound(err) {
			return 0, ErrDestinationNotFound
		}
		return 0, err
	}
	return s.favorites.CountByDestination(ctx, destinationID)
}
