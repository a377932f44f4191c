package service

import (
	"context"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/ports"
)

const dashboardTopRated = 5

type DashboardService struct {
	stats        ports.StatsRepository
	destinations ports.DestinationRepository
}

func NewDashboardService(stats ports.StatsRepository, destinations ports.DestinationRepository) *DashboardService {
	return &DashboardService{stats: stats, destinations: destinations}
}

func (s *DashboardService) Stats(ctx context.Context, principal domain.Principal) (*domain.DashboardStats, error) {
	if !principal.IsAdmin {
		return nil, ErrForbidden
	}
	stats, err := s.stats.DashboardCounts(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.destinations.List(ctx, domain.DestinationListFilter{
		Sort:  domain.DestinationSortRating,
		Limit: dashboardTopRated,
	})
	if err != nil {
		return nil, err
	}
	stats.TopRated = top
	return stats, nil
}
