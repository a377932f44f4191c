package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/planner"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/ports"
)

var (
	ErrItineraryValidation    = planner.ErrInvalidRequest
	ErrNoMatchingDestinations = planner.ErrNoCandidates
	ErrItineraryUnavailable   = errors.New("unable to generate itinerary, please try again")
	ErrItineraryNotFound      = errors.New("itinerary not found")
)

// PreferenceTag describes one accepted preference and the categories it covers.
type PreferenceTag struct {
	Tag        string   `json:"tag"`
	Categories []string `json:"categories"`
}

type ItineraryListResult struct {
	Items  []domain.SavedItinerary
	Total  int64
	Limit  int
	Offset int
}

type ItineraryService struct {
	catalog     ports.DestinationCatalog
	categories  ports.CategoryRepository
	itineraries ports.ItineraryRepository
	trips       ports.TripRepository
}

func NewItineraryService(catalog ports.DestinationCatalog, categories ports.CategoryRepository, itineraries ports.ItineraryRepository, trips ports.TripRepository) *ItineraryService {
	return &ItineraryService{
		catalog:     catalog,
		categories:  categories,
		itineraries: itineraries,
		trips:       trips,
	}
}

// Generate filters the active catalog by preference categories and budget,
// then spreads the best-rated matches over the requested days.
func (s *ItineraryService) Generate(ctx context.Context, req domain.ItineraryRequest) (*domain.Itinerary, error) {
	if err := planner.Validate(req); err != nil {
		return nil, err
	}

	tags := planner.ParseTags(req.Preferences)
	filter := domain.CatalogFilter{}
	ceiling := planner.PriceCeiling(req)
	filter.PriceMinLte = &ceiling

	if slugs := planner.CategorySlugs(tags); len(slugs) > 0 {
		categories, err := s.categories.FindBySlugs(ctx, slugs)
		if err != nil {
			log.Printf("itinerary: resolve categories %v: %v", slugs, err)
			return nil, ErrItineraryUnavailable
		}
		for _, category := range categories {
			filter.CategoryIn = append(filter.CategoryIn, category.ID)
		}
		if len(filter.CategoryIn) == 0 {
			log.Printf("itinerary: no catalog categories for slugs %v, searching all categories", slugs)
		}
	}

	candidates, err := s.catalog.FindActive(ctx, filter, planner.CandidateLimit(req.Days))
	if err != nil {
		log.Printf("itinerary: catalog query failed: %v", err)
		return nil, ErrItineraryUnavailable
	}

	return planner.Build(req, tags, candidates)
}

// GenerateAndSave regenerates the itinerary server side and stores it for the caller.
func (s *ItineraryService) GenerateAndSave(ctx context.Context, principal domain.Principal, req domain.ItineraryRequest) (*domain.SavedItinerary, error) {
	if principal.UserID == uuid.Nil {
		return nil, ErrForbidden
	}
	itinerary, err := s.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	preferences := make([]string, 0, len(req.Preferences))
	for _, tag := range planner.ParseTags(req.Preferences) {
		preferences = append(preferences, string(tag))
	}

	return s.itineraries.Create(ctx, &domain.SavedItinerary{
		UserID:             principal.UserID,
		Title:              itinerary.Title,
		Budget:             req.Budget,
		Days:               req.Days,
		Travelers:          req.Travelers,
		Preferences:        preferences,
		Items:              domain.ItineraryItems(itinerary.Items),
		TotalEstimatedCost: itinerary.TotalEstimatedCost,
		Currency:           itinerary.Currency,
	})
}

func (s *ItineraryService) List(ctx context.Context, principal domain.Principal, limit, offset int) (*ItineraryListResult, error) {
	limit, offset = normalizePagination(limit, offset)
	items, err := s.itineraries.ListByUser(ctx, principal.UserID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.itineraries.CountByUser(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return &ItineraryListResult{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *ItineraryService) Get(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.SavedItinerary, error) {
	itinerary, err := s.itineraries.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrItineraryNotFound
		}
		return nil, err
	}
	if itinerary.UserID != principal.UserID && !principal.IsAdmin {
		return nil, ErrForbidden
	}
	return itinerary, nil
}

func (s *ItineraryService) Delete(ctx context.Context, principal domain.Principal, id uuid.UUID) error {
	if _, err := s.Get(ctx, principal, id); err != nil {
		return err
	}
	if err := s.itineraries.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrItineraryNotFound
		}
		return err
	}
	return nil
}

// ConvertToTrip turns a saved itinerary into an editable trip. Repeated days
// collapse onto one trip item; destinations that were since deactivated are skipped.
func (s *ItineraryService) ConvertToTrip(ctx context.Context, principal domain.Principal, id uuid.UUID, name *string) (*domain.Trip, error) {
	itinerary, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	ordered := make([]uuid.UUID, 0, len(itinerary.Items))
	seen := make(map[uuid.UUID]struct{}, len(itinerary.Items))
	for _, item := range itinerary.Items {
		if _, ok := seen[item.DestinationID]; ok {
			continue
		}
		seen[item.DestinationID] = struct{}{}
		ordered = append(ordered, item.DestinationID)
	}

	found, err := s.catalog.FindByIDs(ctx, ordered)
	if err != nil {
		return nil, err
	}
	active := make(map[uuid.UUID]struct{}, len(found))
	for _, dest := range found {
		if dest.IsActive {
			active[dest.ID] = struct{}{}
		}
	}

	tripName := itinerary.Title
	if trimmed := normalizeString(name); trimmed != nil {
		tripName = *trimmed
	}
	description := fmt.Sprintf("Created from itinerary %q", itinerary.Title)

	trip, err := s.trips.Create(ctx, &domain.Trip{
		UserID:      principal.UserID,
		Name:        tripName,
		Description: &description,
		Status:      domain.TripStatusPlanning,
		Travelers:   itinerary.Travelers,
	})
	if err != nil {
		return nil, err
	}

	items := make([]domain.TripItem, 0, len(ordered))
	for _, destID := range ordered {
		if _, ok := active[destID]; !ok {
			continue
		}
		stored, err := s.trips.AddItem(ctx, &domain.TripItem{
			TripID:        trip.ID,
			DestinationID: destID,
			OrderIndex:    len(items),
		})
		if err != nil {
			if delErr := s.trips.Delete(ctx, trip.ID); delErr != nil {
				log.Printf("itinerary: cleanup trip %s after failed conversion: %v", trip.ID, delErr)
			}
			return nil, err
		}
		items = append(items, *stored)
	}

	refreshed, err := s.trips.FindByID(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	refreshed.Items = items
	return refreshed, nil
}

// PreferenceTags lists the accepted preference tags.
func (s *ItineraryService) PreferenceTags() []PreferenceTag {
	tags := planner.Tags()
	out := make([]PreferenceTag, 0, len(tags))
	for _, tag := range tags {
		out = append(out, PreferenceTag{Tag: string(tag), Categories: planner.CategorySlugsFor(tag)})
	}
	return out
}

// ValidateTagMapping reports mapped category slugs that are missing from the catalog.
func (s *ItineraryService) ValidateTagMapping(ctx context.Context) error {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return err
	}
	known := make([]string, 0, len(categories))
	for _, category := range categories {
		known = append(known, category.Slug)
	}
	return planner.ValidateTagMapping(known)
}
