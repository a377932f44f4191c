package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
)

type itineraryFixture struct {
	svc         *ItineraryService
	dests       *memoryDestinationRepo
	categories  *memoryCategoryRepo
	itineraries *memoryItineraryRepo
	trips       *memoryTripRepo
	beach       domain.Category
	mountain    domain.Category
}

func newItineraryFixture(dests ...domain.Destination) *itineraryFixture {
	f := &itineraryFixture{
		beach:    domain.Category{ID: uuid.New(), Slug: "bien-dao", Name: "Biển đảo"},
		mountain: domain.Category{ID: uuid.New(), Slug: "nui-rung", Name: "Núi rừng"},
	}
	f.categories = &memoryCategoryRepo{items: []domain.Category{f.beach, f.mountain}}
	f.dests = newMemoryDestinationRepo(dests...)
	f.itineraries = newMemoryItineraryRepo()
	f.trips = newMemoryTripRepo(f.dests)
	f.svc = NewItineraryService(f.dests, f.categories, f.itineraries, f.trips)
	return f
}

func catalogDestination(name string, category *uuid.UUID, rating, minPrice, maxPrice float64) domain.Destination {
	return domain.Destination{
		ID:         uuid.New(),
		Name:       name,
		Slug:       strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		CategoryID: category,
		PriceMin:   floatPtr(minPrice),
		PriceMax:   floatPtr(maxPrice),
		Currency:   "VND",
		Rating:     rating,
		IsActive:   true,
	}
}

func TestItineraryGenerateFiltersByCategoryAndBudget(t *testing.T) {
	f := newItineraryFixture()
	beachID := f.beach.ID

	nhaTrang := catalogDestination("Nha Trang", &beachID, 4.8, 500_000, 1_500_000)
	phuQuoc := catalogDestination("Phu Quoc", &beachID, 4.6, 800_000, 1_200_000)
	tooPricey := catalogDestination("Con Dao", &beachID, 4.9, 5_000_000, 9_000_000)
	mountain := catalogDestination("Sa Pa", &f.mountain.ID, 5.0, 100_000, 200_000)
	for _, d := range []domain.Destination{nhaTrang, phuQuoc, tooPricey, mountain} {
		dest := d
		f.dests.items[dest.ID] = &dest
	}

	req := domain.ItineraryRequest{Budget: 6_000_000, Days: 3, Travelers: 2, Preferences: []string{"Beach", "unknown"}}
	itinerary, err := f.svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if len(f.dests.findActiveFilters) != 1 {
		t.Fatalf("expected one catalog query, got %d", len(f.dests.findActiveFilters))
	}
	filter := f.dests.findActiveFilters[0]
	if len(filter.CategoryIn) != 1 || filter.CategoryIn[0] != beachID {
		t.Fatalf("expected beach category filter, got %+v", filter.CategoryIn)
	}
	// 6,000,000 / 3 days / 2 travelers * 1.5
	if filter.PriceMinLte == nil || *filter.PriceMinLte != 1_500_000 {
		t.Fatalf("unexpected price ceiling %v", filter.PriceMinLte)
	}
	if f.dests.findActiveLimits[0] != 6 {
		t.Fatalf("expected candidate limit 6, got %d", f.dests.findActiveLimits[0])
	}

	if len(itinerary.Items) != 3 {
		t.Fatalf("expected 3 days, got %d", len(itinerary.Items))
	}
	wantOrder := []uuid.UUID{nhaTrang.ID, phuQuoc.ID, nhaTrang.ID}
	for i, item := range itinerary.Items {
		if item.Day != i+1 {
			t.Fatalf("item %d has day %d", i, item.Day)
		}
		if item.DestinationID != wantOrder[i] {
			t.Fatalf("day %d: expected %s, got %s", i+1, wantOrder[i], item.DestinationID)
		}
	}
	// (1,000,000 + 1,000,000 + 1,000,000) * 2
	if itinerary.TotalEstimatedCost != 6_000_000 {
		t.Fatalf("unexpected total %v", itinerary.TotalEstimatedCost)
	}
	if !strings.Contains(itinerary.Title, "beach") {
		t.Fatalf("expected title to mention the preference, got %q", itinerary.Title)
	}
	if len(itinerary.Tips) == 0 {
		t.Fatal("expected tips")
	}
}

func TestItineraryGenerateWithoutPreferencesSearchesAllCategories(t *testing.T) {
	f := newItineraryFixture(catalogDestination("Hoi An", nil, 4.7, 100_000, 300_000))

	itinerary, err := f.svc.Generate(context.Background(), domain.ItineraryRequest{Budget: 1_000_000, Days: 1, Travelers: 1})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(f.dests.findActiveFilters[0].CategoryIn) != 0 {
		t.Fatalf("expected no category restriction, got %+v", f.dests.findActiveFilters[0].CategoryIn)
	}
	if itinerary.TotalEstimatedCost != 200_000 {
		t.Fatalf("unexpected total %v", itinerary.TotalEstimatedCost)
	}
}

func TestItineraryGenerateValidationHappensBeforeCatalog(t *testing.T) {
	f := newItineraryFixture()
	cases := []domain.ItineraryRequest{
		{Budget: 0, Days: 2, Travelers: 1},
		{Budget: 100, Days: 0, Travelers: 1},
		{Budget: 100, Days: 2, Travelers: 0},
		{Budget: 100, Days: 31, Travelers: 1},
		{Budget: 100, Days: 1 << 40, Travelers: 1},
	}
	for _, req := range cases {
		if _, err := f.svc.Generate(context.Background(), req); !errors.Is(err, ErrItineraryValidation) {
			t.Fatalf("expected ErrItineraryValidation for %+v, got %v", req, err)
		}
	}
	if len(f.dests.findActiveFilters) != 0 {
		t.Fatalf("catalog must not be queried for invalid input")
	}
}

func TestItineraryGenerateNoMatch(t *testing.T) {
	f := newItineraryFixture(catalogDestination("Expensive", nil, 4.0, 9_000_000, 10_000_000))

	_, err := f.svc.Generate(context.Background(), domain.ItineraryRequest{Budget: 100_000, Days: 2, Travelers: 1})
	if !errors.Is(err, ErrNoMatchingDestinations) {
		t.Fatalf("expected ErrNoMatchingDestinations, got %v", err)
	}
	if len(f.dests.findActiveFilters) != 1 {
		t.Fatalf("expected a single query without relaxation, got %d", len(f.dests.findActiveFilters))
	}
}

func TestItineraryGenerateUnmappedCategoryFallsBackToAll(t *testing.T) {
	f := newItineraryFixture(catalogDestination("Hoi An", nil, 4.7, 100_000, 300_000))

	it, err := f.svc.Generate(context.Background(), domain.ItineraryRequest{
		Budget: 1_000_000, Days: 1, Travelers: 1, Preferences: []string{"culture"},
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(it.Items) != 1 || it.Items[0].Destination.Name != "Hoi An" {
		t.Fatalf("expected a one-day itinerary from the full catalog, got %+v", it.Items)
	}
	if len(f.dests.findActiveFilters) != 1 {
		t.Fatalf("expected one catalog query, got %d", len(f.dests.findActiveFilters))
	}
	if got := f.dests.findActiveFilters[0].CategoryIn; len(got) != 0 {
		t.Fatalf("expected no category restriction, got %v", got)
	}
}

func TestItineraryGenerateCatalogFailure(t *testing.T) {
	f := newItineraryFixture()
	f.dests.findActiveErr = errors.New("connection reset")

	_, err := f.svc.Generate(context.Background(), domain.ItineraryRequest{Budget: 100_000, Days: 2, Travelers: 1})
	if !errors.Is(err, ErrItineraryUnavailable) {
		t.Fatalf("expected ErrItineraryUnavailable, got %v", err)
	}
}

func TestItineraryGenerateAndConvertToTrip(t *testing.T) {
	f := newItineraryFixture()
	first := catalogDestination("Da Lat", &f.mountain.ID, 4.9, 200_000, 400_000)
	second := catalogDestination("Mui Ne", &f.mountain.ID, 4.5, 300_000, 500_000)
	f.dests.items[first.ID] = &first
	f.dests.items[second.ID] = &second

	principal := domain.Principal{UserID: uuid.New(), Email: "traveler@example.com"}
	saved, err := f.svc.GenerateAndSave(context.Background(), principal, domain.ItineraryRequest{
		Budget: 3_000_000, Days: 4, Travelers: 1, Preferences: []string{"nature", "nature"},
	})
	if err != nil {
		t.Fatalf("GenerateAndSave returned error: %v", err)
	}
	if saved.UserID != principal.UserID || len(saved.Items) != 4 {
		t.Fatalf("unexpected saved itinerary %+v", saved)
	}
	if len(saved.Preferences) != 1 || saved.Preferences[0] != "nature" {
		t.Fatalf("expected de-duplicated preferences, got %v", saved.Preferences)
	}

	second.IsActive = false
	f.dests.items[second.ID] = &second

	trip, err := f.svc.ConvertToTrip(context.Background(), principal, saved.ID, nil)
	if err != nil {
		t.Fatalf("ConvertToTrip returned error: %v", err)
	}
	if trip.Name != saved.Title {
		t.Fatalf("expected trip name %q, got %q", saved.Title, trip.Name)
	}
	if len(trip.Items) != 1 || trip.Items[0].DestinationID != first.ID || trip.Items[0].OrderIndex != 0 {
		t.Fatalf("expected only the active destination once, got %+v", trip.Items)
	}
}

func TestItineraryConvertToTripRollsBackOnFailure(t *testing.T) {
	dest := catalogDestination("Hue", nil, 4.4, 100_000, 200_000)
	f := newItineraryFixture(dest)
	principal := domain.Principal{UserID: uuid.New()}

	saved, err := f.svc.GenerateAndSave(context.Background(), principal, domain.ItineraryRequest{Budget: 1_000_000, Days: 1, Travelers: 1})
	if err != nil {
		t.Fatalf("GenerateAndSave returned error: %v", err)
	}

	f.trips.addItemErr = errors.New("insert failed")
	if _, err := f.svc.ConvertToTrip(context.Background(), principal, saved.ID, stringPtr("My trip")); err == nil {
		t.Fatal("expected error when items cannot be added")
	}
	if len(f.trips.deleted) != 1 || len(f.trips.trips) != 0 {
		t.Fatalf("expected the partial trip to be deleted")
	}
}

func TestItineraryGetForbiddenForOtherUsers(t *testing.T) {
	dest := catalogDestination("Hue", nil, 4.4, 100_000, 200_000)
	f := newItineraryFixture(dest)
	owner := domain.Principal{UserID: uuid.New()}

	saved, err := f.svc.GenerateAndSave(context.Background(), owner, domain.ItineraryRequest{Budget: 1_000_000, Days: 1, Travelers: 1})
	if err != nil {
		t.Fatalf("GenerateAndSave returned error: %v", err)
	}

	if _, err := f.svc.Get(context.Background(), domain.Principal{UserID: uuid.New()}, saved.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.Get(context.Background(), domain.Principal{UserID: uuid.New(), IsAdmin: true}, saved.ID); err != nil {
		t.Fatalf("admin should read any itinerary, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), owner, saved.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), owner, saved.ID); !errors.Is(err, ErrItineraryNotFound) {
		t.Fatalf("expected ErrItineraryNotFound after delete, got %v", err)
	}
}

func TestItineraryValidateTagMapping(t *testing.T) {
	f := newItineraryFixture()
	if err := f.svc.ValidateTagMapping(context.Background()); err == nil {
		t.Fatal("expected missing categories to be reported")
	}

	f.categories.items = nil
	for _, slug := range []string{"bien-dao", "nui-rung", "van-hoa-lich-su", "thien-nhien", "thanh-pho"} {
		f.categories.items = append(f.categories.items, domain.Category{ID: uuid.New(), Slug: slug})
	}
	if err := f.svc.ValidateTagMapping(context.Background()); err != nil {
		t.Fatalf("expected complete mapping, got %v", err)
	}

	tags := f.svc.PreferenceTags()
	if len(tags) != 5 || tags[0].Tag != "beach" || tags[0].Categories[0] != "bien-dao" {
		t.Fatalf("unexpected preference tags %+v", tags)
	}
}
