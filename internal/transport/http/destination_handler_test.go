package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
)

func newQueryContext(rawQuery string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/destinations?"+rawQuery, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestParseDestinationListFilter(t *testing.T) {
	provinceID := uuid.New()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/destinations", nil)
	q := req.URL.Query()
	q.Set("query", "  hoi an  ")
	q.Set("categories", "bien-dao, nui-rung ")
	q.Add("category", "van-hoa-lich-su")
	q.Set("province_id", provinceID.String())
	q.Set("min_rating", "3.5")
	q.Set("featured", "true")
	q.Set("sort", "alpha")
	req.URL.RawQuery = q.Encode()
	c := e.NewContext(req, httptest.NewRecorder())

	filter, err := parseDestinationListFilter(c)
	if err != nil {
		t.Fatalf("parseDestinationListFilter returned error: %v", err)
	}

	if filter.Search != "hoi an" {
		t.Fatalf("expected search 'hoi an', got %q", filter.Search)
	}

	expectedCategories := []string{"bien-dao", "nui-rung", "van-hoa-lich-su"}
	if len(filter.CategorySlugs) != len(expectedCategories) {
		t.Fatalf("expected %d categories, got %d", len(expectedCategories), len(filter.CategorySlugs))
	}
	for i, expected := range expectedCategories {
		if filter.CategorySlugs[i] != expected {
			t.Fatalf("expected category %q at position %d, got %q", expected, i, filter.CategorySlugs[i])
		}
	}

	if filter.ProvinceID == nil || *filter.ProvinceID != provinceID {
		t.Fatalf("expected province %s, got %v", provinceID, filter.ProvinceID)
	}
	if filter.MinRating == nil || *filter.MinRating != 3.5 {
		t.Fatalf("expected min rating 3.5, got %v", filter.MinRating)
	}
	if !filter.FeaturedOnly {
		t.Fatal("expected featured filter to be set")
	}
	if filter.Sort != domain.DestinationSortName {
		t.Fatalf("expected sort %q, got %q", domain.DestinationSortName, filter.Sort)
	}
}

func TestParseDestinationListFilterDefaults(t *testing.T) {
	filter, err := parseDestinationListFilter(newQueryContext(""))
	if err != nil {
		t.Fatalf("parseDestinationListFilter returned error: %v", err)
	}
	if filter.Sort != domain.DestinationSortRating {
		t.Fatalf("expected default sort %q, got %q", domain.DestinationSortRating, filter.Sort)
	}
	if filter.CategorySlugs != nil || filter.ProvinceID != nil || filter.MinRating != nil || filter.FeaturedOnly {
		t.Fatalf("expected empty filter, got %+v", filter)
	}
}

func TestParseDestinationListFilterSortAliases(t *testing.T) {
	cases := map[string]domain.DestinationSort{
		"top":        domain.DestinationSortRating,
		"recent":     domain.DestinationSortNewest,
		"price":      domain.DestinationSortPriceLo,
		"PRICE_DESC": domain.DestinationSortPriceHi,
	}
	for raw, want := range cases {
		filter, err := parseDestinationListFilter(newQueryContext("sort=" + raw))
		if err != nil {
			t.Fatalf("sort=%s returned error: %v", raw, err)
		}
		if filter.Sort != want {
			t.Fatalf("sort=%s: expected %q, got %q", raw, want, filter.Sort)
		}
	}
}

func TestParseDestinationListFilterRejectsInvalidValues(t *testing.T) {
	for _, rawQuery := range []string{
		"min_rating=6",
		"min_rating=abc",
		"province_id=not-a-uuid",
		"featured=maybe",
		"sort=distance",
	} {
		if _, err := parseDestinationListFilter(newQueryContext(rawQuery)); err == nil {
			t.Fatalf("expected error for %q, got nil", rawQuery)
		}
	}
}

func TestBuildDestinationResponseIncludesPriceRange(t *testing.T) {
	low, high := 100000.0, 250000.0
	dest := &domain.Destination{
		ID:       uuid.New(),
		Slug:     "vinh-ha-long",
		Name:     "Vịnh Hạ Long",
		PriceMin: &low,
		PriceMax: &high,
		Rating:   4.6,
		IsActive: true,
	}

	resp := buildDestinationResponse(dest)

	pr, ok := resp["price_range"].(*domain.PriceRange)
	if !ok || pr == nil {
		t.Fatalf("expected price range, got %#v", resp["price_range"])
	}
	if pr.Min != low || pr.Max != high {
		t.Fatalf("unexpected price range %+v", pr)
	}
	if resp["slug"] != "vinh-ha-long" {
		t.Fatalf("unexpected slug %v", resp["slug"])
	}
}
