package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultCurrency = "VND"

var ErrInvalidPriceRange = errors.New("invalid price range")

// PriceRange is the per-person cost span of a destination.
type PriceRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// Midpoint is the single-number cost estimate used for every trip total.
func (p PriceRange) Midpoint() float64 {
	return (p.Min + p.Max) / 2
}

func (p PriceRange) Validate() error {
	if p.Min < 0 || p.Max < 0 {
		return errors.Join(ErrInvalidPriceRange, errors.New("prices must be non-negative"))
	}
	if p.Min > p.Max {
		return errors.Join(ErrInvalidPriceRange, errors.New("min price cannot exceed max price"))
	}
	return nil
}

type Destination struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Slug         string     `db:"slug" json:"slug"`
	Name         string     `db:"name" json:"name"`
	Description  *string    `db:"description" json:"description,omitempty"`
	CategoryID   *uuid.UUID `db:"category_id" json:"category_id,omitempty"`
	CategorySlug *string    `db:"category_slug" json:"category_slug,omitempty"`
	CategoryName *string    `db:"category_name" json:"category_name,omitempty"`
	ProvinceID   *uuid.UUID `db:"province_id" json:"province_id,omitempty"`
	ProvinceName *string    `db:"province_name" json:"province_name,omitempty"`
	PriceMin     *float64   `db:"price_min" json:"-"`
	PriceMax     *float64   `db:"price_max" json:"-"`
	Currency     string     `db:"price_currency" json:"-"`
	Rating       float64    `db:"rating" json:"rating"`
	ReviewCount  int        `db:"review_count" json:"review_count"`
	Duration     *string    `db:"duration" json:"duration,omitempty"`
	HeroImage    *string    `db:"hero_image_url" json:"hero_image_url,omitempty"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	IsFeatured   bool       `db:"is_featured" json:"is_featured"`
	Version      int        `db:"version" json:"version"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// PriceRange returns nil when the destination has no complete price range.
func (d *Destination) PriceRange() *PriceRange {
	if d == nil || d.PriceMin == nil || d.PriceMax == nil {
		return nil
	}
	currency := strings.TrimSpace(d.Currency)
	if currency == "" {
		currency = DefaultCurrency
	}
	return &PriceRange{Min: *d.PriceMin, Max: *d.PriceMax, Currency: currency}
}

// CatalogFilter narrows the active catalog for itinerary candidates.
type CatalogFilter struct {
	CategoryIn  []uuid.UUID
	PriceMinLte *float64
}

type DestinationSort string

const (
	DestinationSortRating  DestinationSort = "rating"
	DestinationSortName    DestinationSort = "name"
	DestinationSortNewest  DestinationSort = "newest"
	DestinationSortPriceLo DestinationSort = "price_asc"
	DestinationSortPriceHi DestinationSort = "price_desc"
)

type DestinationListFilter struct {
	Search        string
	CategorySlugs []string
	ProvinceID    *uuid.UUID
	MinRating     *float64
	FeaturedOnly  bool
	Sort          DestinationSort
	Limit         int
	Offset        int
}

// DestinationInput carries admin-supplied fields. Nil pointers leave the
// stored value untouched on update.
type DestinationInput struct {
	Name        *string     `json:"name"`
	Slug        *string     `json:"slug"`
	Description *string     `json:"description"`
	CategoryID  *uuid.UUID  `json:"category_id"`
	ProvinceID  *uuid.UUID  `json:"province_id"`
	PriceRange  *PriceRange `json:"price_range"`
	Duration    *string     `json:"duration"`
	IsActive    *bool       `json:"is_active"`
	IsFeatured  *bool       `json:"is_featured"`
}
