package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/media"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/util"
)

var (
	ErrDestinationValidation      = errors.New("destination validation failed")
	ErrDestinationSlugExists      = errors.New("destination slug already exists")
	ErrDestinationVersionConflict = errors.New("destination was modified by another request")
	ErrHeroImageInvalid           = errors.New("invalid hero image")
	ErrStorageUnavailable         = errors.New("image storage is not configured")
)

const (
	maxDestinationNameLength = 200
	maxDurationLength        = 60
	maxSearchLength          = 100
)

type DestinationServiceConfig struct {
	Bucket        string
	ImageMaxBytes int64
}

type DestinationListResult struct {
	Items  []domain.Destination
	Total  int64
	Limit  int
	Offset int
}

type DestinationService struct {
	destinations ports.DestinationRepository
	categories   ports.CategoryRepository
	provinces    ports.ProvinceRepository
	storage      ports.ObjectStorage
	bucket       string
	maxImage     int64
}

// NewDestinationService accepts a nil storage; hero uploads then fail with ErrStorageUnavailable.
func NewDestinationService(destRepo ports.DestinationRepository, categoryRepo ports.CategoryRepository, provinceRepo ports.ProvinceRepository, storage ports.ObjectStorage, cfg DestinationServiceConfig) *DestinationService {
	return &DestinationService{
		destinations: destRepo,
		categories:   categoryRepo,
		provinces:    provinceRepo,
		storage:      storage,
		bucket:       cfg.Bucket,
		maxImage:     cfg.ImageMaxBytes,
	}
}

func (s *DestinationService) List(ctx context.Context, filter domain.DestinationListFilter) (*DestinationListResult, error) {
	filter.Limit, filter.Offset = normalizePagination(filter.Limit, filter.Offset)
	filter.Search = strings.TrimSpace(filter.Search)
	if len([]rune(filter.Search)) > maxSearchLength {
		return nil, fmt.Errorf("%w: search must be at most %d characters", ErrDestinationValidation, maxSearchLength)
	}
	if filter.MinRating != nil && (*filter.MinRating < 0 || *filter.MinRating > domain.MaxReviewRating) {
		return nil, fmt.Errorf("%w: min_rating must be between 0 and %d", ErrDestinationValidation, domain.MaxReviewRating)
	}
	switch filter.Sort {
	case "", domain.DestinationSortRating, domain.DestinationSortName, domain.DestinationSortNewest,
		domain.DestinationSortPriceLo, domain.DestinationSortPriceHi:
	default:
		return nil, fmt.Errorf("%w: unknown sort %q", ErrDestinationValidation, filter.Sort)
	}
	slugs := filter.CategorySlugs[:0:0]
	for _, slug := range filter.CategorySlugs {
		if slug = strings.ToLower(strings.TrimSpace(slug)); slug != "" {
			slugs = append(slugs, slug)
		}
	}
	filter.CategorySlugs = slugs

	items, err := s.destinations.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.destinations.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &DestinationListResult{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (s *DestinationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	dest, err := s.destinations.FindActiveByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return dest, nil
}

func (s *DestinationService) GetBySlug(ctx context.Context, slug string) (*domain.Destination, error) {
	dest, err := s.destinations.FindActiveBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return dest, nil
}

func (s *DestinationService) Create(ctx context.Context, principal domain.Principal, input domain.DestinationInput) (*domain.Destination, error) {
	if !principal.IsAdmin {
		return nil, ErrForbidden
	}
	if normalizeString(input.Name) == nil {
		return nil, fmt.Errorf("%w: name is required", ErrDestinationValidation)
	}

	dest := &domain.Destination{IsActive: true}
	if err := s.apply(ctx, dest, input); err != nil {
		return nil, err
	}
	stored, err := s.destinations.Create(ctx, dest)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDestinationSlugExists
		}
		return nil, err
	}
	return stored, nil
}

// Update applies the non-nil input fields. An expectedVersion of 0 uses the
// stored version, so only callers that send one get conflict detection.
func (s *DestinationService) Update(ctx context.Context, principal domain.Principal, id uuid.UUID, input domain.DestinationInput, expectedVersion int) (*domain.Destination, error) {
	if !principal.IsAdmin {
		return nil, ErrForbidden
	}
	dest, err := s.destinations.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	if expectedVersion == 0 {
		expectedVersion = dest.Version
	}
	if expectedVersion != dest.Version {
		return nil, ErrDestinationVersionConflict
	}
	if err := s.apply(ctx, dest, input); err != nil {
		return nil, err
	}

	updated, err := s.destinations.Update(ctx, dest, expectedVersion)
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, ErrDestinationVersionConflict
		case isUniqueViolation(err):
			return nil, ErrDestinationSlugExists
		default:
			return nil, err
		}
	}
	return updated, nil
}

// Deactivate hides the destination from the catalog and itinerary generation.
// Existing trips keep their items.
func (s *DestinationService) Deactivate(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.Destination, error) {
	inactive := false
	return s.Update(ctx, principal, id, domain.DestinationInput{IsActive: &inactive}, 0)
}

func (s *DestinationService) UploadHeroImage(ctx context.Context, principal domain.Principal, id uuid.UUID, upload media.Upload) (*domain.Destination, error) {
	if !principal.IsAdmin {
		return nil, ErrForbidden
	}
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}
	dest, err := s.destinations.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}

	img, err := media.Inspect(upload, s.maxImage, media.DefaultMaxDimension)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHeroImageInvalid, err)
	}

	objectName := fmt.Sprintf("destinations/%s/hero/%s%s", dest.ID.String(), uuid.NewString(), img.Extension)
	url, err := s.storage.Upload(ctx, s.bucket, objectName, img.ContentType, bytes.NewReader(img.Bytes), int64(len(img.Bytes)))
	if err != nil {
		return nil, err
	}

	updated, err := s.destinations.SetHeroImage(ctx, dest.ID, url)
	if err != nil {
		if rmErr := s.storage.Remove(ctx, s.bucket, objectName); rmErr != nil {
			log.Printf("destination: remove orphaned hero image %s: %v", objectName, rmErr)
		}
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *DestinationService) apply(ctx context.Context, dest *domain.Destination, input domain.DestinationInput) error {
	if v := normalizeString(input.Name); v != nil {
		if len([]rune(*v)) > maxDestinationNameLength {
			return fmt.Errorf("%w: name must be at most %d characters", ErrDestinationValidation, maxDestinationNameLength)
		}
		dest.Name = *v
	}

	switch {
	case input.Slug != nil:
		slug := strings.ToLower(strings.TrimSpace(*input.Slug))
		if !util.ValidSlug(slug) {
			return fmt.Errorf("%w: slug must contain only lowercase letters, digits and hyphens", ErrDestinationValidation)
		}
		dest.Slug = slug
	case dest.Slug == "":
		dest.Slug = util.Slugify(dest.Name)
		if !util.ValidSlug(dest.Slug) {
			return fmt.Errorf("%w: cannot derive slug from name", ErrDestinationValidation)
		}
	}

	if input.Description != nil {
		dest.Description = normalizeString(input.Description)
	}
	if input.Duration != nil {
		duration := normalizeString(input.Duration)
		if duration != nil && len([]rune(*duration)) > maxDurationLength {
			return fmt.Errorf("%w: duration must be at most %d characters", ErrDestinationValidation, maxDurationLength)
		}
		dest.Duration = duration
	}

	if input.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *input.CategoryID); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("%w: unknown category", ErrDestinationValidation)
			}
			return err
		}
		id := *input.CategoryID
		dest.CategoryID = &id
	}
	if input.ProvinceID != nil {
		if _, err := s.provinces.FindByID(ctx, *input.ProvinceID); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("%w: unknown province", ErrDestinationValidation)
			}
			return err
		}
		id := *input.ProvinceID
		dest.ProvinceID = &id
	}

	if input.PriceRange != nil {
		if err := input.PriceRange.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrDestinationValidation, err)
		}
		minPrice, maxPrice := input.PriceRange.Min, input.PriceRange.Max
		dest.PriceMin = &minPrice
		dest.PriceMax = &maxPrice
		dest.Currency = strings.ToUpper(strings.TrimSpace(input.PriceRange.Currency))
		if dest.Currency == "" {
			dest.Currency = domain.DefaultCurrency
		}
	}

	if input.IsActive != nil {
		dest.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		dest.IsFeatured = *input.IsFeatured
	}
	return nil
}
