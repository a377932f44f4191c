package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/util"
)

var (
	ErrCategoryValidation = errors.New("category validation failed")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryExists     = errors.New("category slug already exists")
	ErrCategoryInUse      = errors.New("category is still used by destinations")
	ErrProvinceExists     = errors.New("province already exists")
)

type CategoryInput struct {
	Name        *string
	Slug        *string
	Icon        *string
	Description *string
}

type ProvinceInput struct {
	Name   string
	Region *string
}

type CategoryService struct {
	categories ports.CategoryRepository
	provinces  ports.ProvinceRepository
}

func NewCategoryService(categories ports.CategoryRepository, provinces ports.ProvinceRepository) *CategoryService {
	return &CategoryService{categories: categories, provinces: provinces}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) ListProvinces(ctx context.Context) ([]domain.Province, error) {
	return s.provinces.List(ctx)
}

func (s *CategoryService) CreateCategory(ctx context.Context, principal domain.Principal, input CategoryInput) (*domain.Category, error) {
	if !principal.IsAdmin {
		return nil, ErrForbidden
	}
	name := normalizeString(input.Name)
	if name == nil {
		return nil, fmt.Errorf("%w: name is required", ErrCategoryValidation)
	}
	category := &domain.Category{Name: *name}
	if err := applyCategoryInput(category, input); err != nil {
		return nil, err
	}

	stored, err := s.categories.Create(ctx, category)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return stored, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, principal domain.Principal, id uuid.UUID, input CategoryInput) (*domain.Category, error) {
	if !principal.IsAdmin {
		return nil, ErrForbidden
	}
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if name := normalizeString(input.Name); name != nil {
		category.Name = *name
	}
	if err := applyCategoryInput(category, input); err != nil {
		return nil, err
	}

	updated, err := s.categories.Update(ctx, category)
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, ErrCategoryNotFound
		case isUniqueViolation(err):
			return nil, ErrCategoryExists
		default:
			return nil, err
		}
	}
	return updated, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, principal domain.Principal, id uuid.UUID) error {
	if !principal.IsAdmin {
		return ErrForbidden
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		switch {
		case isNotFound(err):
			return ErrCategoryNotFound
		case isForeignKeyViolation(err):
			return ErrCategoryInUse
		default:
			return err
		}
	}
	return nil
}

func (s *CategoryService) CreateProvince(ctx context.Context, principal domain.Principal, input ProvinceInput) (*domain.Province, error) {
	if !principal.IsAdmin {
		return nil, ErrForbidden
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: province name is required", ErrCategoryValidation)
	}
	slug := util.Slugify(name)
	if !util.ValidSlug(slug) {
		return nil, fmt.Errorf("%w: cannot derive slug from province name", ErrCategoryValidation)
	}

	province, err := s.provinces.Create(ctx, &domain.Province{
		Name:   name,
		Slug:   slug,
		Region: normalizeString(input.Region),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrProvinceExists
		}
		return nil, err
	}
	return province, nil
}

func applyCategoryInput(category *domain.Category, input CategoryInput) error {
	switch {
	case input.Slug != nil:
		slug := strings.ToLower(strings.TrimSpace(*input.Slug))
		if !util.ValidSlug(slug) {
			return fmt.Errorf("%w: slug must contain only lowercase letters, digits and hyphens", ErrCategoryValidation)
		}
		category.Slug = slug
	case category.Slug == "":
		category.Slug = util.Slugify(category.Name)
		if !util.ValidSlug(category.Slug) {
			return fmt.Errorf("%w: cannot derive slug from name", ErrCategoryValidation)
		}
	}
	if input.Icon != nil {
		category.Icon = normalizeString(input.Icon)
	}
	if input.Description != nil {
		category.Description = normalizeString(input.Description)
	}
	return nil
}
