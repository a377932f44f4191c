package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/ports"
)

type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepo(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	const query = `
		SELECT id, name, slug, icon, description, created_at, updated_at
		FROM category
		ORDER BY name ASC
	`
	categories := make([]domain.Category, 0)
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	const query = `
		SELECT id, name, slug, icon, description, created_at, updated_at
		FROM category
		WHERE id = $1
	`
	var category domain.Category
	if err := r.db.GetContext(ctx, &category, query, id); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) FindBySlugs(ctx context.Context, slugs []string) ([]domain.Category, error) {
	categories := make([]domain.Category, 0, len(slugs))
	if len(slugs) == 0 {
		return categories, nil
	}
	const query = `
		SELECT id, name, slug, icon, description, created_at, updated_at
		FROM category
		WHERE slug = ANY($1)
		ORDER BY slug ASC
	`
	if err := r.db.SelectContext(ctx, &categories, query, pq.StringArray(slugs)); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	const query = `
		INSERT INTO category (name, slug, icon, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, slug, icon, description, created_at, updated_at
	`
	var stored domain.Category
	err := r.db.QueryRowxContext(ctx, query, category.Name, category.Slug, nullString(category.Icon), nullString(category.Description)).StructScan(&stored)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	const query = `
		UPDATE category
		SET name = $2, slug = $3, icon = $4, description = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, slug, icon, description, created_at, updated_at
	`
	var stored domain.Category
	err := r.db.QueryRowxContext(ctx, query, category.ID, category.Name, category.Slug, nullString(category.Icon), nullString(category.Description)).StructScan(&stored)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM category WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

type ProvinceRepository struct {
	db *sqlx.DB
}

func NewProvinceRepo(db *sqlx.DB) *ProvinceRepository {
	return &ProvinceRepository{db: db}
}

func (r *ProvinceRepository) List(ctx context.Context) ([]domain.Province, error) {
	const query = `
		SELECT id, name, slug, region, created_at
		FROM province
		ORDER BY name ASC
	`
	provinces := make([]domain.Province, 0)
	if err := r.db.SelectContext(ctx, &provinces, query); err != nil {
		return nil, err
	}
	return provinces, nil
}

func (r *ProvinceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Province, error) {
	var province domain.Province
	if err := r.db.GetContext(ctx, &province, `SELECT id, name, slug, region, created_at FROM province WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &province, nil
}

func (r *ProvinceRepository) Create(ctx context.Context, province *domain.Province) (*domain.Province, error) {
	const query = `
		INSERT INTO province (name, slug, region)
		VALUES ($1, $2, $3)
		RETURNING id, name, slug, region, created_at
	`
	var stored domain.Province
	if err := r.db.QueryRowxContext(ctx, query, province.Name, province.Slug, nullString(province.Region)).StructScan(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

var (
	_ ports.CategoryRepository = (*CategoryRepository)(nil)
	_ ports.ProvinceRepository = (*ProvinceRepository)(nil)
)
