package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/ports"
)

const destinationColumns = `
		d.id,
		d.slug,
		d.name,
		d.description,
		d.category_id,
		c.slug AS category_slug,
		c.name AS category_name,
		d.province_id,
		p.name AS province_name,
		d.price_min,
		d.price_max,
		d.price_currency,
		d.rating,
		d.review_count,
		d.duration,
		d.hero_image_url,
		d.is_active,
		d.is_featured,
		d.version,
		d.created_at,
		d.updated_at`

const destinationJoins = `
		LEFT JOIN category c ON c.id = d.category_id
		LEFT JOIN province p ON p.id = d.province_id`

type DestinationRepository struct {
	db *sqlx.DB
}

func NewDestinationRepo(db *sqlx.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

func (r *DestinationRepository) Create(ctx context.Context, dest *domain.Destination) (*domain.Destination, error) {
	query := `
		WITH d AS (
			INSERT INTO destination (
				slug, name, description, category_id, province_id,
				price_min, price_max, price_currency, duration,
				is_active, is_featured, version
			) VALUES (
				:slug, :name, :description, :category_id, :province_id,
				:price_min, :price_max, :price_currency, :duration,
				:is_active, :is_featured, 1
			)
			RETURNING *
		)
		SELECT ` + destinationColumns + `
		FROM d` + destinationJoins

	rows, err := r.db.NamedQueryContext(ctx, query, destinationArgs(dest))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.Destination
		if err := rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (r *DestinationRepository) Update(ctx context.Context, dest *domain.Destination, expectedVersion int) (*domain.Destination, error) {
	query := `
		WITH d AS (
			UPDATE destination
			SET slug = :slug,
			    name = :name,
			    description = :description,
			    category_id = :category_id,
			    province_id = :province_id,
			    price_min = :price_min,
			    price_max = :price_max,
			    price_currency = :price_currency,
			    duration = :duration,
			    is_active = :is_active,
			    is_featured = :is_featured,
			    version = version + 1,
			    updated_at = NOW()
			WHERE id = :id AND version = :expected_version
			RETURNING *
		)
		SELECT ` + destinationColumns + `
		FROM d` + destinationJoins

	args := destinationArgs(dest)
	args["id"] = dest.ID
	args["expected_version"] = expectedVersion

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.Destination
		if err := rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (r *DestinationRepository) SetHeroImage(ctx context.Context, id uuid.UUID, url string) (*domain.Destination, error) {
	query := `
		WITH d AS (
			UPDATE destination
			SET hero_image_url = $2, version = version + 1, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + destinationColumns + `
		FROM d` + destinationJoins

	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, id, url); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	return r.findOne(ctx, "d.id = $1", id)
}

func (r *DestinationRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	return r.findOne(ctx, "d.id = $1 AND d.is_active", id)
}

func (r *DestinationRepository) FindActiveBySlug(ctx context.Context, slug string) (*domain.Destination, error) {
	return r.findOne(ctx, "d.slug = $1 AND d.is_active", strings.ToLower(strings.TrimSpace(slug)))
}

func (r *DestinationRepository) findOne(ctx context.Context, where string, arg any) (*domain.Destination, error) {
	query := `SELECT ` + destinationColumns + `
		FROM destination d` + destinationJoins + `
		WHERE ` + where

	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, arg); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) FindActive(ctx context.Context, filter domain.CatalogFilter, limit int) ([]domain.Destination, error) {
	params := make([]any, 0, 3)
	var builder strings.Builder
	builder.WriteString(`SELECT ` + destinationColumns + `
		FROM destination d` + destinationJoins + `
		WHERE d.is_active`)

	if len(filter.CategoryIn) > 0 {
		params = append(params, pq.Array(filter.CategoryIn))
		fmt.Fprintf(&builder, "\n\t\tAND d.category_id = ANY($%d)", len(params))
	}
	if filter.PriceMinLte != nil {
		params = append(params, *filter.PriceMinLte)
		fmt.Fprintf(&builder, "\n\t\tAND d.price_min <= $%d", len(params))
	}

	params = append(params, limit)
	fmt.Fprintf(&builder, "\n\t\tORDER BY d.rating DESC, d.review_count DESC, d.name ASC\n\t\tLIMIT $%d", len(params))

	destinations := make([]domain.Destination, 0)
	if err := r.db.SelectContext(ctx, &destinations, builder.String(), params...); err != nil {
		return nil, err
	}
	return destinations, nil
}

func (r *DestinationRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Destination, error) {
	destinations := make([]domain.Destination, 0, len(ids))
	if len(ids) == 0 {
		return destinations, nil
	}
	query := `SELECT ` + destinationColumns + `
		FROM destination d` + destinationJoins + `
		WHERE d.id = ANY($1)`
	if err := r.db.SelectContext(ctx, &destinations, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	return destinations, nil
}

func (r *DestinationRepository) List(ctx context.Context, filter domain.DestinationListFilter) ([]domain.Destination, error) {
	where, params := buildDestinationListWhere(filter)

	var builder strings.Builder
	builder.WriteString(`SELECT ` + destinationColumns + `
		FROM destination d` + destinationJoins + `
		` + where)

	builder.WriteString("\n\t\tORDER BY ")
	switch filter.Sort {
	case domain.DestinationSortRating:
		builder.WriteString("d.rating DESC, d.review_count DESC, d.name ASC")
	case domain.DestinationSortName:
		builder.WriteString("d.name ASC")
	case domain.DestinationSortNewest:
		builder.WriteString("d.created_at DESC, d.id DESC")
	case domain.DestinationSortPriceLo:
		builder.WriteString("d.price_min ASC NULLS LAST, d.name ASC")
	case domain.DestinationSortPriceHi:
		builder.WriteString("d.price_max DESC NULLS LAST, d.name ASC")
	default:
		builder.WriteString("d.is_featured DESC, d.rating DESC, d.name ASC")
	}

	params = append(params, filter.Limit, filter.Offset)
	fmt.Fprintf(&builder, "\n\t\tLIMIT $%d OFFSET $%d", len(params)-1, len(params))

	destinations := make([]domain.Destination, 0)
	if err := r.db.SelectContext(ctx, &destinations, builder.String(), params...); err != nil {
		return nil, err
	}
	return destinations, nil
}

func (r *DestinationRepository) Count(ctx context.Context, filter domain.DestinationListFilter) (int64, error) {
	where, params := buildDestinationListWhere(filter)
	query := `SELECT COUNT(*)
		FROM destination d
		LEFT JOIN category c ON c.id = d.category_id
		` + where

	var count int64
	if err := r.db.GetContext(ctx, &count, query, params...); err != nil {
		return 0, err
	}
	return count, nil
}

func buildDestinationListWhere(filter domain.DestinationListFilter) (string, []any) {
	clauses := []string{"d.is_active"}
	params := make([]any, 0, 5)

	if search := strings.TrimSpace(filter.Search); search != "" {
		params = append(params, "%"+search+"%")
		clauses = append(clauses, fmt.Sprintf("(d.name ILIKE $%d OR d.description ILIKE $%d)", len(params), len(params)))
	}
	if len(filter.CategorySlugs) > 0 {
		params = append(params, pq.StringArray(filter.CategorySlugs))
		clauses = append(clauses, fmt.Sprintf("c.slug = ANY($%d)", len(params)))
	}
	if filter.ProvinceID != nil {
		params = append(params, *filter.ProvinceID)
		clauses = append(clauses, fmt.Sprintf("d.province_id = $%d", len(params)))
	}
	if filter.MinRating != nil {
		params = append(params, *filter.MinRating)
		clauses = append(clauses, fmt.Sprintf("d.rating >= $%d", len(params)))
	}
	if filter.FeaturedOnly {
		clauses = append(clauses, "d.is_featured")
	}
	return "WHERE " + strings.Join(clauses, " AND "), params
}

func destinationArgs(dest *domain.Destination) map[string]any {
	currency := strings.TrimSpace(dest.Currency)
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return map[string]any{
		"slug":           dest.Slug,
		"name":           strings.TrimSpace(dest.Name),
		"description":    nullString(dest.Description),
		"category_id":    nullUUID(dest.CategoryID),
		"province_id":    nullUUID(dest.ProvinceID),
		"price_min":      nullFloat(dest.PriceMin),
		"price_max":      nullFloat(dest.PriceMax),
		"price_currency": currency,
		"duration":       nullString(dest.Duration),
		"is_active":      dest.IsActive,
		"is_featured":    dest.IsFeatured,
	}
}

var (
	_ ports.DestinationRepository = (*DestinationRepository)(nil)
	_ ports.DestinationCatalog    = (*DestinationRepository)(nil)
)
