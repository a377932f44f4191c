package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/ports"
)

type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add returns sql.ErrNoRows when the pair already exists.
func (r *FavoriteRepository) Add(ctx context.Context, userID, destinationID uuid.UUID) (*domain.Favorite, error) {
	const query = `
		INSERT INTO favorite (user_id, destination_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, destination_id) DO NOTHING
		RETURNING id, user_id, destination_id, created_at
	`
	var favorite domain.Favorite
	if err := r.db.GetContext(ctx, &favorite, query, userID, destinationID); err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, destinationID uuid.UUID) error {
	const query = `
		DELETE FROM favorite
		WHERE user_id = $1 AND destination_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, userID, destinationID)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.FavoriteListItem, error) {
	const query = `
		SELECT
			f.id,
			f.user_id,
			f.destination_id,
			f.created_at,
			d.name AS destination_name,
			d.slug AS destination_slug,
			p.name AS province_name,
			c.slug AS category_slug,
			d.rating,
			d.hero_image_url
		FROM favorite f
		JOIN destination d ON d.id = f.destination_id
		LEFT JOIN province p ON p.id = d.province_id
		LEFT JOIN category c ON c.id = d.category_id
		WHERE f.user_id = $1 AND d.is_active
		ORDER BY f.created_at DESC, f.id DESC
		LIMIT $2 OFFSET $3
	`
	items := make([]domain.FavoriteListItem, 0)
	if err := r.db.SelectContext(ctx, &items, query, userID, limit, offset); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *FavoriteRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM favorite f
		JOIN destination d ON d.id = f.destination_id
		WHERE f.user_id = $1 AND d.is_active
	`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *FavoriteRepository) CountByDestination(ctx context.Context, destinationID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM favorite WHERE destination_id = $1`, destinationID); err != nil {
		return 0, err
	}
	return count, nil
}

var _ ports.FavoriteRepository = (*FavoriteRepository)(nil)
