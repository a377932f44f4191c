package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/ports"
)

const reviewSelect = `
		SELECT
			r.id,
			r.user_id,
			r.destination_id,
			r.rating,
			r.title,
			r.comment,
			r.is_approved,
			r.created_at,
			r.updated_at,
			u.full_name AS reviewer_name,
			u.email AS reviewer_email
		FROM review r
		JOIN user_account u ON u.id = r.user_id`

type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepo(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	const query = `
		INSERT INTO review (user_id, destination_id, rating, title, comment, is_approved)
		VALUES (:user_id, :destination_id, :rating, :title, :comment, :is_approved)
		RETURNING id, user_id, destination_id, rating, title, comment, is_approved, created_at, updated_at
	`
	args := map[string]any{
		"user_id":        review.UserID,
		"destination_id": review.DestinationID,
		"rating":         review.Rating,
		"title":          nullString(review.Title),
		"comment":        nullString(review.Comment),
		"is_approved":    review.IsApproved,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.Review
		if err := rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	var review domain.Review
	if err := r.db.GetContext(ctx, &review, reviewSelect+"\n\t\tWHERE r.id = $1", id); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	const query = `
		UPDATE review
		SET rating = $2, title = $3, comment = $4, is_approved = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, destination_id, rating, title, comment, is_approved, created_at, updated_at
	`
	var stored domain.Review
	err := r.db.QueryRowxContext(ctx, query,
		review.ID, review.Rating, nullString(review.Title), nullString(review.Comment), review.IsApproved,
	).StructScan(&stored)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *ReviewRepository) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*domain.Review, error) {
	const query = `
		UPDATE review
		SET is_approved = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, destination_id, rating, title, comment, is_approved, created_at, updated_at
	`
	var stored domain.Review
	if err := r.db.QueryRowxContext(ctx, query, id, approved).StructScan(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM review WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (r *ReviewRepository) ListApprovedByDestination(ctx context.Context, destinationID uuid.UUID, limit, offset int) ([]domain.Review, error) {
	query := reviewSelect + `
		WHERE r.destination_id = $1 AND r.is_approved
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2 OFFSET $3`
	reviews := make([]domain.Review, 0)
	if err := r.db.SelectContext(ctx, &reviews, query, destinationID, limit, offset); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) CountApprovedByDestination(ctx context.Context, destinationID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM review WHERE destination_id = $1 AND is_approved`, destinationID)
	return count, err
}

func (r *ReviewRepository) ListPending(ctx context.Context, limit, offset int) ([]domain.Review, error) {
	query := reviewSelect + `
		WHERE NOT r.is_approved
		ORDER BY r.created_at ASC, r.id ASC
		LIMIT $1 OFFSET $2`
	reviews := make([]domain.Review, 0)
	if err := r.db.SelectContext(ctx, &reviews, query, limit, offset); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM review WHERE NOT is_approved`)
	return count, err
}

// RecordApprovedAggregate locks the destination row before aggregating so two
// concurrent review mutations cannot overwrite each other's result.
func (r *ReviewRepository) RecordApprovedAggregate(ctx context.Context, destinationID uuid.UUID) (*domain.RatingAggregate, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var locked uuid.UUID
	if err := tx.GetContext(ctx, &locked, `SELECT id FROM destination WHERE id = $1 FOR UPDATE`, destinationID); err != nil {
		return nil, err
	}

	const query = `
		UPDATE destination d
		SET rating = agg.rating,
		    review_count = agg.review_count,
		    updated_at = NOW()
		FROM (
			SELECT
				COALESCE(ROUND(AVG(rating)::numeric, 1), 0)::float8 AS rating,
				COUNT(*)::int AS review_count
			FROM review
			WHERE destination_id = $1 AND is_approved
		) agg
		WHERE d.id = $1
		RETURNING d.id AS destination_id, d.rating, d.review_count
	`
	var aggregate domain.RatingAggregate
	if err := tx.GetContext(ctx, &aggregate, query, destinationID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &aggregate, nil
}

var _ ports.ReviewRepository = (*ReviewRepository)(nil)
