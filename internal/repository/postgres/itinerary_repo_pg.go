package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/ports"
)

const itineraryColumns = `id, user_id, title, budget, days, travelers, preferences, items, total_estimated_cost, currency, created_at`

type ItineraryRepository struct {
	db *sqlx.DB
}

func NewItineraryRepo(db *sqlx.DB) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

func (r *ItineraryRepository) Create(ctx context.Context, itinerary *domain.SavedItinerary) (*domain.SavedItinerary, error) {
	query := `
		INSERT INTO itinerary (user_id, title, budget, days, travelers, preferences, items, total_estimated_cost, currency)
		VALUES (:user_id, :title, :budget, :days, :travelers, :preferences, :items, :total_estimated_cost, :currency)
		RETURNING ` + itineraryColumns

	rows, err := r.db.NamedQueryContext(ctx, query, itinerary)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.SavedItinerary
		if err := rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (r *ItineraryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.SavedItinerary, error) {
	var itinerary domain.SavedItinerary
	if err := r.db.GetContext(ctx, &itinerary, `SELECT `+itineraryColumns+` FROM itinerary WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &itinerary, nil
}

func (r *ItineraryRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.SavedItinerary, error) {
	query := `SELECT ` + itineraryColumns + `
		FROM itinerary
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	itineraries := make([]domain.SavedItinerary, 0)
	if err := r.db.SelectContext(ctx, &itineraries, query, userID, limit, offset); err != nil {
		return nil, err
	}
	return itineraries, nil
}

func (r *ItineraryRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM itinerary WHERE user_id = $1`, userID)
	return count, err
}

func (r *ItineraryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM itinerary WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

var _ ports.ItineraryRepository = (*ItineraryRepository)(nil)
