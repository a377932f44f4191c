package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/ports"
)

const tripColumns = `id, user_id, name, description, status, travelers, start_date, version, created_at, updated_at`

const tripItemSelect = `
		SELECT
			i.id,
			i.trip_id,
			i.destination_id,
			i.order_index,
			i.notes,
			i.planned_date,
			i.created_at,
			d.name AS destination_name,
			d.slug AS destination_slug,
			d.price_min,
			d.price_max,
			d.price_currency,
			d.duration
		FROM trip_item i
		JOIN destination d ON d.id = i.destination_id`

type TripRepository struct {
	db *sqlx.DB
}

func NewTripRepo(db *sqlx.DB) *TripRepository {
	return &TripRepository{db: db}
}

func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) (*domain.Trip, error) {
	query := `
		INSERT INTO trip (user_id, name, description, status, travelers, start_date, version)
		VALUES ($1, $2, $3, $4, $5, $6, 1)
		RETURNING ` + tripColumns
	var stored domain.Trip
	err := r.db.QueryRowxContext(ctx, query,
		trip.UserID, trip.Name, nullString(trip.Description), trip.Status, trip.Travelers, nullTime(trip.StartDate),
	).StructScan(&stored)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *TripRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	var trip domain.Trip
	if err := r.db.GetContext(ctx, &trip, `SELECT `+tripColumns+` FROM trip WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Trip, error) {
	query := `SELECT ` + tripColumns + `
		FROM trip
		WHERE user_id = $1
		ORDER BY updated_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	trips := make([]domain.Trip, 0)
	if err := r.db.SelectContext(ctx, &trips, query, userID, limit, offset); err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *TripRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM trip WHERE user_id = $1`, userID)
	return count, err
}

func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip, expectedVersion int) (*domain.Trip, error) {
	query := `
		UPDATE trip
		SET name = $2,
		    description = $3,
		    status = $4,
		    travelers = $5,
		    start_date = $6,
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $1 AND version = $7
		RETURNING ` + tripColumns
	var stored domain.Trip
	err := r.db.QueryRowxContext(ctx, query,
		trip.ID, trip.Name, nullString(trip.Description), trip.Status, trip.Travelers, nullTime(trip.StartDate), expectedVersion,
	).StructScan(&stored)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *TripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trip WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (r *TripRepository) ListItems(ctx context.Context, tripID uuid.UUID) ([]domain.TripItem, error) {
	query := tripItemSelect + `
		WHERE i.trip_id = $1
		ORDER BY i.order_index ASC, i.created_at ASC`
	items := make([]domain.TripItem, 0)
	if err := r.db.SelectContext(ctx, &items, query, tripID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *TripRepository) AddItem(ctx context.Context, item *domain.TripItem) (*domain.TripItem, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var id uuid.UUID
	const insert = `
		INSERT INTO trip_item (trip_id, destination_id, order_index, notes, planned_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := tx.GetContext(ctx, &id, insert,
		item.TripID, item.DestinationID, item.OrderIndex, nullString(item.Notes), nullTime(item.PlannedDate),
	); err != nil {
		return nil, err
	}
	if err := touchTrip(ctx, tx, item.TripID); err != nil {
		return nil, err
	}

	var stored domain.TripItem
	if err := tx.GetContext(ctx, &stored, tripItemSelect+"\n\t\tWHERE i.id = $1", id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *TripRepository) RemoveItem(ctx context.Context, tripID, destinationID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM trip_item WHERE trip_id = $1 AND destination_id = $2`, tripID, destinationID)
	if err != nil {
		return err
	}
	if err := expectAffected(result); err != nil {
		return err
	}
	if err := touchTrip(ctx, tx, tripID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *TripRepository) UpdateItem(ctx context.Context, tripID, destinationID uuid.UUID, notes *string, plannedDate *time.Time) (*domain.TripItem, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var id uuid.UUID
	const update = `
		UPDATE trip_item
		SET notes = $3, planned_date = $4
		WHERE trip_id = $1 AND destination_id = $2
		RETURNING id
	`
	if err := tx.GetContext(ctx, &id, update, tripID, destinationID, nullString(notes), nullTime(plannedDate)); err != nil {
		return nil, err
	}
	if err := touchTrip(ctx, tx, tripID); err != nil {
		return nil, err
	}

	var stored domain.TripItem
	if err := tx.GetContext(ctx, &stored, tripItemSelect+"\n\t\tWHERE i.id = $1", id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *TripRepository) ReorderItems(ctx context.Context, tripID uuid.UUID, destinationIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const update = `UPDATE trip_item SET order_index = $3 WHERE trip_id = $1 AND destination_id = $2`
	for idx, destinationID := range destinationIDs {
		result, err := tx.ExecContext(ctx, update, tripID, destinationID, idx)
		if err != nil {
			return err
		}
		if err := expectAffected(result); err != nil {
			return err
		}
	}
	if err := touchTrip(ctx, tx, tripID); err != nil {
		return err
	}
	return tx.Commit()
}

// touchTrip bumps the trip version so item edits invalidate stale clients.
func touchTrip(ctx context.Context, tx *sqlx.Tx, tripID uuid.UUID) error {
	result, err := tx.ExecContext(ctx, `UPDATE trip SET version = version + 1, updated_at = NOW() WHERE id = $1`, tripID)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

var _ ports.TripRepository = (*TripRepository)(nil)
