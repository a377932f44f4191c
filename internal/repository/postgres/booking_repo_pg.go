package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/ports"
)

const bookingSelect = `
		SELECT
			b.id,
			b.user_id,
			b.trip_id,
			t.name AS trip_name,
			b.travelers,
			b.contact_email,
			b.notes,
			b.total_cost,
			b.currency,
			b.status,
			b.created_at,
			b.updated_at,
			b.cancelled_at
		FROM booking b
		JOIN trip t ON t.id = b.trip_id`

type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepo(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	const insert = `
		INSERT INTO booking (user_id, trip_id, travelers, contact_email, notes, total_cost, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var id uuid.UUID
	if err := r.db.GetContext(ctx, &id, insert,
		booking.UserID, booking.TripID, booking.Travelers, booking.ContactEmail,
		nullString(booking.Notes), booking.TotalCost, booking.Currency, booking.Status,
	); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var booking domain.Booking
	if err := r.db.GetContext(ctx, &booking, bookingSelect+"\n\t\tWHERE b.id = $1", id); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Booking, error) {
	query := bookingSelect + `
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $2 OFFSET $3`
	bookings := make([]domain.Booking, 0)
	if err := r.db.SelectContext(ctx, &bookings, query, userID, limit, offset); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM booking WHERE user_id = $1`, userID)
	return count, err
}

// Cancel returns sql.ErrNoRows when the booking is not currently confirmed.
func (r *BookingRepository) Cancel(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const update = `
		UPDATE booking
		SET status = 'cancelled', cancelled_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'confirmed'
	`
	result, err := r.db.ExecContext(ctx, update, id)
	if err != nil {
		return nil, err
	}
	if err := expectAffected(result); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

var _ ports.BookingRepository = (*BookingRepository)(nil)
