package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	UserID       uuid.UUID     `db:"user_id" json:"user_id"`
	TripID       uuid.UUID     `db:"trip_id" json:"trip_id"`
	TripName     string        `db:"trip_name" json:"trip_name"`
	Travelers    int           `db:"travelers" json:"travelers"`
	ContactEmail string        `db:"contact_email" json:"contact_email"`
	Notes        *string       `db:"notes" json:"notes,omitempty"`
	TotalCost    float64       `db:"total_cost" json:"total_cost"`
	Currency     string        `db:"currency" json:"currency"`
	Status       BookingStatus `db:"status" json:"status"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
	CancelledAt  *time.Time    `db:"cancelled_at" json:"cancelled_at,omitempty"`
}
