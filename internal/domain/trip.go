package domain

import (
	"time"

	"github.com/google/uuid"
)

type TripStatus string

const (
	TripStatusPlanning  TripStatus = "planning"
	TripStatusOngoing   TripStatus = "ongoing"
	TripStatusCompleted TripStatus = "completed"
)

func (s TripStatus) Valid() bool {
	switch s {
	case TripStatusPlanning, TripStatusOngoing, TripStatusCompleted:
		return true
	}
	return false
}

type Trip struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	UserID      uuid.UUID  `db:"user_id" json:"user_id"`
	Name        string     `db:"name" json:"name"`
	Description *string    `db:"description" json:"description,omitempty"`
	Status      TripStatus `db:"status" json:"status"`
	Travelers   int        `db:"travelers" json:"travelers"`
	StartDate   *time.Time `db:"start_date" json:"start_date,omitempty"`
	Version     int        `db:"version" json:"version"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`

	Items []TripItem `db:"-" json:"items"`
}

// TripItem is one destination entry of a trip. Order indexes start at 0 and
// may contain gaps after removals.
type TripItem struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	TripID        uuid.UUID  `db:"trip_id" json:"trip_id"`
	DestinationID uuid.UUID  `db:"destination_id" json:"destination_id"`
	OrderIndex    int        `db:"order_index" json:"order_index"`
	Notes         *string    `db:"notes" json:"notes,omitempty"`
	PlannedDate   *time.Time `db:"planned_date" json:"planned_date,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`

	DestinationName string   `db:"destination_name" json:"destination_name"`
	DestinationSlug string   `db:"destination_slug" json:"destination_slug"`
	PriceMin        *float64 `db:"price_min" json:"-"`
	PriceMax        *float64 `db:"price_max" json:"-"`
	Currency        string   `db:"price_currency" json:"-"`
	Duration        *string  `db:"duration" json:"duration,omitempty"`
}

// Destination exposes the joined price columns in the shape the cost
// aggregator consumes.
func (i TripItem) Destination() Destination {
	return Destination{
		ID:       i.DestinationID,
		Slug:     i.DestinationSlug,
		Name:     i.DestinationName,
		PriceMin: i.PriceMin,
		PriceMax: i.PriceMax,
		Currency: i.Currency,
		Duration: i.Duration,
	}
}

type TripCostEstimate struct {
	Travelers int     `json:"travelers"`
	Total     float64 `json:"total"`
	Currency  string  `json:"currency"`
	Priced    int     `json:"priced_destinations"`
	Unpriced  int     `json:"unpriced_destinations"`
}
