package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ItineraryRequest struct {
	Budget      float64  `json:"budget"`
	Days        int      `json:"days"`
	Travelers   int      `json:"travelers"`
	Preferences []string `json:"preferences"`
}

type ItineraryItem struct {
	Day           int               `json:"day"`
	DestinationID uuid.UUID         `json:"destination_id"`
	Destination   ItineraryPlaceRef `json:"destination"`
	Duration      *string           `json:"duration,omitempty"`
	Note          string            `json:"note"`
	EstimatedCost float64           `json:"estimated_cost"`
}

// ItineraryPlaceRef is the destination snapshot embedded in an itinerary day.
type ItineraryPlaceRef struct {
	Name       string      `json:"name"`
	Slug       string      `json:"slug"`
	Province   *string     `json:"province,omitempty"`
	Category   *string     `json:"category,omitempty"`
	PriceRange *PriceRange `json:"price_range,omitempty"`
	Rating     float64     `json:"rating"`
}

type Itinerary struct {
	Title              string          `json:"title"`
	Items              []ItineraryItem `json:"items"`
	TotalEstimatedCost float64         `json:"total_estimated_cost"`
	Currency           string          `json:"currency"`
	Tips               []string        `json:"tips"`
}

// ItineraryItems persists as a JSONB column.
type ItineraryItems []ItineraryItem

func (i ItineraryItems) Value() (driver.Value, error) {
	if i == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(i)
}

func (i *ItineraryItems) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*i = ItineraryItems{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("itinerary items: unsupported scan type")
	}
	return json.Unmarshal(raw, i)
}

type SavedItinerary struct {
	ID                 uuid.UUID      `db:"id" json:"id"`
	UserID             uuid.UUID      `db:"user_id" json:"user_id"`
	Title              string         `db:"title" json:"title"`
	Budget             float64        `db:"budget" json:"budget"`
	Days               int            `db:"days" json:"days"`
	Travelers          int            `db:"travelers" json:"travelers"`
	Preferences        pq.StringArray `db:"preferences" json:"preferences"`
	Items              ItineraryItems `db:"items" json:"items"`
	TotalEstimatedCost float64        `db:"total_estimated_cost" json:"total_estimated_cost"`
	Currency           string         `db:"currency" json:"currency"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
}
