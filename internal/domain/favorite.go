package domain

import (
	"time"

	"github.com/google/uuid"
)

type Favorite struct {
	ID            uuid.UUID `db:"id" json:"id"`
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	DestinationID uuid.UUID `db:"destination_id" json:"destination_id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type FavoriteListItem struct {
	Favorite
	DestinationName string  `db:"destination_name" json:"destination_name"`
	DestinationSlug string  `db:"destination_slug" json:"destination_slug"`
	ProvinceName    *string `db:"province_name" json:"province_name,omitempty"`
	CategorySlug    *string `db:"category_slug" json:"category_slug,omitempty"`
	Rating          float64 `db:"rating" json:"rating"`
	HeroImage       *string `db:"hero_image_url" json:"hero_image_url,omitempty"`
}
