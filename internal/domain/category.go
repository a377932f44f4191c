package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is a travel style used for catalog filtering.
type Category struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Icon        *string   `db:"icon" json:"icon,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Province struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	Region    *string   `db:"region" json:"region,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
