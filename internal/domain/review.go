package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

type Review struct {
	ID            uuid.UUID `db:"id" json:"id"`
	DestinationID uuid.UUID `db:"destination_id" json:"destination_id"`
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	Rating        int       `db:"rating" json:"rating"`
	Title         *string   `db:"title" json:"title,omitempty"`
	Comment       *string   `db:"comment" json:"comment,omitempty"`
	IsApproved    bool      `db:"is_approved" json:"is_approved"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`

	ReviewerName  *string `db:"reviewer_name" json:"reviewer_name,omitempty"`
	ReviewerEmail *string `db:"reviewer_email" json:"-"`
}

// RatingAggregate is the rating/review-count pair stored on a destination.
type RatingAggregate struct {
	DestinationID uuid.UUID `db:"destination_id" json:"destination_id"`
	Rating        float64   `db:"rating" json:"rating"`
	ReviewCount   int       `db:"review_count" json:"review_count"`
}

type ReviewListResult struct {
	DestinationID uuid.UUID       `json:"destination_id"`
	Reviews       []Review        `json:"reviews"`
	Aggregate     RatingAggregate `json:"aggregate"`
	Total         int64           `json:"total"`
	Limit         int             `json:"limit"`
	Offset        int             `json:"offset"`
}
