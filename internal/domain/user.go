package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	FullName     *string   `db:"full_name" json:"full_name,omitempty"`
	ImageURL     *string   `db:"user_image_url" json:"user_image_url,omitempty"`
	PasswordHash []byte    `db:"password_hash" json:"-"`
	PasswordSalt []byte    `db:"password_salt" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
	Roles        []Role    `db:"-" json:"roles,omitempty"`
}

func (u *User) HasRole(name string) bool {
	for _, role := range u.Roles {
		if strings.EqualFold(role.Name, name) {
			return true
		}
	}
	return false
}

// Principal is the authenticated caller handed to services explicitly.
type Principal struct {
	UserID  uuid.UUID
	Email   string
	IsAdmin bool
}

func (u *User) Principal() Principal {
	return Principal{
		UserID:  u.ID,
		Email:   u.Email,
		IsAdmin: u.HasRole(RoleAdmin),
	}
}

type DashboardStats struct {
	Destinations       int64         `db:"destinations" json:"destinations"`
	ActiveDestinations int64         `db:"active_destinations" json:"active_destinations"`
	Users              int64         `db:"users" json:"users"`
	Trips              int64         `db:"trips" json:"trips"`
	Bookings           int64         `db:"bookings" json:"bookings"`
	PendingReviews     int64         `db:"pending_reviews" json:"pending_reviews"`
	TopRated           []Destination `db:"-" json:"top_rated"`
}
