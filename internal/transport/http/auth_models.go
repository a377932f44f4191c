package http

import (
	"time"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/service"
)

// ErrorResponse represents a generic error payload.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid credentials"`
}

// AuthUser models the sanitized user representation returned by auth endpoints.
type AuthUser struct {
	ID           string    `json:"id" example:"9fd13fd2-63c5-4f29-a210-4a1a8e285f74"`
	Email        string    `json:"email" example:"traveler@example.com"`
	FullName     *string   `json:"full_name,omitempty" example:"Nguyen Van A"`
	UserImageURL *string   `json:"user_image_url,omitempty" example:"https://cdn.example.com/avatar.png"`
	Roles        []string  `json:"roles"`
	IsAdmin      bool      `json:"is_admin" example:"false"`
	CreatedAt    time.Time `json:"created_at" example:"2024-01-01T12:00:00Z"`
}

// AuthTokenResponse is returned by endpoints that issue JWT tokens.
type AuthTokenResponse struct {
	Token     string   `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt string   `json:"expires_at" example:"2024-01-02T09:30:00Z"`
	User      AuthUser `json:"user"`
}

// RegisterRequest carries email registration fields.
type RegisterRequest struct {
	Email    string  `json:"email" example:"traveler@example.com"`
	Password string  `json:"password" example:"StrongPass!23"`
	FullName *string `json:"full_name" example:"Nguyen Van A"`
}

// LoginRequest carries email login fields.
type LoginRequest struct {
	Email    string `json:"email" example:"traveler@example.com"`
	Password string `json:"password" example:"StrongPass!23"`
}

// GoogleLoginRequest carries the Google ID token for login.
type GoogleLoginRequest struct {
	IDToken string `json:"id_token" example:"eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

func toAuthUser(user *domain.User) AuthUser {
	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, role.Name)
	}
	return AuthUser{
		ID:           user.ID.String(),
		Email:        user.Email,
		FullName:     user.FullName,
		UserImageURL: user.ImageURL,
		Roles:        roles,
		IsAdmin:      user.HasRole(domain.RoleAdmin),
		CreatedAt:    user.CreatedAt,
	}
}

func toAuthTokenResponse(result *service.AuthResult) AuthTokenResponse {
	return AuthTokenResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.UTC().Format(time.RFC3339),
		User:      toAuthUser(result.User),
	}
}
