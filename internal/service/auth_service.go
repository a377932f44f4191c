package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/idtoken"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/util"
)

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidFullName    = errors.New("invalid full name")
	ErrEmailAlreadyUsed   = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooWeak    = util.ErrWeakPassword
	ErrInvalidGoogleToken = errors.New("invalid google token")
	ErrSessionNotFound    = errors.New("session not found or expired")
)

const maxFullNameLength = 120

// GoogleTokenValidator verifies a Google ID token for the configured audience.
type GoogleTokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

type AuthResult struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type AuthService struct {
	users          ports.UserRepository
	roles          ports.RoleRepository
	sessions       ports.SessionRepository
	jwt            *util.JWTManager
	googleAudience string
	adminEmails    map[string]struct{}
	validateGoogle GoogleTokenValidator
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, sessions ports.SessionRepository, jwtManager *util.JWTManager, googleAudience string, adminEmails []string) *AuthService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			admins[email] = struct{}{}
		}
	}
	return &AuthService{
		users:          users,
		roles:          roles,
		sessions:       sessions,
		jwt:            jwtManager,
		googleAudience: googleAudience,
		adminEmails:    admins,
		validateGoogle: idtoken.Validate,
	}
}

func (s *AuthService) RegisterWithEmail(ctx context.Context, email, password string, fullName *string) (*AuthResult, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, err
	}
	name := normalizeString(fullName)
	if name != nil && len([]rune(*name)) > maxFullNameLength {
		return nil, fmt.Errorf("%w: must be at most %d characters", ErrInvalidFullName, maxFullNameLength)
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, err
	}
	user, err := s.users.CreateEmailUser(ctx, normalized, name, hash, salt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, err
	}
	return s.signIn(ctx, user)
}

func (s *AuthService) LoginWithEmail(ctx context.Context, email, password string) (*AuthResult, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.signIn(ctx, user)
}

func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (*AuthResult, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, ErrInvalidGoogleToken
	}
	payload, err := s.validateGoogle(ctx, idToken, s.googleAudience)
	if err != nil {
		log.Printf("auth: google token rejected: %v", err)
		return nil, ErrInvalidGoogleToken
	}

	email, _ := payload.Claims["email"].(string)
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return nil, ErrInvalidGoogleToken
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}
	var name, picture *string
	if v, ok := payload.Claims["name"].(string); ok {
		name = normalizeString(&v)
	}
	if v, ok := payload.Claims["picture"].(string); ok {
		picture = normalizeString(&v)
	}

	user, err := s.users.UpsertGoogleUser(ctx, normalized, name, picture)
	if err != nil {
		return nil, err
	}
	return s.signIn(ctx, user)
}

// Authenticate resolves a bearer token into its user. The token must parse and
// still be backed by an active session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, err
	}
	session, err := s.sessions.FindActiveSession(ctx, token)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != claims.UserID || time.Now().After(session.ExpiresAt) {
		return nil, ErrSessionNotFound
	}
	return s.loadUser(ctx, claims.UserID)
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.DeactivateSession(ctx, token); err != nil {
		if isNotFound(err) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}

func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.PurgeExpired(ctx)
}

func (s *AuthService) signIn(ctx context.Context, user *domain.User) (*AuthResult, error) {
	if err := s.ensureRoles(ctx, user); err != nil {
		return nil, err
	}
	loaded, err := s.loadUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.jwt.Generate(loaded.ID, loaded.Email, loaded.HasRole(domain.RoleAdmin))
	if err != nil {
		return nil, err
	}
	if _, err := s.sessions.CreateSession(ctx, loaded.ID, token, expiresAt); err != nil {
		return nil, err
	}
	return &AuthResult{User: loaded, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) ensureRoles(ctx context.Context, user *domain.User) error {
	names := []string{domain.RoleUser}
	if _, ok := s.adminEmails[strings.ToLower(user.Email)]; ok {
		names = append(names, domain.RoleAdmin)
	}
	for _, name := range names {
		role, err := s.roles.GetOrCreateRole(ctx, name, name+" role")
		if err != nil {
			return err
		}
		if err := s.roles.AssignUserRole(ctx, user.ID, role.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *AuthService) loadUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	roles, err := s.roles.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

func normalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", ErrInvalidEmail
	}
	return trimmed, nil
}
