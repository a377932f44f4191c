package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/ports"
)

const userColumns = `id, email, full_name, user_image_url, password_hash, password_salt, created_at, updated_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateEmailUser(ctx context.Context, email string, fullName *string, passwordHash, passwordSalt []byte) (*domain.User, error) {
	query := `
        INSERT INTO user_account (email, full_name, password_hash, password_salt)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + userColumns

	var user domain.User
	if err := r.db.QueryRowxContext(ctx, query, email, nullString(fullName), passwordHash, passwordSalt).StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpsertGoogleUser(ctx context.Context, email string, fullName *string, imageURL *string) (*domain.User, error) {
	query := `
        INSERT INTO user_account (email, full_name, user_image_url)
        VALUES ($1, $2, $3)
        ON CONFLICT (email) DO UPDATE
        SET full_name = COALESCE(user_account.full_name, EXCLUDED.full_name),
            user_image_url = COALESCE(EXCLUDED.user_image_url, user_account.user_image_url),
            updated_at = NOW()
        RETURNING ` + userColumns

	var user domain.User
	if err := r.db.QueryRowxContext(ctx, query, email, nullString(fullName), nullString(imageURL)).StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM user_account WHERE email = $1`, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM user_account WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &user, nil
}

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepo(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) DashboardCounts(ctx context.Context) (*domain.DashboardStats, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM destination) AS destinations,
			(SELECT COUNT(*) FROM destination WHERE is_active) AS active_destinations,
			(SELECT COUNT(*) FROM user_account) AS users,
			(SELECT COUNT(*) FROM trip) AS trips,
			(SELECT COUNT(*) FROM booking WHERE status = 'confirmed') AS bookings,
			(SELECT COUNT(*) FROM review WHERE NOT is_approved) AS pending_reviews
	`
	var stats domain.DashboardStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, err
	}
	return &stats, nil
}

var (
	_ ports.UserRepository  = (*UserRepository)(nil)
	_ ports.StatsRepository = (*StatsRepository)(nil)
)
