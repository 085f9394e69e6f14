package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/linkvigia/linkvigia/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
)

// CreateUser inserts a new user into the database.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, name, email, password, plan, company, created_ip, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Password,
		string(user.Plan),
		user.Company,
		user.CreatedIP,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, name, email, password, plan, company, created_ip, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetUserByEmail retrieves a user by their email address.
// The match is case-sensitive and exact.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, name, email, password, plan, company, created_ip, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

// UpdateUserProfile updates the mutable profile fields of a user.
func (r *Repository) UpdateUserProfile(ctx context.Context, id, name, company string) error {
	query := `
		UPDATE users
		SET name = $2, company = $3, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, name, company)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// CountFreeAccountsByIP counts free-plan accounts registered from an IP.
func (r *Repository) CountFreeAccountsByIP(ctx context.Context, ip string) (int64, error) {
	query := `
		SELECT count(*)
		FROM users
		WHERE created_ip = $1 AND plan = $2
	`

	var count int64
	err := r.pool.QueryRow(ctx, query, ip, string(model.PlanFree)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts by IP: %w", err)
	}

	return count, nil
}

// GetUserStats aggregates resource counts owned by a user.
func (r *Repository) GetUserStats(ctx context.Context, userID string) (*model.UserStats, error) {
	query := `
		SELECT
			(SELECT count(*) FROM projects WHERE user_id = $1),
			(SELECT count(*) FROM monitored_urls mu
				JOIN projects p ON p.id = mu.project_id WHERE p.user_id = $1),
			(SELECT count(*) FROM backlinks b
				JOIN projects p ON p.id = b.project_id WHERE p.user_id = $1),
			(SELECT count(*) FROM campaigns WHERE user_id = $1)
	`

	var stats model.UserStats
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&stats.Projects,
		&stats.MonitoredURLs,
		&stats.Backlinks,
		&stats.Campaigns,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}

	return &stats, nil
}

// scanUser scans a user row from a QueryRow result.
func (r *Repository) scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	var plan string
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&plan,
		&user.Company,
		&user.CreatedIP,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	user.Plan = model.Plan(plan)
	return &user, nil
}
