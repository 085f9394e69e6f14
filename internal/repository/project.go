package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/linkvigia/linkvigia/internal/model"
)

// ErrProjectNotFound indicates the project does not exist.
var ErrProjectNotFound = errors.New("project not found")

// QuotaFunc decides whether the owner, currently holding current
// projects on the given plan, may create one more. It runs inside the
// provisioning transaction, after the owner row has been locked, so the
// count cannot change until the decision commits.
type QuotaFunc func(plan string, current int64) error

// CreateProjectWithURLs atomically provisions a project and its
// monitored URLs. The owner row is locked for the duration of the
// transaction, making the quota check and the inserts a single unit:
// either everything commits or nothing does.
func (r *Repository) CreateProjectWithURLs(
	ctx context.Context,
	project *model.Project,
	urls []*model.MonitoredURL,
	allow QuotaFunc,
) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock the owner row to serialize concurrent provisioning attempts.
	var plan string
	err = tx.QueryRow(ctx,
		"SELECT plan FROM users WHERE id = $1 FOR UPDATE", project.UserID,
	).Scan(&plan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to lock owner: %w", err)
	}

	var current int64
	err = tx.QueryRow(ctx,
		"SELECT count(*) FROM projects WHERE user_id = $1", project.UserID,
	).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to count projects: %w", err)
	}

	if err := allow(plan, current); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO projects (id, user_id, name, domain, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		project.ID,
		project.UserID,
		project.Name,
		project.Domain,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	for _, u := range urls {
		_, err = tx.Exec(ctx, `
			INSERT INTO monitored_urls (id, project_id, url, status, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`,
			u.ID,
			u.ProjectID,
			u.URL,
			u.Status,
			u.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create monitored URL: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit project: %w", err)
	}

	return nil
}

// GetProjectByID retrieves a project by its ID.
func (r *Repository) GetProjectByID(ctx context.Context, id string) (*model.Project, error) {
	query := `
		SELECT id, user_id, name, domain, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	var project model.Project
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.UserID,
		&project.Name,
		&project.Domain,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &project, nil
}

// ListProjectsByUser retrieves all projects owned by a user,
// newest first, with their monitored-URL counts.
func (r *Repository) ListProjectsByUser(ctx context.Context, userID string) ([]*model.ProjectSummary, error) {
	query := `
		SELECT p.id, p.user_id, p.name, p.domain, p.created_at, p.updated_at,
			(SELECT count(*) FROM monitored_urls mu WHERE mu.project_id = p.id)
		FROM projects p
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*model.ProjectSummary
	for rows.Next() {
		var p model.ProjectSummary
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Name,
			&p.Domain,
			&p.CreatedAt,
			&p.UpdatedAt,
			&p.URLCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

// ListMonitoredURLs retrieves the monitored URLs of a project.
func (r *Repository) ListMonitoredURLs(ctx context.Context, projectID string) ([]*model.MonitoredURL, error) {
	query := `
		SELECT id, project_id, url, status, last_check, created_at
		FROM monitored_urls
		WHERE project_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list monitored URLs: %w", err)
	}
	defer rows.Close()

	var urls []*model.MonitoredURL
	for rows.Next() {
		var u model.MonitoredURL
		err := rows.Scan(
			&u.ID,
			&u.ProjectID,
			&u.URL,
			&u.Status,
			&u.LastCheck,
			&u.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monitored URL: %w", err)
		}
		urls = append(urls, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monitored URLs: %w", err)
	}

	return urls, nil
}

// CountProjectsByUser counts the projects owned by a user.
func (r *Repository) CountProjectsByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		"SELECT count(*) FROM projects WHERE user_id = $1", userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}
