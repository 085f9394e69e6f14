package repository

import (
	"context"
	"fmt"

	"github.com/linkvigia/linkvigia/internal/model"
)

// CreateCampaign inserts a new campaign.
func (r *Repository) CreateCampaign(ctx context.Context, campaign *model.Campaign) error {
	query := `
		INSERT INTO campaigns (id, user_id, name, subject, template, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		campaign.ID,
		campaign.UserID,
		campaign.Name,
		campaign.Subject,
		campaign.Template,
		campaign.Status,
		campaign.CreatedAt,
		campaign.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

// ListCampaignsByUser retrieves all campaigns owned by a user,
// newest first.
func (r *Repository) ListCampaignsByUser(ctx context.Context, userID string) ([]*model.Campaign, error) {
	query := `
		SELECT id, user_id, name, subject, template, status, created_at, updated_at
		FROM campaigns
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []*model.Campaign
	for rows.Next() {
		var c model.Campaign
		err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Name,
			&c.Subject,
			&c.Template,
			&c.Status,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campaigns: %w", err)
	}

	return campaigns, nil
}
