package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/linkvigia/linkvigia/internal/model"
	"github.com/linkvigia/linkvigia/internal/repository"
)

// CampaignService handles outreach campaign logic.
type CampaignService struct {
	repo *repository.Repository
}

// NewCampaignService creates a new CampaignService.
func NewCampaignService(repo *repository.Repository) *CampaignService {
	return &CampaignService{repo: repo}
}

// CreateCampaignInput defines input for creating a campaign.
type CreateCampaignInput struct {
	UserID   string
	Name     string
	Subject  string
	Template string
}

// CreateCampaign creates a campaign in draft status. Campaigns are
// activated later by the delivery worker, never at creation time.
func (s *CampaignService) CreateCampaign(ctx context.Context, input CreateCampaignInput) (*model.Campaign, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrMissingFields
	}

	now := time.Now().UTC()
	campaign := &model.Campaign{
		ID:        ulid.Make().String(),
		UserID:    input.UserID,
		Name:      name,
		Subject:   strings.TrimSpace(input.Subject),
		Template:  input.Template,
		Status:    model.CampaignStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateCampaign(ctx, campaign); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}

	return campaign, nil
}

// ListCampaigns retrieves the caller's campaigns, newest first.
func (s *CampaignService) ListCampaigns(ctx context.Context, userID string) ([]*model.Campaign, error) {
	campaigns, err := s.repo.ListCampaignsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}
