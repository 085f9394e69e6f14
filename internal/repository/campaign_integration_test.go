//go:build integration

package repository

import (
	"testing"
	"time"

	"github.com/linkvigia/linkvigia/internal/model"
	"github.com/linkvigia/linkvigia/internal/testutil"
)

// ============================================================================
// Campaign Repository Integration Tests
// ============================================================================

func TestIntegrationCampaignRepository_CreateAndList(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("campaigns"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	first := &model.Campaign{
		ID:        testutil.UniqueID("camp"),
		UserID:    user.ID,
		Name:      "Divulgação de lançamento",
		Subject:   "Parceria de conteúdo",
		Template:  "Olá {{nome}}, encontramos seu blog...",
		Status:    model.CampaignStatusDraft,
		CreatedAt: now.Add(-time.Hour),
		UpdatedAt: now.Add(-time.Hour),
	}
	second := &model.Campaign{
		ID:        testutil.UniqueID("camp"),
		UserID:    user.ID,
		Name:      "Follow-up trimestral",
		Status:    model.CampaignStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.CreateCampaign(ctx, first); err != nil {
		t.Fatalf("CreateCampaign (first) failed: %v", err)
	}
	if err := repo.CreateCampaign(ctx, second); err != nil {
		t.Fatalf("CreateCampaign (second) failed: %v", err)
	}

	campaigns, err := repo.ListCampaignsByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListCampaignsByUser failed: %v", err)
	}
	if len(campaigns) != 2 {
		t.Fatalf("expected 2 campaigns, got %d", len(campaigns))
	}
	if campaigns[0].ID != second.ID {
		t.Errorf("expected newest first, got %s", campaigns[0].ID)
	}
	if campaigns[1].Subject != first.Subject {
		t.Errorf("Subject mismatch: got %q, want %q", campaigns[1].Subject, first.Subject)
	}
	if campaigns[0].Status != model.CampaignStatusDraft {
		t.Errorf("Status mismatch: got %q, want %q", campaigns[0].Status, model.CampaignStatusDraft)
	}
}

func TestIntegrationCampaignRepository_ListByUser_Isolated(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	owner := testutil.NewTestUser(t, testutil.UniqueEmail("camp-owner"))
	other := testutil.NewTestUser(t, testutil.UniqueEmail("camp-other"))
	for _, u := range []*model.User{owner, other} {
		if err := repo.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	now := time.Now().UTC()
	campaign := &model.Campaign{
		ID:        testutil.UniqueID("camp"),
		UserID:    owner.ID,
		Name:      "Campanha exclusiva",
		Status:    model.CampaignStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.CreateCampaign(ctx, campaign); err != nil {
		t.Fatalf("CreateCampaign failed: %v", err)
	}

	campaigns, err := repo.ListCampaignsByUser(ctx, other.ID)
	if err != nil {
		t.Fatalf("ListCampaignsByUser failed: %v", err)
	}
	if len(campaigns) != 0 {
		t.Errorf("expected no campaigns for other user, got %d", len(campaigns))
	}
}
