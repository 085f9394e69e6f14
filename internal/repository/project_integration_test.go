//go:build integration

package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/linkvigia/linkvigia/internal/model"
	"github.com/linkvigia/linkvigia/internal/quota"
	"github.com/linkvigia/linkvigia/internal/testutil"
)

// ============================================================================
// Project Repository Integration Tests
// ============================================================================

// planQuota mirrors the service-layer quota callback so the transaction
// path can be exercised end to end.
func planQuota(plan string, current int64) error {
	parsed, err := model.ParsePlan(plan)
	if err != nil {
		return err
	}
	return quota.CheckProject(parsed, current)
}

func TestIntegrationProjectRepository_CreateProjectWithURLs(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("proj"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	project := testutil.NewTestProject(t, user.ID)
	urls := []*model.MonitoredURL{
		{ID: testutil.UniqueID("murl"), ProjectID: project.ID, URL: "https://example.com.br/blog", Status: model.URLStatusActive, CreatedAt: project.CreatedAt},
		{ID: testutil.UniqueID("murl"), ProjectID: project.ID, URL: "https://example.com.br/loja", Status: model.URLStatusActive, CreatedAt: project.CreatedAt},
	}

	if err := repo.CreateProjectWithURLs(ctx, project, urls, planQuota); err != nil {
		t.Fatalf("CreateProjectWithURLs failed: %v", err)
	}

	retrieved, err := repo.GetProjectByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetProjectByID failed: %v", err)
	}
	if retrieved.Domain != project.Domain {
		t.Errorf("Domain mismatch: got %q, want %q", retrieved.Domain, project.Domain)
	}

	stored, err := repo.ListMonitoredURLs(ctx, project.ID)
	if err != nil {
		t.Fatalf("ListMonitoredURLs failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 monitored URLs, got %d", len(stored))
	}
	for _, u := range stored {
		if u.Status != model.URLStatusActive {
			t.Errorf("URL %s status: got %q, want %q", u.URL, u.Status, model.URLStatusActive)
		}
		if u.LastCheck != nil {
			t.Errorf("URL %s should have no check recorded yet", u.URL)
		}
	}
}

func TestIntegrationProjectRepository_CreateProject_FreeQuotaExceeded(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("quota-free"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	first := testutil.NewTestProject(t, user.ID)
	if err := repo.CreateProjectWithURLs(ctx, first, nil, planQuota); err != nil {
		t.Fatalf("CreateProjectWithURLs (first) failed: %v", err)
	}

	second := testutil.NewTestProject(t, user.ID)
	err := repo.CreateProjectWithURLs(ctx, second, nil, planQuota)

	var limitErr *quota.LimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("Expected quota.LimitError, got: %v", err)
	}
	if limitErr.Limit != 1 {
		t.Errorf("Limit mismatch: got %d, want 1", limitErr.Limit)
	}

	count, err := repo.CountProjectsByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("CountProjectsByUser failed: %v", err)
	}
	if count != 1 {
		t.Errorf("rejected project must not be persisted: got %d projects", count)
	}
}

func TestIntegrationProjectRepository_CreateProject_StarterBoundary(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	user := testutil.NewTestUserWithPlan(t, testutil.UniqueEmail("quota-starter"), model.PlanStarter)
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		p := testutil.NewTestProject(t, user.ID)
		p.ID = testutil.UniqueID(fmt.Sprintf("proj%d", i))
		p.Domain = fmt.Sprintf("site%d.example.com.br", i)
		if err := repo.CreateProjectWithURLs(ctx, p, nil, planQuota); err != nil {
			t.Fatalf("CreateProjectWithURLs (#%d) failed: %v", i+1, err)
		}
	}

	extra := testutil.NewTestProject(t, user.ID)
	err := repo.CreateProjectWithURLs(ctx, extra, nil, planQuota)

	var limitErr *quota.LimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("Expected quota.LimitError at the plan limit, got: %v", err)
	}
	if limitErr.Limit != 10 {
		t.Errorf("Limit mismatch: got %d, want 10", limitErr.Limit)
	}
}

func TestIntegrationProjectRepository_CreateProject_UnknownPlanFailsClosed(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("quota-unknown"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	// Simulate a plan value written outside the application.
	if _, err := repo.Pool().Exec(ctx,
		"ALTER TABLE users DROP CONSTRAINT users_plan_check"); err != nil {
		t.Fatalf("drop plan check: %v", err)
	}
	if _, err := repo.Pool().Exec(ctx,
		"UPDATE users SET plan = 'legacy-gold' WHERE id = $1", user.ID); err != nil {
		t.Fatalf("corrupt plan: %v", err)
	}

	project := testutil.NewTestProject(t, user.ID)
	err := repo.CreateProjectWithURLs(ctx, project, nil, planQuota)
	if !errors.Is(err, model.ErrUnknownPlan) {
		t.Errorf("Expected ErrUnknownPlan, got: %v", err)
	}
}

func TestIntegrationProjectRepository_CreateProject_OwnerMissing(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	project := testutil.NewTestProject(t, "nonexistent-user")
	err := repo.CreateProjectWithURLs(ctx, project, nil, planQuota)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
}

func TestIntegrationProjectRepository_ListProjectsByUser(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	user := testutil.NewTestUserWithPlan(t, testutil.UniqueEmail("list"), model.PlanProfessional)
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	withURLs := testutil.NewTestProject(t, user.ID)
	urls := []*model.MonitoredURL{
		{ID: testutil.UniqueID("murl"), ProjectID: withURLs.ID, URL: "https://example.com.br/a", Status: model.URLStatusActive, CreatedAt: withURLs.CreatedAt},
		{ID: testutil.UniqueID("murl"), ProjectID: withURLs.ID, URL: "https://example.com.br/b", Status: model.URLStatusActive, CreatedAt: withURLs.CreatedAt},
		{ID: testutil.UniqueID("murl"), ProjectID: withURLs.ID, URL: "https://example.com.br/c", Status: model.URLStatusActive, CreatedAt: withURLs.CreatedAt},
	}
	if err := repo.CreateProjectWithURLs(ctx, withURLs, urls, planQuota); err != nil {
		t.Fatalf("CreateProjectWithURLs failed: %v", err)
	}

	bare := testutil.NewTestProject(t, user.ID)
	bare.Domain = "outro.example.com.br"
	if err := repo.CreateProjectWithURLs(ctx, bare, nil, planQuota); err != nil {
		t.Fatalf("CreateProjectWithURLs (bare) failed: %v", err)
	}

	summaries, err := repo.ListProjectsByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListProjectsByUser failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(summaries))
	}

	counts := map[string]int64{}
	for _, s := range summaries {
		counts[s.ID] = s.URLCount
	}
	if counts[withURLs.ID] != 3 {
		t.Errorf("URLCount mismatch for %s: got %d, want 3", withURLs.ID, counts[withURLs.ID])
	}
	if counts[bare.ID] != 0 {
		t.Errorf("URLCount mismatch for %s: got %d, want 0", bare.ID, counts[bare.ID])
	}
}

func TestIntegrationProjectRepository_GetProjectByID_NotFound(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	_, err := repo.GetProjectByID(ctx, "nonexistent-id")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound, got: %v", err)
	}
}
