package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/linkvigia/linkvigia/internal/model"
	"github.com/linkvigia/linkvigia/internal/quota"
	"github.com/linkvigia/linkvigia/internal/repository"
)

// ProjectService handles project provisioning logic.
type ProjectService struct {
	repo *repository.Repository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(repo *repository.Repository) *ProjectService {
	return &ProjectService{repo: repo}
}

// CreateProjectInput defines input for provisioning a project.
type CreateProjectInput struct {
	UserID string
	Name   string
	Domain string
	URLs   []string
}

// CreateProject provisions a project and its monitored URLs.
// The plan quota check and all inserts run in one transaction, so two
// concurrent requests at the limit boundary cannot both succeed.
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*model.Project, []*model.MonitoredURL, error) {
	name := strings.TrimSpace(input.Name)
	domain := strings.TrimSpace(input.Domain)
	if name == "" || domain == "" {
		return nil, nil, ErrMissingFields
	}

	now := time.Now().UTC()
	project := &model.Project{
		ID:        ulid.Make().String(),
		UserID:    input.UserID,
		Name:      name,
		Domain:    domain,
		CreatedAt: now,
		UpdatedAt: now,
	}

	urls := make([]*model.MonitoredURL, 0, len(input.URLs))
	for _, raw := range input.URLs {
		u := strings.TrimSpace(raw)
		if u == "" {
			continue
		}
		urls = append(urls, &model.MonitoredURL{
			ID:        ulid.Make().String(),
			ProjectID: project.ID,
			URL:       u,
			Status:    model.URLStatusActive,
			CreatedAt: now,
		})
	}

	err := s.repo.CreateProjectWithURLs(ctx, project, urls, func(plan string, current int64) error {
		parsed, err := model.ParsePlan(plan)
		if err != nil {
			// Fail closed on unrecognized plan values.
			return err
		}
		return quota.CheckProject(parsed, current)
	})
	if err != nil {
		return nil, nil, err
	}

	return project, urls, nil
}

// ListProjects retrieves the caller's projects with URL counts.
func (s *ProjectService) ListProjects(ctx context.Context, userID string) ([]*model.ProjectSummary, error) {
	projects, err := s.repo.ListProjectsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// BacklinkReport holds a project's backlinks and their status counts.
type BacklinkReport struct {
	Backlinks []*model.Backlink `json:"backlinks"`
	Total     int               `json:"total"`
	Active    int               `json:"active"`
	Lost      int               `json:"lost"`
}

// ListBacklinks retrieves the backlinks of one of the caller's
// projects. A project owned by someone else is reported as not found,
// never as forbidden, so project IDs stay unguessable.
func (s *ProjectService) ListBacklinks(ctx context.Context, userID, projectID string) (*BacklinkReport, error) {
	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, repository.ErrProjectNotFound
	}

	backlinks, err := s.repo.ListBacklinksByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list backlinks: %w", err)
	}

	report := &BacklinkReport{
		Backlinks: backlinks,
		Total:     len(backlinks),
	}
	if report.Backlinks == nil {
		report.Backlinks = []*model.Backlink{}
	}
	for _, b := range backlinks {
		switch b.Status {
		case model.BacklinkStatusActive:
			report.Active++
		case model.BacklinkStatusLost:
			report.Lost++
		}
	}

	return report, nil
}
