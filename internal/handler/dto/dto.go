// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"github.com/linkvigia/linkvigia/internal/model"
)

// ErrorResponse is the error envelope returned by every failing endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// MessageResponse is a simple success acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// SignupRequest represents the request body for account registration.
type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries a session token and the authenticated user.
type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// UpdateProfileRequest represents the request body for profile updates.
type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Company string `json:"company"`
}

// ProfileResponse carries the user together with resource counts.
type ProfileResponse struct {
	User  *model.User      `json:"user"`
	Stats *model.UserStats `json:"stats"`
}

// SaveKeyRequest represents the request body for storing a credential.
type SaveKeyRequest struct {
	KeyType  string `json:"keyType"`
	KeyValue string `json:"keyValue"`
}

// CreateProjectRequest represents the request body for creating a project.
type CreateProjectRequest struct {
	Name   string   `json:"name"`
	Domain string   `json:"domain"`
	URLs   []string `json:"urls,omitempty"`
}

// ProjectResponse carries a provisioned project with its monitored URLs.
type ProjectResponse struct {
	Project *model.Project        `json:"project"`
	URLs    []*model.MonitoredURL `json:"urls"`
}

// ProjectListResponse carries the caller's projects.
type ProjectListResponse struct {
	Projects []*model.ProjectSummary `json:"projects"`
}

// BacklinkListResponse carries a project's backlinks and status counts.
type BacklinkListResponse struct {
	Backlinks []*model.Backlink `json:"backlinks"`
	Total     int               `json:"total"`
	Active    int               `json:"active"`
	Lost      int               `json:"lost"`
}

// CreateCampaignRequest represents the request body for creating a campaign.
type CreateCampaignRequest struct {
	Name     string `json:"name"`
	Subject  string `json:"subject,omitempty"`
	Template string `json:"template,omitempty"`
}

// CampaignResponse carries a single campaign.
type CampaignResponse struct {
	Campaign *model.Campaign `json:"campaign"`
}

// CampaignListResponse carries the caller's campaigns.
type CampaignListResponse struct {
	Campaigns []*model.Campaign `json:"campaigns"`
}
