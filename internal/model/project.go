package model

import "time"

// MonitoredURLStatus values for monitored_urls.status.
const (
	URLStatusActive = "active"
	URLStatusPaused = "paused"
)

// Project represents a monitored website owned by a user.
type Project struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MonitoredURL represents a single URL tracked under a project.
// Created in bulk at project-creation time.
type MonitoredURL struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"project_id"`
	URL       string     `json:"url"`
	Status    string     `json:"status"`
	LastCheck *time.Time `json:"last_check,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ProjectSummary is a project with its monitored-URL count,
// used by the project listing.
type ProjectSummary struct {
	Project
	URLCount int64 `json:"url_count"`
}
