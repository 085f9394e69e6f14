package model

import "time"

// Backlink status values.
const (
	BacklinkStatusActive = "active"
	BacklinkStatusLost   = "lost"
)

// Backlink represents a discovered inbound link pointing at a
// monitored project. Rows are written by an external discovery
// pipeline; this service only aggregates them.
type Backlink struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	SourceURL       string    `json:"source_url"`
	TargetURL       string    `json:"target_url"`
	AnchorText      string    `json:"anchor_text,omitempty"`
	DomainAuthority int       `json:"domain_authority"`
	PageAuthority   int       `json:"page_authority"`
	Status          string    `json:"status"`
	FirstSeen       time.Time `json:"first_seen"`
	LastSeen        time.Time `json:"last_seen"`
}
