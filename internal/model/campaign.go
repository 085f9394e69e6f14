package model

import "time"

// Campaign status values.
const (
	CampaignStatusDraft  = "draft"
	CampaignStatusActive = "active"
)

// Campaign represents an outreach email campaign. Delivery is handled
// by an external worker; this service only owns the rows.
type Campaign struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject,omitempty"`
	Template  string    `json:"template,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
