// Package model defines domain entities for the application.
package model

import (
	"errors"
	"time"
)

// Plan represents a subscription tier governing resource quotas.
type Plan string

// Known subscription plans.
const (
	PlanFree         Plan = "free"
	PlanStarter      Plan = "starter"
	PlanProfessional Plan = "professional"
	PlanEnterprise   Plan = "enterprise"
)

// ValidPlans contains all valid plan values.
var ValidPlans = []Plan{PlanFree, PlanStarter, PlanProfessional, PlanEnterprise}

// ErrUnknownPlan indicates a plan value outside the closed enumeration.
var ErrUnknownPlan = errors.New("unknown plan")

// ParsePlan converts a stored plan string into a Plan.
// Unknown values fail closed instead of propagating an undefined tier.
func ParsePlan(s string) (Plan, error) {
	switch Plan(s) {
	case PlanFree, PlanStarter, PlanProfessional, PlanEnterprise:
		return Plan(s), nil
	default:
		return "", ErrUnknownPlan
	}
}

// IsValid reports whether the plan is one of the known tiers.
func (p Plan) IsValid() bool {
	_, err := ParsePlan(string(p))
	return err == nil
}

// User represents an account holder.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	Plan      Plan      `json:"plan"`
	Company   string    `json:"company,omitempty"`
	CreatedIP string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserStats aggregates resource counts for the profile endpoint.
type UserStats struct {
	Projects      int64 `json:"projects"`
	MonitoredURLs int64 `json:"monitored_urls"`
	Backlinks     int64 `json:"backlinks"`
	Campaigns     int64 `json:"campaigns"`
}

// AuthContext holds authenticated request identity.
// This is injected into the request context by the auth middleware.
type AuthContext struct {
	UserID string
	Email  string
}
