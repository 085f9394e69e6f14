// Package quota decides whether a new resource may be created
// given a user's plan and current usage counts.
package quota

import (
	"errors"
	"fmt"
	"strings"

	"github.com/linkvigia/linkvigia/internal/model"
)

// Unlimited marks a plan without a project cap.
const Unlimited = -1

// MaxFreeAccountsPerIP is the number of free-plan accounts a single
// source IP may register before further free signups are rejected.
const MaxFreeAccountsPerIP = 2

// projectLimits maps each plan to its maximum project count.
var projectLimits = map[model.Plan]int{
	model.PlanFree:         1,
	model.PlanStarter:      10,
	model.PlanProfessional: 30,
	model.PlanEnterprise:   Unlimited,
}

// ErrIPLimitReached indicates the free-accounts-per-IP limit was hit.
var ErrIPLimitReached = errors.New(
	"Limite de contas gratuitas atingido para este IP. Faça upgrade para um plano pago para criar mais contas.")

// LimitError indicates a plan's project quota has been reached.
// The message names the current plan so the caller knows what to upgrade.
type LimitError struct {
	Plan  model.Plan
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf(
		"Você atingiu o limite de %d projeto(s) do plano %s. Faça upgrade para criar mais projetos.",
		e.Limit, strings.ToUpper(string(e.Plan)))
}

// ProjectLimit returns the maximum project count for a plan.
// Unknown plans fail closed with a zero limit.
func ProjectLimit(plan model.Plan) (int, error) {
	limit, ok := projectLimits[plan]
	if !ok {
		return 0, fmt.Errorf("project limit: %w: %q", model.ErrUnknownPlan, plan)
	}
	return limit, nil
}

// CheckProject decides whether a user on the given plan, currently
// owning current projects, may create one more.
func CheckProject(plan model.Plan, current int64) error {
	limit, err := ProjectLimit(plan)
	if err != nil {
		return err
	}
	if limit == Unlimited {
		return nil
	}
	if current >= int64(limit) {
		return &LimitError{Plan: plan, Limit: limit}
	}
	return nil
}

// CheckSignupIP decides whether a new account on the given plan may be
// registered from an IP that already owns existingFree free accounts.
// Only free-plan signups are IP-limited.
func CheckSignupIP(plan model.Plan, existingFree int64) error {
	if plan != model.PlanFree {
		return nil
	}
	if existingFree >= MaxFreeAccountsPerIP {
		return ErrIPLimitReached
	}
	return nil
}
