package team

import (
	"time"

	"github.com/contentloom/contentloom/internal/domain/credit"
)

// Team is the billing/tenant unit: all quotas and credits are scoped to it
type Team struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	CurrentPlanID string         `json:"current_plan_id"`
	Credits       credit.Balance `json:"credits"`
	IsTrialActive bool           `json:"is_trial_active"`
	TrialEndsAt   *time.Time     `json:"trial_ends_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
