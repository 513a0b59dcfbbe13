package subscription

import (
	"time"

	"github.com/contentloom/contentloom/internal/domain/plan"
)

// Status values for a subscription row
const (
	StatusTrial   = "TRIAL"
	StatusActive  = "ACTIVE"
	StatusExpired = "EXPIRED"
)

// Subscription is one row of a team's append-only plan-assignment history.
// At most one row per team has IsActive=true at any time.
type Subscription struct {
	ID           int64      `json:"id"`
	TeamID       int64      `json:"team_id"`
	PlanID       string     `json:"plan_id"`
	Status       string     `json:"status"`
	StartDate    time.Time  `json:"start_date"`
	TrialEndDate *time.Time `json:"trial_end_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AccessStatus is the resolver's answer for a team
type AccessStatus struct {
	IsActive      bool          `json:"isActive"`
	IsExpired     bool          `json:"isExpired"`
	IsTrial       bool          `json:"isTrial"`
	CanAccess     bool          `json:"canAccess"`
	DaysRemaining int           `json:"daysRemaining"`
	Plan          *plan.Plan    `json:"plan"`
	Subscription  *Subscription `json:"subscription,omitempty"`
}
