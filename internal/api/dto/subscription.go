package dto

import "github.com/contentloom/contentloom/internal/domain/subscription"

// SubscriptionStatusResponse is the resolver's answer on the wire. The
// client-side trial prompt keys off isExpired and canAccess.
type SubscriptionStatusResponse struct {
	IsActive      bool     `json:"isActive"`
	IsExpired     bool     `json:"isExpired"`
	IsTrial       bool     `json:"isTrial"`
	CanAccess     bool     `json:"canAccess"`
	DaysRemaining int      `json:"daysRemaining"`
	Plan          *PlanDTO `json:"plan"`
}

// FromAccessStatus converts a resolved status to its wire shape
func FromAccessStatus(st *subscription.AccessStatus) *SubscriptionStatusResponse {
	return &SubscriptionStatusResponse{
		IsActive:      st.IsActive,
		IsExpired:     st.IsExpired,
		IsTrial:       st.IsTrial,
		CanAccess:     st.CanAccess,
		DaysRemaining: st.DaysRemaining,
		Plan:          FromPlan(st.Plan),
	}
}

// SubscriptionDTO is the wire shape of a subscription row
type SubscriptionDTO struct {
	ID           int64  `json:"id"`
	PlanID       string `json:"planId"`
	Status       string `json:"status"`
	StartDate    string `json:"startDate"`
	TrialEndDate string `json:"trialEndDate,omitempty"`
	IsActive     bool   `json:"isActive"`
}

// FromSubscription converts a domain subscription to its wire shape
func FromSubscription(s *subscription.Subscription) *SubscriptionDTO {
	d := &SubscriptionDTO{
		ID:        s.ID,
		PlanID:    s.PlanID,
		Status:    s.Status,
		StartDate: s.StartDate.UTC().Format("2006-01-02T15:04:05Z"),
		IsActive:  s.IsActive,
	}
	if s.TrialEndDate != nil {
		d.TrialEndDate = s.TrialEndDate.UTC().Format("2006-01-02T15:04:05Z")
	}
	return d
}
