package dto

import "github.com/contentloom/contentloom/internal/domain/plan"

// PlanDTO is the wire shape of a plan. Ceilings are reported as numbers;
// an unlimited ceiling comes through as the stored sentinel.
type PlanDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	TrialDays  int    `json:"trialDays"`

	MaxMembers  int64 `json:"maxMembers"`
	MaxBrands   int64 `json:"maxBrands"`
	MaxPersonas int64 `json:"maxPersonas"`
	MaxThemes   int64 `json:"maxThemes"`

	QuickContentCreations    int64 `json:"quickContentCreations"`
	CustomContentSuggestions int64 `json:"customContentSuggestions"`
	ContentPlans             int64 `json:"contentPlans"`
	ContentReviews           int64 `json:"contentReviews"`
}

// FromPlan converts a domain plan to its wire shape
func FromPlan(p *plan.Plan) *PlanDTO {
	if p == nil {
		return nil
	}
	return &PlanDTO{
		ID:                       p.ID,
		Name:                     string(p.Name),
		PriceCents:               p.PriceCents,
		TrialDays:                p.TrialDays,
		MaxMembers:               p.MaxMembers.Value(),
		MaxBrands:                p.MaxBrands.Value(),
		MaxPersonas:              p.MaxPersonas.Value(),
		MaxThemes:                p.MaxThemes.Value(),
		QuickContentCreations:    p.QuickContentCreations.Value(),
		CustomContentSuggestions: p.CustomContentSuggestions.Value(),
		ContentPlans:             p.ContentPlans.Value(),
		ContentReviews:           p.ContentReviews.Value(),
	}
}

// CheckoutRequest represents a checkout session request
type CheckoutRequest struct {
	PlanID string `json:"planId" validate:"required"`
}

// CheckoutResponse carries the payment redirect URL
type CheckoutResponse struct {
	URL string `json:"url"`
}

// StartTrialRequest represents a trial start request
type StartTrialRequest struct {
	PlanID string `json:"planId" validate:"required"`
}

// ActivatePlanRequest represents a plan activation request
type ActivatePlanRequest struct {
	PlanID string `json:"planId" validate:"required"`
}
