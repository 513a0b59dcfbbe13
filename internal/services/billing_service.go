package services

import (
	"context"
	"fmt"
	"time"

	stripe "github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"

	"github.com/contentloom/contentloom/internal/config"
	"github.com/contentloom/contentloom/internal/domain/plan"
	"github.com/contentloom/contentloom/internal/domain/subscription"
	"github.com/contentloom/contentloom/internal/domain/team"
	"github.com/contentloom/contentloom/internal/pkg/errors"
	"github.com/contentloom/contentloom/internal/pkg/logger"
)

// BillingService handles plan purchases and plan changes
type BillingService struct {
	catalog  plan.Catalog
	teams    team.Repository
	subs     subscription.Repository
	resolver subscription.Resolver
	cfg      config.BillingConfig
	logger   *logger.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(catalog plan.Catalog, teams team.Repository, subs subscription.Repository, resolver subscription.Resolver, cfg config.BillingConfig, log *logger.Logger) *BillingService {
	stripe.Key = cfg.StripeAPIKey
	return &BillingService{
		catalog:  catalog,
		teams:    teams,
		subs:     subs,
		resolver: resolver,
		cfg:      cfg,
		logger:   log,
	}
}

// ListPlans retrieves the active plan catalog for display
func (s *BillingService) ListPlans(ctx context.Context) ([]*plan.Plan, error) {
	return s.catalog.ListActive(ctx)
}

// CreateCheckout opens a Stripe Checkout session for a paid plan and
// returns its redirect URL.
func (s *BillingService) CreateCheckout(ctx context.Context, teamID int64, planID string) (string, error) {
	p, err := s.catalog.GetByID(ctx, planID)
	if err != nil {
		return "", err
	}
	if p.PriceCents <= 0 {
		return "", errors.BadRequest("Plan is free, no checkout required")
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.cfg.SuccessURL),
		CancelURL:  stripe.String(s.cfg.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(p.PriceCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("ContentLoom %s plan", p.Name)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"team_id": fmt.Sprintf("%d", teamID),
			"plan_id": p.ID,
		},
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		s.logger.ErrorWithErr(err, "Stripe checkout session failed")
		return "", errors.PaymentError("Failed to create checkout session", err)
	}

	return sess.URL, nil
}

// ActivatePlan moves a team onto a plan with an ACTIVE subscription,
// called after a completed checkout. Credits are topped up to the new
// plan's allowance.
func (s *BillingService) ActivatePlan(ctx context.Context, teamID int64, planID string) (*subscription.Subscription, error) {
	p, err := s.catalog.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	t, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if err := s.subs.DeactivateAll(ctx, teamID); err != nil {
		return nil, err
	}

	sub := &subscription.Subscription{
		TeamID:   teamID,
		PlanID:   p.ID,
		Status:   subscription.StatusActive,
		IsActive: true,
	}
	sub.StartDate = time.Now()
	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, err
	}

	t.CurrentPlanID = p.ID
	t.IsTrialActive = false
	t.TrialEndsAt = nil
	if err := s.teams.Update(ctx, t); err != nil {
		return nil, err
	}
	// Update does not touch credit columns; the reset to the new plan's
	// allowance goes through UpdateCredits.
	if err := s.teams.UpdateCredits(ctx, t.ID, startingCredits(p)); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"team_id": teamID,
		"plan_id": p.ID,
	}).Info("Plan activated")

	return sub, nil
}

// StartTrial opens a trial on the named plan
func (s *BillingService) StartTrial(ctx context.Context, teamID int64, planID string) (*subscription.Subscription, error) {
	return s.resolver.StartTrial(ctx, teamID, planID)
}
