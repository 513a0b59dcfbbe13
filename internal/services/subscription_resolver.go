package services

import (
	"context"
	"time"

	"github.com/contentloom/contentloom/internal/domain/plan"
	"github.com/contentloom/contentloom/internal/domain/subscription"
	"github.com/contentloom/contentloom/internal/domain/team"
	"github.com/contentloom/contentloom/internal/pkg/logger"
	"github.com/contentloom/contentloom/internal/pkg/metrics"
)

// SubscriptionResolverService implements subscription.Resolver
type SubscriptionResolverService struct {
	teams   team.Repository
	subs    subscription.Repository
	catalog plan.Catalog
	logger  *logger.Logger
	now     func() time.Time
}

// NewSubscriptionResolverService creates a new subscription resolver
func NewSubscriptionResolverService(teams team.Repository, subs subscription.Repository, catalog plan.Catalog, log *logger.Logger) subscription.Resolver {
	return &SubscriptionResolverService{
		teams:   teams,
		subs:    subs,
		catalog: catalog,
		logger:  log,
		now:     time.Now,
	}
}

// Resolve computes the team's access status.
//
// A team with no assigned plan is repaired to FREE before the status is
// composed, and an expired trial triggers the one-directional downgrade.
// The second call after an expiry finds no active subscription and returns
// the same downgraded state without writing anything.
func (s *SubscriptionResolverService) Resolve(ctx context.Context, teamID int64) (*subscription.AccessStatus, error) {
	t, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	p, err := s.resolvePlan(ctx, t)
	if err != nil {
		return nil, err
	}

	sub, err := s.subs.GetActive(ctx, teamID)
	if err != nil {
		return nil, err
	}

	// Baseline: every team has some plan, so access is granted unless a
	// trial check below revokes it.
	status := &subscription.AccessStatus{
		IsActive:     true,
		CanAccess:    true,
		Plan:         p,
		Subscription: sub,
	}

	if sub != nil && sub.Status == subscription.StatusTrial && sub.TrialEndDate != nil {
		now := s.now()
		if now.After(*sub.TrialEndDate) {
			if err := s.expireTrial(ctx, t, sub, now); err != nil {
				return nil, err
			}
			status.IsActive = false
			status.IsExpired = true
			status.CanAccess = false
		} else {
			status.IsTrial = true
			status.DaysRemaining = daysRemaining(*sub.TrialEndDate, now)
		}
	}

	return status, nil
}

// EnsurePlanAssigned repairs a missing plan assignment. Called at team
// creation so that Resolve rarely needs its self-healing write.
func (s *SubscriptionResolverService) EnsurePlanAssigned(ctx context.Context, teamID int64) error {
	t, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	_, err = s.resolvePlan(ctx, t)
	return err
}

// StartTrial opens a TRIAL subscription for the given plan, replacing any
// currently active subscription and moving the team onto the plan.
func (s *SubscriptionResolverService) StartTrial(ctx context.Context, teamID int64, planID string) (*subscription.Subscription, error) {
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

	now := s.now()
	trialEnd := now.AddDate(0, 0, p.TrialDays)
	sub := &subscription.Subscription{
		TeamID:       teamID,
		PlanID:       p.ID,
		Status:       subscription.StatusTrial,
		StartDate:    now,
		TrialEndDate: &trialEnd,
		IsActive:     true,
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, err
	}

	t.CurrentPlanID = p.ID
	t.IsTrialActive = true
	t.TrialEndsAt = &trialEnd
	if err := s.teams.Update(ctx, t); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"team_id":   teamID,
		"plan_id":   p.ID,
		"trial_end": trialEnd.Format(time.RFC3339),
	}).Info("Trial started")

	return sub, nil
}

// resolvePlan loads the team's current plan, repairing a missing
// assignment to FREE.
func (s *SubscriptionResolverService) resolvePlan(ctx context.Context, t *team.Team) (*plan.Plan, error) {
	if t.CurrentPlanID != "" {
		p, err := s.catalog.GetByID(ctx, t.CurrentPlanID)
		if err == nil {
			return p, nil
		}
		s.logger.WithFields(map[string]interface{}{
			"team_id": t.ID,
			"plan_id": t.CurrentPlanID,
		}).Warn("Team references unknown plan, repairing to FREE")
	}

	free, err := s.catalog.Free(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.teams.UpdatePlan(ctx, t.ID, free.ID); err != nil {
		return nil, err
	}
	t.CurrentPlanID = free.ID
	metrics.RecordPlanRepair()

	s.logger.WithFields(map[string]interface{}{
		"team_id": t.ID,
		"plan_id": free.ID,
	}).Info("Assigned default plan to team")

	return free, nil
}

// expireTrial performs the one-directional TRIAL to EXPIRED transition:
// the subscription row is flipped and the team is downgraded to FREE.
func (s *SubscriptionResolverService) expireTrial(ctx context.Context, t *team.Team, sub *subscription.Subscription, now time.Time) error {
	if err := s.subs.MarkExpired(ctx, sub.ID, now); err != nil {
		return err
	}
	sub.Status = subscription.StatusExpired
	sub.IsActive = false
	endedAt := now
	sub.EndDate = &endedAt

	free, err := s.catalog.Free(ctx)
	if err != nil {
		return err
	}
	if t.CurrentPlanID != free.ID {
		t.CurrentPlanID = free.ID
	}
	t.IsTrialActive = false
	if err := s.teams.Update(ctx, t); err != nil {
		return err
	}

	metrics.RecordTrialDowngrade()
	s.logger.WithFields(map[string]interface{}{
		"team_id":         t.ID,
		"subscription_id": sub.ID,
	}).Info("Trial expired, team downgraded to FREE")

	return nil
}

// daysRemaining is the whole number of days until end, rounded up and
// clamped at zero.
func daysRemaining(end, now time.Time) int {
	d := end.Sub(now)
	if d <= 0 {
		return 0
	}
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}
