package services

import (
	"context"
	"testing"
	"time"

	"github.com/contentloom/contentloom/internal/domain/plan"
	"github.com/contentloom/contentloom/internal/domain/subscription"
	"github.com/contentloom/contentloom/internal/domain/team"
	"github.com/contentloom/contentloom/internal/pkg/logger"
	"github.com/contentloom/contentloom/internal/testutil"
)

func testPlans(plans *testutil.MockPlanRepository) (*plan.Plan, *plan.Plan) {
	free := plans.Seed(&plan.Plan{
		ID:                       "plan-free",
		Name:                     plan.NameFree,
		IsActive:                 true,
		MaxMembers:               plan.Finite(1),
		MaxBrands:                plan.Finite(1),
		MaxPersonas:              plan.Finite(1),
		MaxThemes:                plan.Finite(1),
		QuickContentCreations:    plan.Finite(3),
		CustomContentSuggestions: plan.Finite(3),
		ContentPlans:             plan.Finite(1),
		ContentReviews:           plan.Finite(1),
	})
	pro := plans.Seed(&plan.Plan{
		ID:                       "plan-pro",
		Name:                     plan.NamePro,
		PriceCents:               9900,
		TrialDays:                14,
		IsActive:                 true,
		MaxMembers:               plan.Finite(10),
		MaxBrands:                plan.Finite(10),
		MaxPersonas:              plan.Finite(20),
		MaxThemes:                plan.Finite(20),
		QuickContentCreations:    plan.Finite(500),
		CustomContentSuggestions: plan.Finite(500),
		ContentPlans:             plan.Finite(100),
		ContentReviews:           plan.Finite(200),
	})
	return free, pro
}

func newTestResolver(t *testing.T) (*SubscriptionResolverService, *testutil.MockTeamRepository, *testutil.MockSubscriptionRepository, *testutil.MockPlanRepository) {
	t.Helper()
	plans := testutil.NewMockPlanRepository()
	testPlans(plans)
	teams := testutil.NewMockTeamRepository()
	subs := testutil.NewMockSubscriptionRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	catalog := NewPlanCatalogService(plans, log)

	r := NewSubscriptionResolverService(teams, subs, catalog, log).(*SubscriptionResolverService)
	return r, teams, subs, plans
}

func TestSubscriptionResolver_FreeDefault(t *testing.T) {
	r, teams, _, _ := newTestResolver(t)
	ctx := context.Background()

	_ = teams.Create(ctx, &team.Team{Name: "acme"})

	st, err := r.Resolve(ctx, 1)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if !st.IsActive || st.IsExpired || st.IsTrial || !st.CanAccess {
		t.Errorf("Resolve() = %+v, want baseline access", st)
	}
	if st.Plan.Name != plan.NameFree {
		t.Errorf("Resolve() plan = %s, want FREE", st.Plan.Name)
	}
	if teams.Teams[1].CurrentPlanID != "plan-free" {
		t.Errorf("team plan = %q, want plan-free", teams.Teams[1].CurrentPlanID)
	}

	// Second call must not repair again
	writes := teams.WriteCount
	if _, err := r.Resolve(ctx, 1); err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}
	if teams.WriteCount != writes {
		t.Errorf("second Resolve() wrote %d more times, want 0", teams.WriteCount-writes)
	}
}

func TestSubscriptionResolver_ActiveTrial(t *testing.T) {
	r, teams, subs, _ := newTestResolver(t)
	ctx := context.Background()

	_ = teams.Create(ctx, &team.Team{Name: "acme", CurrentPlanID: "plan-pro"})
	now := time.Now()
	r.now = func() time.Time { return now }

	trialEnd := now.Add(72 * time.Hour)
	_ = subs.Create(ctx, &subscription.Subscription{
		TeamID:       1,
		PlanID:       "plan-pro",
		Status:       subscription.StatusTrial,
		StartDate:    now.Add(-24 * time.Hour),
		TrialEndDate: &trialEnd,
		IsActive:     true,
	})

	st, err := r.Resolve(ctx, 1)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if !st.IsTrial || st.IsExpired || !st.CanAccess {
		t.Errorf("Resolve() = %+v, want active trial", st)
	}
	if st.DaysRemaining != 3 {
		t.Errorf("DaysRemaining = %d, want 3", st.DaysRemaining)
	}
}

func TestSubscriptionResolver_ExpiredTrial(t *testing.T) {
	r, teams, subs, _ := newTestResolver(t)
	ctx := context.Background()

	_ = teams.Create(ctx, &team.Team{Name: "acme", CurrentPlanID: "plan-pro", IsTrialActive: true})
	now := time.Now()
	r.now = func() time.Time { return now }

	trialEnd := now.Add(-24 * time.Hour)
	_ = subs.Create(ctx, &subscription.Subscription{
		TeamID:       1,
		PlanID:       "plan-pro",
		Status:       subscription.StatusTrial,
		StartDate:    now.Add(-15 * 24 * time.Hour),
		TrialEndDate: &trialEnd,
		IsActive:     true,
	})

	st, err := r.Resolve(ctx, 1)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if st.IsTrial || !st.IsExpired || st.CanAccess {
		t.Errorf("Resolve() = %+v, want expired trial", st)
	}
	if teams.Teams[1].CurrentPlanID != "plan-free" {
		t.Errorf("team plan = %q, want plan-free after downgrade", teams.Teams[1].CurrentPlanID)
	}
	if teams.Teams[1].IsTrialActive {
		t.Error("team still flagged as trialing after downgrade")
	}

	sub := subs.Subscriptions[1]
	if sub.Status != subscription.StatusExpired || sub.IsActive {
		t.Errorf("subscription = %+v, want EXPIRED inactive", sub)
	}

	// The downgrade is one-directional: a second resolve finds no active
	// subscription and performs no writes.
	teamWrites, subWrites := teams.WriteCount, subs.WriteCount
	st2, err := r.Resolve(ctx, 1)
	if err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}
	if teams.WriteCount != teamWrites || subs.WriteCount != subWrites {
		t.Error("second Resolve() after expiry wrote again")
	}
	if st2.Plan.Name != plan.NameFree {
		t.Errorf("second Resolve() plan = %s, want FREE", st2.Plan.Name)
	}
}

func TestSubscriptionResolver_DaysRemainingRoundsUp(t *testing.T) {
	r, teams, subs, _ := newTestResolver(t)
	ctx := context.Background()

	_ = teams.Create(ctx, &team.Team{Name: "acme", CurrentPlanID: "plan-pro"})
	now := time.Now()
	r.now = func() time.Time { return now }

	// 2 days and one hour left rounds up to 3
	trialEnd := now.Add(49 * time.Hour)
	_ = subs.Create(ctx, &subscription.Subscription{
		TeamID:       1,
		PlanID:       "plan-pro",
		Status:       subscription.StatusTrial,
		StartDate:    now,
		TrialEndDate: &trialEnd,
		IsActive:     true,
	})

	st, err := r.Resolve(ctx, 1)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if st.DaysRemaining != 3 {
		t.Errorf("DaysRemaining = %d, want 3", st.DaysRemaining)
	}
}

func TestSubscriptionResolver_StartTrial(t *testing.T) {
	r, teams, subs, _ := newTestResolver(t)
	ctx := context.Background()

	_ = teams.Create(ctx, &team.Team{Name: "acme", CurrentPlanID: "plan-free"})

	sub, err := r.StartTrial(ctx, 1, "plan-pro")
	if err != nil {
		t.Fatalf("StartTrial() error = %v", err)
	}

	if sub.Status != subscription.StatusTrial || !sub.IsActive {
		t.Errorf("StartTrial() = %+v, want active TRIAL", sub)
	}
	if sub.TrialEndDate == nil {
		t.Fatal("StartTrial() trial end not set")
	}
	if teams.Teams[1].CurrentPlanID != "plan-pro" {
		t.Errorf("team plan = %q, want plan-pro", teams.Teams[1].CurrentPlanID)
	}

	// Starting a second trial replaces the first
	sub2, err := r.StartTrial(ctx, 1, "plan-pro")
	if err != nil {
		t.Fatalf("second StartTrial() error = %v", err)
	}
	active, _ := subs.GetActive(ctx, 1)
	if active == nil || active.ID != sub2.ID {
		t.Error("second StartTrial() did not replace the active subscription")
	}
}

func TestSubscriptionResolver_UnknownTeam(t *testing.T) {
	r, _, _, _ := newTestResolver(t)

	if _, err := r.Resolve(context.Background(), 42); err == nil {
		t.Error("Resolve() on unknown team should fail")
	}
}
