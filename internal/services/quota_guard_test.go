package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/contentloom/contentloom/internal/domain/credit"
	"github.com/contentloom/contentloom/internal/domain/plan"
	"github.com/contentloom/contentloom/internal/domain/quota"
	"github.com/contentloom/contentloom/internal/domain/subscription"
	"github.com/contentloom/contentloom/internal/domain/team"
	"github.com/contentloom/contentloom/internal/pkg/logger"
	"github.com/contentloom/contentloom/internal/testutil"
)

func newTestGuard(t *testing.T) (quota.Guard, *testutil.MockTeamRepository, *testutil.MockSubscriptionRepository, *testutil.MockResourceCounter) {
	t.Helper()
	plans := testutil.NewMockPlanRepository()
	testPlans(plans)
	teams := testutil.NewMockTeamRepository()
	subs := testutil.NewMockSubscriptionRepository()
	counter := testutil.NewMockResourceCounter()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	catalog := NewPlanCatalogService(plans, log)
	resolver := NewSubscriptionResolverService(teams, subs, catalog, log)

	return NewQuotaGuardService(resolver, counter, log), teams, subs, counter
}

func TestQuotaGuard_CanPerform(t *testing.T) {
	guard, teams, _, _ := newTestGuard(t)
	ctx := context.Background()
	_ = teams.Create(ctx, &team.Team{Name: "acme", CurrentPlanID: "plan-free"})

	tests := []struct {
		name         string
		kind         credit.Kind
		currentUsage int64
		wantAllowed  bool
		wantLimit    int64
		wantReason   string
	}{
		{
			name:         "under limit",
			kind:         credit.KindQuickContentCreations,
			currentUsage: 2,
			wantAllowed:  true,
			wantLimit:    3,
		},
		{
			name:         "at limit",
			kind:         credit.KindQuickContentCreations,
			currentUsage: 3,
			wantAllowed:  false,
			wantLimit:    3,
			wantReason:   "limit of 3",
		},
		{
			name:         "over limit",
			kind:         credit.KindContentReviews,
			currentUsage: 5,
			wantAllowed:  false,
			wantLimit:    1,
			wantReason:   "limit of 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := guard.CanPerform(ctx, 1, tt.kind, tt.currentUsage)
			if err != nil {
				t.Fatalf("CanPerform() error = %v", err)
			}
			if d.Allowed != tt.wantAllowed {
				t.Errorf("CanPerform() allowed = %v, want %v", d.Allowed, tt.wantAllowed)
			}
			if d.Limit == nil || *d.Limit != tt.wantLimit {
				t.Errorf("CanPerform() limit = %v, want %d", d.Limit, tt.wantLimit)
			}
			if tt.wantReason != "" && !strings.Contains(d.Reason, tt.wantReason) {
				t.Errorf("CanPerform() reason = %q, want it to name the limit %q", d.Reason, tt.wantReason)
			}
		})
	}
}

func TestQuotaGuard_UnlimitedPlan(t *testing.T) {
	plans := testutil.NewMockPlanRepository()
	testPlans(plans)
	plans.Seed(&plan.Plan{
		ID:                    "plan-enterprise",
		Name:                  plan.NameEnterprise,
		IsActive:              true,
		MaxMembers:            plan.Unlimited(),
		MaxBrands:             plan.Unlimited(),
		MaxPersonas:           plan.Unlimited(),
		MaxThemes:             plan.Unlimited(),
		QuickContentCreations: plan.Unlimited(),
	})
	teams := testutil.NewMockTeamRepository()
	subs := testutil.NewMockSubscriptionRepository()
	counter := testutil.NewMockResourceCounter()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	catalog := NewPlanCatalogService(plans, log)
	resolver := NewSubscriptionResolverService(teams, subs, catalog, log)
	guard := NewQuotaGuardService(resolver, counter, log)

	ctx := context.Background()
	_ = teams.Create(ctx, &team.Team{Name: "acme", CurrentPlanID: "plan-enterprise"})
	counter.Counts[quota.ResourceBrands] = 100000

	d, err := guard.CanCreateBrand(ctx, 1)
	if err != nil {
		t.Fatalf("CanCreateBrand() error = %v", err)
	}
	if !d.Allowed {
		t.Errorf("CanCreateBrand() = %+v, want allowed on unlimited plan", d)
	}
	if d.Limit != nil {
		t.Errorf("unlimited decision echoes a limit: %d", *d.Limit)
	}

	// Extreme usage counts never reach an unlimited ceiling
	big, err := guard.CanPerform(ctx, 1, credit.KindQuickContentCreations, 1<<40)
	if err != nil {
		t.Fatalf("CanPerform() error = %v", err)
	}
	if !big.Allowed {
		t.Errorf("CanPerform() at huge usage on unlimited plan should allow, got %+v", big)
	}
}

func TestQuotaGuard_DeniesWhenTrialExpired(t *testing.T) {
	guard, teams, subs, counter := newTestGuard(t)
	ctx := context.Background()
	_ = teams.Create(ctx, &team.Team{Name: "acme", CurrentPlanID: "plan-pro", IsTrialActive: true})

	trialEnd := time.Now().Add(-time.Hour)
	_ = subs.Create(ctx, &subscription.Subscription{
		TeamID:       1,
		PlanID:       "plan-pro",
		Status:       subscription.StatusTrial,
		StartDate:    time.Now().Add(-14 * 24 * time.Hour),
		TrialEndDate: &trialEnd,
		IsActive:     true,
	})
	counter.Counts[quota.ResourceBrands] = 0

	d, err := guard.CanCreateBrand(ctx, 1)
	if err != nil {
		t.Fatalf("CanCreateBrand() error = %v", err)
	}
	if d.Allowed {
		t.Error("CanCreateBrand() allowed despite expired trial")
	}
	if d.Reason == "" {
		t.Error("denial carries no reason")
	}
}

func TestQuotaGuard_CountedResources(t *testing.T) {
	guard, teams, _, counter := newTestGuard(t)
	ctx := context.Background()
	_ = teams.Create(ctx, &team.Team{Name: "acme", CurrentPlanID: "plan-free"})

	tests := []struct {
		name        string
		resource    quota.Resource
		count       int64
		check       func(context.Context, int64) (quota.Decision, error)
		wantAllowed bool
	}{
		{"first member fits", quota.ResourceMembers, 0, guard.CanAddMembers, true},
		{"member limit reached", quota.ResourceMembers, 1, guard.CanAddMembers, false},
		{"first brand fits", quota.ResourceBrands, 0, guard.CanCreateBrand, true},
		{"brand limit reached", quota.ResourceBrands, 1, guard.CanCreateBrand, false},
		{"first persona fits", quota.ResourcePersonas, 0, guard.CanCreatePersona, true},
		{"theme limit reached", quota.ResourceThemes, 1, guard.CanCreateTheme, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter.Counts[tt.resource] = tt.count
			d, err := tt.check(ctx, 1)
			if err != nil {
				t.Fatalf("check error = %v", err)
			}
			if d.Allowed != tt.wantAllowed {
				t.Errorf("allowed = %v, want %v (count %d)", d.Allowed, tt.wantAllowed, tt.count)
			}
		})
	}
}

func TestQuotaGuard_UnknownKind(t *testing.T) {
	guard, teams, _, _ := newTestGuard(t)
	ctx := context.Background()
	_ = teams.Create(ctx, &team.Team{Name: "acme", CurrentPlanID: "plan-free"})

	if _, err := guard.CanPerform(ctx, 1, credit.Kind("bogus"), 0); err == nil {
		t.Error("CanPerform() with unknown kind should fail")
	}
}

func TestLimitAllows(t *testing.T) {
	if plan.Unlimited().Allows(1 << 50) != true {
		t.Error("unlimited limit should allow any usage")
	}
	if plan.Finite(3).Allows(3) {
		t.Error("finite limit should deny at the ceiling")
	}
	if !plan.Finite(3).Allows(2) {
		t.Error("finite limit should allow under the ceiling")
	}
}
