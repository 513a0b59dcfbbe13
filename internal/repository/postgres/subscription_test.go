package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/contentloom/contentloom/internal/domain/subscription"
	"github.com/contentloom/contentloom/internal/domain/team"
	"github.com/contentloom/contentloom/internal/testutil"
)

func newSubscriptionFixture(t *testing.T) (subscription.Repository, *sql.DB, int64) {
	t.Helper()
	db := testutil.NewTestDB(t)
	testutil.SeedPlans(t, db)

	teams := NewTeamRepository(db)
	tm := &team.Team{Name: "Acme Marketing", CurrentPlanID: "plan-free"}
	if err := teams.Create(context.Background(), tm); err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	return NewSubscriptionRepository(db), db, tm.ID
}

func newTrial(teamID int64, start time.Time, trialDays int) *subscription.Subscription {
	trialEnd := start.AddDate(0, 0, trialDays)
	return &subscription.Subscription{
		TeamID:       teamID,
		PlanID:       "plan-pro",
		Status:       subscription.StatusTrial,
		StartDate:    start,
		TrialEndDate: &trialEnd,
		IsActive:     true,
	}
}

func TestSubscriptionRepository_CreateAndGetActive(t *testing.T) {
	repo, _, teamID := newSubscriptionFixture(t)
	ctx := context.Background()

	got, err := repo.GetActive(ctx, teamID)
	if err != nil {
		t.Fatalf("GetActive() error = %v", err)
	}
	if got != nil {
		t.Fatal("GetActive() with no rows should return nil")
	}

	now := time.Now().Truncate(time.Second)
	sub := newTrial(teamID, now, 14)
	if err := repo.Create(ctx, sub); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if sub.ID == 0 {
		t.Fatal("Create() did not set subscription ID")
	}

	got, err = repo.GetActive(ctx, teamID)
	if err != nil {
		t.Fatalf("GetActive() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetActive() returned nil for active subscription")
	}
	if got.ID != sub.ID {
		t.Errorf("ID = %d, want %d", got.ID, sub.ID)
	}
	if got.Status != subscription.StatusTrial {
		t.Errorf("Status = %s, want %s", got.Status, subscription.StatusTrial)
	}
	if got.TrialEndDate == nil || !got.TrialEndDate.Equal(now.AddDate(0, 0, 14)) {
		t.Errorf("TrialEndDate = %v, want %v", got.TrialEndDate, now.AddDate(0, 0, 14))
	}
}

func TestSubscriptionRepository_GetActiveReturnsLatest(t *testing.T) {
	repo, _, teamID := newSubscriptionFixture(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	older := newTrial(teamID, now.Add(-48*time.Hour), 14)
	newer := newTrial(teamID, now, 14)
	for _, s := range []*subscription.Subscription{older, newer} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := repo.GetActive(ctx, teamID)
	if err != nil {
		t.Fatalf("GetActive() error = %v", err)
	}
	if got == nil || got.ID != newer.ID {
		t.Errorf("GetActive() = %+v, want subscription %d", got, newer.ID)
	}
}

func TestSubscriptionRepository_MarkExpired(t *testing.T) {
	repo, _, teamID := newSubscriptionFixture(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	sub := newTrial(teamID, now.Add(-15*24*time.Hour), 14)
	if err := repo.Create(ctx, sub); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.MarkExpired(ctx, sub.ID, now); err != nil {
		t.Fatalf("MarkExpired() error = %v", err)
	}

	got, err := repo.GetActive(ctx, teamID)
	if err != nil {
		t.Fatalf("GetActive() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetActive() after expiry = %+v, want nil", got)
	}

	if err := repo.MarkExpired(ctx, 999, now); err == nil {
		t.Error("MarkExpired() for unknown subscription should fail")
	}
}

func TestSubscriptionRepository_DeactivateAll(t *testing.T) {
	repo, _, teamID := newSubscriptionFixture(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	if err := repo.Create(ctx, newTrial(teamID, now, 14)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.DeactivateAll(ctx, teamID); err != nil {
		t.Fatalf("DeactivateAll() error = %v", err)
	}

	got, err := repo.GetActive(ctx, teamID)
	if err != nil {
		t.Fatalf("GetActive() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetActive() after deactivation = %+v, want nil", got)
	}
}

func TestSubscriptionRepository_ListActiveTrials(t *testing.T) {
	repo, db, teamID := newSubscriptionFixture(t)
	ctx := context.Background()

	teams := NewTeamRepository(db)
	other := &team.Team{Name: "Other Co", CurrentPlanID: "plan-basic"}
	if err := teams.Create(ctx, other); err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	now := time.Now().Truncate(time.Second)
	if err := repo.Create(ctx, newTrial(teamID, now, 14)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	paid := &subscription.Subscription{
		TeamID:    other.ID,
		PlanID:    "plan-basic",
		Status:    subscription.StatusActive,
		StartDate: now,
		IsActive:  true,
	}
	if err := repo.Create(ctx, paid); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	ids, err := repo.ListActiveTrials(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListActiveTrials() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != teamID {
		t.Errorf("ListActiveTrials() = %v, want [%d]", ids, teamID)
	}
}
