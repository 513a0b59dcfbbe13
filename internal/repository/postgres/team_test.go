package postgres

import (
	"context"
	"testing"

	"github.com/contentloom/contentloom/internal/domain/credit"
	"github.com/contentloom/contentloom/internal/domain/team"
	"github.com/contentloom/contentloom/internal/testutil"
)

func newTeamFixture(t *testing.T) (team.Repository, *team.Team) {
	t.Helper()
	db := testutil.NewTestDB(t)
	testutil.SeedPlans(t, db)

	repo := NewTeamRepository(db)
	tm := &team.Team{
		Name:          "Acme Marketing",
		CurrentPlanID: "plan-free",
		Credits: credit.Balance{
			credit.KindQuickContentCreations:    3,
			credit.KindCustomContentSuggestions: 3,
			credit.KindContentPlans:             1,
			credit.KindContentReviews:           1,
		},
	}
	if err := repo.Create(context.Background(), tm); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return repo, tm
}

func TestTeamRepository_CreateAndGet(t *testing.T) {
	repo, tm := newTeamFixture(t)
	ctx := context.Background()

	if tm.ID == 0 {
		t.Fatal("Create() did not set team ID")
	}

	got, err := repo.GetByID(ctx, tm.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "Acme Marketing" {
		t.Errorf("Name = %s, want Acme Marketing", got.Name)
	}
	if got.CurrentPlanID != "plan-free" {
		t.Errorf("CurrentPlanID = %s, want plan-free", got.CurrentPlanID)
	}
	if got.Credits.Remaining(credit.KindQuickContentCreations) != 3 {
		t.Errorf("quick credits = %d, want 3", got.Credits.Remaining(credit.KindQuickContentCreations))
	}

	if _, err := repo.GetByID(ctx, 999); err == nil {
		t.Error("GetByID() for unknown team should fail")
	}
}

func TestTeamRepository_UpdatePlan(t *testing.T) {
	repo, tm := newTeamFixture(t)
	ctx := context.Background()

	if err := repo.UpdatePlan(ctx, tm.ID, "plan-pro"); err != nil {
		t.Fatalf("UpdatePlan() error = %v", err)
	}

	got, err := repo.GetByID(ctx, tm.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.CurrentPlanID != "plan-pro" {
		t.Errorf("CurrentPlanID = %s, want plan-pro", got.CurrentPlanID)
	}

	if err := repo.UpdatePlan(ctx, 999, "plan-pro"); err == nil {
		t.Error("UpdatePlan() for unknown team should fail")
	}
}

func TestTeamRepository_DecrementCredit(t *testing.T) {
	repo, tm := newTeamFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		kind    credit.Kind
		amount  int64
		want    int64
		wantErr bool
	}{
		{
			name:   "first debit",
			kind:   credit.KindQuickContentCreations,
			amount: 1,
			want:   2,
		},
		{
			name:   "clamped at zero",
			kind:   credit.KindQuickContentCreations,
			amount: 10,
			want:   0,
		},
		{
			name:   "debit on empty balance stays zero",
			kind:   credit.KindQuickContentCreations,
			amount: 1,
			want:   0,
		},
		{
			name:    "unknown kind",
			kind:    credit.Kind("bogus"),
			amount:  1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance, err := repo.DecrementCredit(ctx, tm.ID, tt.kind, tt.amount)

			if (err != nil) != tt.wantErr {
				t.Errorf("DecrementCredit() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && balance.Remaining(tt.kind) != tt.want {
				t.Errorf("remaining = %d, want %d", balance.Remaining(tt.kind), tt.want)
			}
		})
	}
}
