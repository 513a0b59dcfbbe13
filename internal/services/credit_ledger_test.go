package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/contentloom/contentloom/internal/domain/credit"
	"github.com/contentloom/contentloom/internal/domain/team"
	"github.com/contentloom/contentloom/internal/pkg/logger"
	"github.com/contentloom/contentloom/internal/testutil"
)

func newTestLedger(t *testing.T) (credit.Ledger, *testutil.MockTeamRepository) {
	t.Helper()
	teams := testutil.NewMockTeamRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return NewCreditLedgerService(teams, log), teams
}

func TestCreditLedger_Decrement(t *testing.T) {
	ledger, teams := newTestLedger(t)
	ctx := context.Background()

	_ = teams.Create(ctx, &team.Team{
		Name: "acme",
		Credits: credit.Balance{
			credit.KindQuickContentCreations: 3,
			credit.KindContentReviews:        1,
		},
	})

	tests := []struct {
		name          string
		kind          credit.Kind
		amount        int64
		wantRemaining int64
		wantErr       bool
	}{
		{"first debit", credit.KindQuickContentCreations, 1, 2, false},
		{"default amount", credit.KindQuickContentCreations, 0, 1, false},
		{"clamped at zero", credit.KindContentReviews, 5, 0, false},
		{"already empty stays zero", credit.KindContentReviews, 1, 0, false},
		{"unknown kind", credit.Kind("bogus"), 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance, err := ledger.Decrement(ctx, 1, tt.kind, tt.amount)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decrement() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := balance.Remaining(tt.kind); got != tt.wantRemaining {
				t.Errorf("Decrement() remaining = %d, want %d", got, tt.wantRemaining)
			}
		})
	}
}

func TestCreditLedger_WriteFailureSurfaces(t *testing.T) {
	ledger, teams := newTestLedger(t)
	ctx := context.Background()

	_ = teams.Create(ctx, &team.Team{
		Name:    "acme",
		Credits: credit.Balance{credit.KindContentPlans: 2},
	})
	teams.DecrementError = fmt.Errorf("connection reset")

	if _, err := ledger.Decrement(ctx, 1, credit.KindContentPlans, 1); err == nil {
		t.Fatal("Decrement() should surface the store error")
	}

	// The balance is untouched when the write fails
	if got := teams.Teams[1].Credits.Remaining(credit.KindContentPlans); got != 2 {
		t.Errorf("balance after failed write = %d, want 2", got)
	}
}
