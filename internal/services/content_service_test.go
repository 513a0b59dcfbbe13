package services

import (
	"context"
	"fmt"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/contentloom/contentloom/internal/domain/credit"
	"github.com/contentloom/contentloom/internal/domain/team"
	"github.com/contentloom/contentloom/internal/pkg/errors"
	"github.com/contentloom/contentloom/internal/pkg/logger"
	"github.com/contentloom/contentloom/internal/testutil"
)

type fakeCompleter struct {
	reply string
	err   error
	calls int
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.reply}},
		},
	}, nil
}

func newTestContentService(t *testing.T) (*ContentService, *fakeCompleter, *testutil.MockTeamRepository) {
	t.Helper()
	plans := testutil.NewMockPlanRepository()
	testPlans(plans)
	teams := testutil.NewMockTeamRepository()
	subs := testutil.NewMockSubscriptionRepository()
	counter := testutil.NewMockResourceCounter()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	catalog := NewPlanCatalogService(plans, log)
	resolver := NewSubscriptionResolverService(teams, subs, catalog, log)
	guard := NewQuotaGuardService(resolver, counter, log)
	ledger := NewCreditLedgerService(teams, log)

	ai := &fakeCompleter{reply: "Ten ways to launch your brand"}
	svc := &ContentService{
		guard:   guard,
		ledger:  ledger,
		teams:   teams,
		catalog: catalog,
		ai:      ai,
		model:   "test-model",
		logger:  log,
	}
	return svc, ai, teams
}

func TestContentService_QuickContent(t *testing.T) {
	svc, ai, teams := newTestContentService(t)
	ctx := context.Background()

	_ = teams.Create(ctx, &team.Team{
		Name:          "acme",
		CurrentPlanID: "plan-free",
		Credits:       credit.Balance{credit.KindQuickContentCreations: 3},
	})

	res, err := svc.QuickContent(ctx, 1, "launch ideas for a coffee brand")
	if err != nil {
		t.Fatalf("QuickContent() error = %v", err)
	}
	if res.Text == "" {
		t.Error("QuickContent() returned empty text")
	}
	if res.Warning != "" {
		t.Errorf("QuickContent() warning = %q, want none", res.Warning)
	}
	if got := res.Credits.Remaining(credit.KindQuickContentCreations); got != 2 {
		t.Errorf("remaining credits = %d, want 2", got)
	}
	if ai.calls != 1 {
		t.Errorf("completer called %d times, want 1", ai.calls)
	}
}

func TestContentService_DeniedWhenOutOfCredits(t *testing.T) {
	svc, ai, teams := newTestContentService(t)
	ctx := context.Background()

	// FREE allows 3 quick creations; all consumed
	_ = teams.Create(ctx, &team.Team{
		Name:          "acme",
		CurrentPlanID: "plan-free",
		Credits:       credit.Balance{credit.KindQuickContentCreations: 0},
	})

	_, err := svc.QuickContent(ctx, 1, "one more")
	if err == nil {
		t.Fatal("QuickContent() should deny when credits are exhausted")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeQuotaExceeded {
		t.Errorf("QuickContent() error = %v, want quota exceeded", err)
	}
	if ai.calls != 0 {
		t.Error("completer was called despite quota denial")
	}
}

func TestContentService_FailedDebitIsNonFatal(t *testing.T) {
	svc, _, teams := newTestContentService(t)
	ctx := context.Background()

	_ = teams.Create(ctx, &team.Team{
		Name:          "acme",
		CurrentPlanID: "plan-free",
		Credits:       credit.Balance{credit.KindContentReviews: 1},
	})

	// The generation happens, then the debit fails
	teams.DecrementError = fmt.Errorf("connection reset")

	res, err := svc.Review(ctx, 1, "our landing page copy")
	if err != nil {
		t.Fatalf("Review() error = %v, want non-fatal warning", err)
	}
	if res.Text == "" {
		t.Error("Review() lost the generated text")
	}
	if res.Warning == "" {
		t.Error("Review() carries no warning about the failed debit")
	}
}

func TestContentService_GenerationFailure(t *testing.T) {
	svc, ai, teams := newTestContentService(t)
	ctx := context.Background()

	_ = teams.Create(ctx, &team.Team{
		Name:          "acme",
		CurrentPlanID: "plan-free",
		Credits:       credit.Balance{credit.KindContentPlans: 1},
	})
	ai.err = fmt.Errorf("upstream timeout")

	if _, err := svc.ContentPlan(ctx, 1, "Q4 plan"); err == nil {
		t.Fatal("ContentPlan() should fail when generation fails")
	}
	// No credit is debited for a failed generation
	if got := teams.Teams[1].Credits.Remaining(credit.KindContentPlans); got != 1 {
		t.Errorf("credits after failed generation = %d, want 1", got)
	}
}
