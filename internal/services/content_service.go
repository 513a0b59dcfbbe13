package services

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/contentloom/contentloom/internal/config"
	"github.com/contentloom/contentloom/internal/domain/credit"
	"github.com/contentloom/contentloom/internal/domain/plan"
	"github.com/contentloom/contentloom/internal/domain/quota"
	"github.com/contentloom/contentloom/internal/domain/team"
	"github.com/contentloom/contentloom/internal/pkg/errors"
	"github.com/contentloom/contentloom/internal/pkg/logger"
)

// ContentResult is a completed content action plus the credit balance
// after the debit. Balance may be stale if the debit failed; Warning
// carries the non-fatal notice in that case.
type ContentResult struct {
	Text    string         `json:"text"`
	Credits credit.Balance `json:"credits"`
	Warning string         `json:"warning,omitempty"`
}

// completer is the slice of the OpenAI client the service uses
type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ContentService generates marketing content and accounts for credits.
// Credits are debited after a successful generation, never reserved
// beforehand.
type ContentService struct {
	guard   quota.Guard
	ledger  credit.Ledger
	teams   team.Repository
	catalog plan.Catalog
	ai      completer
	model   string
	logger  *logger.Logger
}

// NewContentService creates a new content service
func NewContentService(guard quota.Guard, ledger credit.Ledger, teams team.Repository, catalog plan.Catalog, cfg config.AIConfig, log *logger.Logger) *ContentService {
	return &ContentService{
		guard:   guard,
		ledger:  ledger,
		teams:   teams,
		catalog: catalog,
		ai:      openai.NewClient(cfg.OpenAIAPIKey),
		model:   cfg.Model,
		logger:  log,
	}
}

// QuickContent generates a short piece of content from a single prompt
func (s *ContentService) QuickContent(ctx context.Context, teamID int64, prompt string) (*ContentResult, error) {
	return s.generate(ctx, teamID, credit.KindQuickContentCreations,
		"You write short, punchy marketing copy.", prompt)
}

// Suggestions generates tailored content suggestions for a brand context
func (s *ContentService) Suggestions(ctx context.Context, teamID int64, prompt string) (*ContentResult, error) {
	return s.generate(ctx, teamID, credit.KindCustomContentSuggestions,
		"You suggest marketing content ideas tailored to the given brand and audience.", prompt)
}

// ContentPlan generates a multi-week content plan
func (s *ContentService) ContentPlan(ctx context.Context, teamID int64, prompt string) (*ContentResult, error) {
	return s.generate(ctx, teamID, credit.KindContentPlans,
		"You produce structured multi-week content plans with channels and cadence.", prompt)
}

// Review reviews a draft and returns actionable feedback
func (s *ContentService) Review(ctx context.Context, teamID int64, draft string) (*ContentResult, error) {
	return s.generate(ctx, teamID, credit.KindContentReviews,
		"You review marketing copy and return concrete, prioritized improvements.", draft)
}

func (s *ContentService) generate(ctx context.Context, teamID int64, kind credit.Kind, system, prompt string) (*ContentResult, error) {
	usage, err := s.currentUsage(ctx, teamID, kind)
	if err != nil {
		return nil, err
	}

	decision, err := s.guard.CanPerform(ctx, teamID, kind, usage)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, errors.QuotaExceeded(decision.Reason, decision)
	}

	resp, err := s.ai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, errors.ServiceUnavailable("Content generation failed")
	}
	if len(resp.Choices) == 0 {
		return nil, errors.ServiceUnavailable("Content generation returned no output")
	}

	result := &ContentResult{Text: resp.Choices[0].Message.Content}

	// The generation already happened; a failed debit is surfaced as a
	// warning, never a rollback.
	balance, err := s.ledger.Decrement(ctx, teamID, kind, 1)
	if err != nil {
		result.Warning = "Credit accounting is temporarily delayed."
		return result, nil
	}
	result.Credits = balance

	return result, nil
}

// currentUsage derives consumed credits from the remaining balance so the
// guard can compare against the plan ceiling. An unlimited ceiling always
// reports zero usage.
func (s *ContentService) currentUsage(ctx context.Context, teamID int64, kind credit.Kind) (int64, error) {
	t, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return 0, err
	}
	p, err := s.catalog.GetByID(ctx, t.CurrentPlanID)
	if err != nil {
		return 0, err
	}

	ceiling := creditLimit(p, kind)
	if ceiling.Unlimited {
		return 0, nil
	}
	usage := ceiling.N - t.Credits.Remaining(kind)
	if usage < 0 {
		usage = 0
	}
	return usage, nil
}
