package services

import (
	"context"
	"fmt"

	"github.com/contentloom/contentloom/internal/domain/credit"
	"github.com/contentloom/contentloom/internal/domain/team"
	"github.com/contentloom/contentloom/internal/pkg/logger"
	"github.com/contentloom/contentloom/internal/pkg/metrics"
)

// CreditLedgerService implements credit.Ledger
type CreditLedgerService struct {
	teams  team.Repository
	logger *logger.Logger
}

// NewCreditLedgerService creates a new credit ledger
func NewCreditLedgerService(teams team.Repository, log *logger.Logger) credit.Ledger {
	return &CreditLedgerService{
		teams:  teams,
		logger: log,
	}
}

// Decrement debits credits of one kind after a completed content action.
// The store clamps the balance at zero in a single statement, so two
// concurrent debits cannot drive it negative.
func (s *CreditLedgerService) Decrement(ctx context.Context, teamID int64, kind credit.Kind, amount int64) (credit.Balance, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown credit kind: %s", kind)
	}
	if amount <= 0 {
		amount = 1
	}

	balance, err := s.teams.DecrementCredit(ctx, teamID, kind, amount)
	if err != nil {
		// The content action already happened; the caller surfaces this
		// as a warning and does not roll anything back.
		s.logger.WithFields(map[string]interface{}{
			"team_id": teamID,
			"kind":    string(kind),
			"amount":  amount,
		}).WithError(err).Warn("Credit decrement failed after completed action")
		return nil, err
	}

	metrics.RecordCreditDecrement(string(kind))
	s.logger.WithFields(map[string]interface{}{
		"team_id":   teamID,
		"kind":      string(kind),
		"amount":    amount,
		"remaining": balance.Remaining(kind),
	}).Debug("Credit debited")

	return balance, nil
}
