package team

import (
	"context"

	"github.com/contentloom/contentloom/internal/domain/credit"
)

// Repository defines the interface for team data access
type Repository interface {
	// Create creates a new team
	Create(ctx context.Context, t *Team) error

	// GetByID retrieves a team by ID
	GetByID(ctx context.Context, id int64) (*Team, error)

	// Update updates a team
	Update(ctx context.Context, t *Team) error

	// UpdatePlan sets the team's current plan id
	UpdatePlan(ctx context.Context, id int64, planID string) error

	// UpdateCredits replaces the team's credit balance
	UpdateCredits(ctx context.Context, id int64, credits credit.Balance) error

	// DecrementCredit atomically debits one credit counter, clamped at
	// zero, in a single statement. Returns the updated balance.
	DecrementCredit(ctx context.Context, id int64, kind credit.Kind, amount int64) (credit.Balance, error)

	// List retrieves teams with pagination
	List(ctx context.Context, limit, offset int) ([]*Team, int64, error)
}
