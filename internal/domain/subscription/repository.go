package subscription

import (
	"context"
	"time"
)

// Repository defines the interface for subscription history data access
type Repository interface {
	// Create appends a new subscription row
	Create(ctx context.Context, s *Subscription) error

	// GetActive retrieves the team's single active subscription, nil when
	// the team has none.
	GetActive(ctx context.Context, teamID int64) (*Subscription, error)

	// MarkExpired flips a subscription to EXPIRED with IsActive=false
	MarkExpired(ctx context.Context, id int64, endedAt time.Time) error

	// DeactivateAll clears the IsActive flag on every row for a team,
	// called before appending a replacement subscription.
	DeactivateAll(ctx context.Context, teamID int64) error

	// ListActiveTrials retrieves teams ids with an active TRIAL subscription
	ListActiveTrials(ctx context.Context, limit, offset int) ([]int64, error)
}
