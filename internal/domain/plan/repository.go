package plan

import "context"

// Repository defines the interface for plan catalog data access
type Repository interface {
	// GetByID retrieves a plan by ID
	GetByID(ctx context.Context, id string) (*Plan, error)

	// GetByName retrieves a plan by tier name. "FREE" must always resolve.
	GetByName(ctx context.Context, name Name) (*Plan, error)

	// ListActive retrieves all active plans ordered by price for display
	ListActive(ctx context.Context) ([]*Plan, error)
}
