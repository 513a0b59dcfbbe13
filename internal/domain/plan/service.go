package plan

import "context"

// Catalog defines the interface for plan catalog business logic
type Catalog interface {
	// GetByID retrieves a plan by ID
	GetByID(ctx context.Context, id string) (*Plan, error)

	// GetByName retrieves a plan by tier name
	GetByName(ctx context.Context, name Name) (*Plan, error)

	// Free retrieves the FREE plan. Failure here is fatal for every
	// consumer, since the fallback plan must always exist.
	Free(ctx context.Context) (*Plan, error)

	// ListActive retrieves all active plans for display
	ListActive(ctx context.Context) ([]*Plan, error)
}
