package asset

import "context"

// Repository defines the interface for asset data access
type Repository interface {
	// Create creates a new asset
	Create(ctx context.Context, a *Asset) error

	// GetByID retrieves an asset owned by a team
	GetByID(ctx context.Context, teamID, id int64) (*Asset, error)

	// List retrieves all assets of a kind for a team
	List(ctx context.Context, teamID int64, kind Kind) ([]*Asset, error)

	// Count returns how many assets of a kind the team currently has
	Count(ctx context.Context, teamID int64, kind Kind) (int64, error)

	// Delete deletes an asset owned by a team
	Delete(ctx context.Context, teamID, id int64) error
}
