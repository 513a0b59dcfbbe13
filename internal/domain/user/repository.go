package user

import "context"

// Repository defines the interface for user data access
type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, u *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update updates a user
	Update(ctx context.Context, u *User) error

	// CountByTeam returns how many members a team currently has
	CountByTeam(ctx context.Context, teamID int64) (int64, error)

	// ListByTeam retrieves a team's members
	ListByTeam(ctx context.Context, teamID int64) ([]*User, error)
}
