package session

import (
	"context"
	"time"
)

// Repository defines the interface for usage-session data access
type Repository interface {
	// Create persists a new session
	Create(ctx context.Context, s *UsageSession) error

	// GetByID retrieves a session owned by a user
	GetByID(ctx context.Context, userID int64, id string) (*UsageSession, error)

	// GetRunning retrieves the user's RUNNING session, nil when none exists
	GetRunning(ctx context.Context, userID int64) (*UsageSession, error)

	// Update persists state, heartbeat and accumulated time changes
	Update(ctx context.Context, s *UsageSession) error

	// ListStale retrieves RUNNING sessions whose last heartbeat is older
	// than the cutoff, for the reaper.
	ListStale(ctx context.Context, cutoff time.Time, limit int) ([]*UsageSession, error)
}
