package session

import "context"

// Service defines the server side of usage-session tracking. Every call is
// scoped to the authenticated user; a session id belonging to another user
// is treated as not found.
type Service interface {
	// Start returns the user's RUNNING session, creating one if none
	// exists. Guards against double-start.
	Start(ctx context.Context, userID int64) (*UsageSession, error)

	// Pause folds the current running stretch into accumulated time.
	// Idempotent when the session is already paused. Returns the
	// accumulated duration in seconds.
	Pause(ctx context.Context, userID int64, id string) (int64, error)

	// BestEffortPause is Pause for fire-and-forget delivery: it is allowed
	// to fail silently and reports nothing. Used by the unload beacon.
	BestEffortPause(ctx context.Context, userID int64, id string)

	// Resume restarts a paused session. If the session has meanwhile been
	// ended or reaped, a fresh session is started; the returned session's
	// id may therefore differ from the one passed in.
	Resume(ctx context.Context, userID int64, id string) (*UsageSession, error)

	// Heartbeat extends the session's liveness window
	Heartbeat(ctx context.Context, userID int64, id string) error

	// End finalizes the session and returns the total accumulated seconds
	End(ctx context.Context, userID int64, id string) (int64, error)

	// EndStale finalizes an abandoned session. Active time is counted
	// only up to the last received heartbeat, never inferred beyond it.
	EndStale(ctx context.Context, userID int64, id string) error
}
