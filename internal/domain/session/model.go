package session

import "time"

// UsageSession states
const (
	StateRunning = "RUNNING"
	StatePaused  = "PAUSED"
	StateEnded   = "ENDED"
)

// UsageSession is an ephemeral per-user record of continuous active time.
// It is owned by the authenticated user's client; the server only persists
// reported deltas and never infers elapsed time beyond the last heartbeat
// plus a single pause/resume delta.
type UsageSession struct {
	ID                 string     `json:"id"`
	UserID             int64      `json:"user_id"`
	State              string     `json:"state"`
	StartedAt          time.Time  `json:"started_at"`
	LastHeartbeatAt    time.Time  `json:"last_heartbeat_at"`
	ResumedAt          *time.Time `json:"resumed_at,omitempty"`
	AccumulatedSeconds int64      `json:"accumulated_seconds"`
	EndedAt            *time.Time `json:"ended_at,omitempty"`
}

// Running reports whether the session is currently accumulating time
func (s *UsageSession) Running() bool {
	return s.State == StateRunning
}
