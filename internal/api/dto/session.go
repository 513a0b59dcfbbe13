package dto

import "github.com/contentloom/contentloom/internal/domain/session"

// SessionRequest names the session an operation targets
type SessionRequest struct {
	SessionID string `json:"sessionId" validate:"required,uuid4"`
}

// SessionDTO is the wire shape of a usage session
type SessionDTO struct {
	ID                 string `json:"id"`
	State              string `json:"state"`
	AccumulatedSeconds int64  `json:"accumulatedSeconds"`
}

// FromSession converts a domain session to its wire shape
func FromSession(s *session.UsageSession) *SessionDTO {
	return &SessionDTO{
		ID:                 s.ID,
		State:              s.State,
		AccumulatedSeconds: s.AccumulatedSeconds,
	}
}

// SessionSecondsResponse reports accumulated time after pause/end
type SessionSecondsResponse struct {
	SessionID          string `json:"sessionId"`
	AccumulatedSeconds int64  `json:"accumulatedSeconds"`
}
