package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/contentloom/contentloom/internal/domain/session"
	"github.com/contentloom/contentloom/internal/pkg/logger"
	"github.com/contentloom/contentloom/internal/pkg/metrics"
)

// SessionService implements session.Service
type SessionService struct {
	repo   session.Repository
	logger *logger.Logger
	now    func() time.Time
}

// NewSessionService creates a new usage-session service
func NewSessionService(repo session.Repository, log *logger.Logger) session.Service {
	return &SessionService{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// Start returns the user's RUNNING session, creating one if none exists.
// A second start while a session is already running returns the existing
// session instead of opening a parallel one.
func (s *SessionService) Start(ctx context.Context, userID int64) (*session.UsageSession, error) {
	existing, err := s.repo.GetRunning(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := s.now()
	sess := &session.UsageSession{
		ID:              uuid.New().String(),
		UserID:          userID,
		State:           session.StateRunning,
		StartedAt:       now,
		LastHeartbeatAt: now,
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, err
	}

	metrics.SessionStarted()
	s.logger.WithFields(map[string]interface{}{
		"session_id": sess.ID,
		"user_id":    userID,
	}).Debug("Usage session started")

	return sess, nil
}

// Pause folds the running stretch since the last resume (or start) into
// the accumulated total. Pausing an already-paused session changes
// nothing and reports the current total.
func (s *SessionService) Pause(ctx context.Context, userID int64, id string) (int64, error) {
	sess, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return 0, err
	}
	if !sess.Running() {
		return sess.AccumulatedSeconds, nil
	}

	now := s.now()
	sess.AccumulatedSeconds += runningSeconds(sess, now)
	sess.State = session.StatePaused
	sess.LastHeartbeatAt = now
	sess.ResumedAt = nil
	if err := s.repo.Update(ctx, sess); err != nil {
		return 0, err
	}

	return sess.AccumulatedSeconds, nil
}

// BestEffortPause is Pause for fire-and-forget delivery. The unload
// beacon cannot await a response, so failures are logged and dropped.
func (s *SessionService) BestEffortPause(ctx context.Context, userID int64, id string) {
	if _, err := s.Pause(ctx, userID, id); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"session_id": id,
			"user_id":    userID,
		}).WithError(err).Debug("Beacon pause dropped")
	}
}

// Resume restarts a paused session. A session that was meanwhile ended or
// reaped cannot be restarted, so a fresh one is opened; callers must
// adopt the returned session's id.
func (s *SessionService) Resume(ctx context.Context, userID int64, id string) (*session.UsageSession, error) {
	sess, err := s.repo.GetByID(ctx, userID, id)
	if err != nil || sess.State == session.StateEnded {
		return s.Start(ctx, userID)
	}
	if sess.Running() {
		return sess, nil
	}

	now := s.now()
	sess.State = session.StateRunning
	sess.ResumedAt = &now
	sess.LastHeartbeatAt = now
	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

// Heartbeat extends the session's liveness window so the reaper leaves it
// alone.
func (s *SessionService) Heartbeat(ctx context.Context, userID int64, id string) error {
	sess, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if !sess.Running() {
		return nil
	}

	sess.LastHeartbeatAt = s.now()
	if err := s.repo.Update(ctx, sess); err != nil {
		return err
	}

	metrics.RecordHeartbeat()
	return nil
}

// End finalizes the session and returns the total accumulated seconds.
// Ending an already-ended session is a no-op.
func (s *SessionService) End(ctx context.Context, userID int64, id string) (int64, error) {
	sess, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return 0, err
	}
	if sess.State == session.StateEnded {
		return sess.AccumulatedSeconds, nil
	}

	now := s.now()
	if sess.Running() {
		sess.AccumulatedSeconds += runningSeconds(sess, now)
	}
	sess.State = session.StateEnded
	sess.EndedAt = &now
	sess.ResumedAt = nil
	if err := s.repo.Update(ctx, sess); err != nil {
		return 0, err
	}

	metrics.SessionStopped()
	s.logger.WithFields(map[string]interface{}{
		"session_id": sess.ID,
		"user_id":    userID,
		"seconds":    sess.AccumulatedSeconds,
	}).Debug("Usage session ended")

	return sess.AccumulatedSeconds, nil
}

// EndStale finalizes an abandoned session at its last heartbeat. The
// silent stretch after the final heartbeat is not counted.
func (s *SessionService) EndStale(ctx context.Context, userID int64, id string) error {
	sess, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if sess.State == session.StateEnded {
		return nil
	}

	if sess.Running() {
		sess.AccumulatedSeconds += runningSeconds(sess, sess.LastHeartbeatAt)
	}
	now := s.now()
	sess.State = session.StateEnded
	sess.EndedAt = &now
	sess.ResumedAt = nil
	if err := s.repo.Update(ctx, sess); err != nil {
		return err
	}

	metrics.SessionStopped()
	s.logger.WithFields(map[string]interface{}{
		"session_id": sess.ID,
		"user_id":    userID,
		"seconds":    sess.AccumulatedSeconds,
	}).Debug("Abandoned session reaped")

	return nil
}

// runningSeconds is the length of the current running stretch: since the
// last resume, or since start if the session was never paused.
func runningSeconds(sess *session.UsageSession, now time.Time) int64 {
	from := sess.StartedAt
	if sess.ResumedAt != nil {
		from = *sess.ResumedAt
	}
	secs := int64(now.Sub(from) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}
