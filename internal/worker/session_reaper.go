package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/contentloom/contentloom/internal/config"
	"github.com/contentloom/contentloom/internal/domain/session"
	"github.com/contentloom/contentloom/internal/pkg/logger"
	"github.com/contentloom/contentloom/internal/pkg/metrics"
)

// SessionReaper ends RUNNING sessions whose heartbeats stopped arriving.
// A client that disconnected without its unload beacon landing would
// otherwise accumulate active time forever.
type SessionReaper struct {
	repo     session.Repository
	sessions session.Service
	logger   *logger.Logger
	cron     *cron.Cron
	cfg      config.UsageConfig
}

// NewSessionReaper creates a new session reaper
func NewSessionReaper(repo session.Repository, sessions session.Service, cfg config.UsageConfig, log *logger.Logger) *SessionReaper {
	return &SessionReaper{
		repo:     repo,
		sessions: sessions,
		logger:   log,
		cron:     cron.New(),
		cfg:      cfg,
	}
}

// Start schedules the reaper. Returns an error if the schedule is invalid.
func (r *SessionReaper) Start() error {
	_, err := r.cron.AddFunc(r.cfg.ReaperSchedule, r.reap)
	if err != nil {
		return err
	}
	r.cron.Start()
	r.logger.With("schedule", r.cfg.ReaperSchedule).Info("Session reaper started")
	return nil
}

// Stop stops the scheduler and waits for a running reap to finish
func (r *SessionReaper) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *SessionReaper) reap() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// A session missing several consecutive heartbeats is abandoned
	staleAfter := r.cfg.HeartbeatInterval * time.Duration(r.cfg.StaleFactor)
	cutoff := time.Now().Add(-staleAfter)

	stale, err := r.repo.ListStale(ctx, cutoff, 500)
	if err != nil {
		r.logger.ErrorWithErr(err, "Reaper failed to list stale sessions")
		return
	}

	var reaped int
	for _, s := range stale {
		if err := r.sessions.EndStale(ctx, s.UserID, s.ID); err != nil {
			r.logger.WithFields(map[string]interface{}{
				"session_id": s.ID,
				"user_id":    s.UserID,
			}).WithError(err).Warn("Failed to reap session")
			continue
		}
		reaped++
	}

	if reaped > 0 {
		metrics.RecordReapedSessions(reaped)
		r.logger.With("sessions", reaped).Info("Reaped abandoned sessions")
	}
}
