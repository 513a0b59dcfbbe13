package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/contentloom/contentloom/internal/domain/subscription"
	"github.com/contentloom/contentloom/internal/pkg/logger"
)

// TrialScanner sweeps active trials on a schedule and resolves each one,
// so expired trials are downgraded even for teams that never call in.
// Resolve is idempotent, so racing a live request is harmless.
type TrialScanner struct {
	subs     subscription.Repository
	resolver subscription.Resolver
	logger   *logger.Logger
	cron     *cron.Cron
	schedule string
}

// NewTrialScanner creates a new trial scanner
func NewTrialScanner(subs subscription.Repository, resolver subscription.Resolver, schedule string, log *logger.Logger) *TrialScanner {
	return &TrialScanner{
		subs:     subs,
		resolver: resolver,
		logger:   log,
		cron:     cron.New(),
		schedule: schedule,
	}
}

// Start schedules the sweep. Returns an error if the schedule is invalid.
func (s *TrialScanner) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.sweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.With("schedule", s.schedule).Info("Trial scanner started")
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *TrialScanner) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *TrialScanner) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Expiring a trial removes it from the active set, so offset paging
	// can skip rows within one sweep. The next sweep catches them.
	const pageSize = 200
	var scanned int
	for offset := 0; ; offset += pageSize {
		teamIDs, err := s.subs.ListActiveTrials(ctx, pageSize, offset)
		if err != nil {
			s.logger.ErrorWithErr(err, "Trial sweep failed to list trials")
			return
		}
		if len(teamIDs) == 0 {
			break
		}

		for _, teamID := range teamIDs {
			if _, err := s.resolver.Resolve(ctx, teamID); err != nil {
				s.logger.WithFields(map[string]interface{}{
					"team_id": teamID,
				}).WithError(err).Warn("Trial sweep failed for team")
			}
			scanned++
		}
	}

	if scanned > 0 {
		s.logger.With("teams", scanned).Debug("Trial sweep complete")
	}
}
