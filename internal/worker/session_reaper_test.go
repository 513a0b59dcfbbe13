package worker

import (
	"context"
	"testing"
	"time"

	"github.com/contentloom/contentloom/internal/config"
	"github.com/contentloom/contentloom/internal/domain/session"
	"github.com/contentloom/contentloom/internal/pkg/logger"
	"github.com/contentloom/contentloom/internal/services"
	"github.com/contentloom/contentloom/internal/testutil"
)

func TestSessionReaper_Reap(t *testing.T) {
	repo := testutil.NewMockSessionRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	svc := services.NewSessionService(repo, log)

	cfg := config.UsageConfig{
		HeartbeatInterval: 30 * time.Second,
		StaleFactor:       4,
		ReaperSchedule:    "@every 2m",
	}
	reaper := NewSessionReaper(repo, svc, cfg, log)

	ctx := context.Background()
	now := time.Now()

	// One abandoned session, one healthy one
	_ = repo.Create(ctx, &session.UsageSession{
		ID:              "stale",
		UserID:          1,
		State:           session.StateRunning,
		StartedAt:       now.Add(-time.Hour),
		LastHeartbeatAt: now.Add(-time.Hour),
	})
	_ = repo.Create(ctx, &session.UsageSession{
		ID:              "fresh",
		UserID:          2,
		State:           session.StateRunning,
		StartedAt:       now.Add(-time.Minute),
		LastHeartbeatAt: now.Add(-10 * time.Second),
	})

	reaper.reap()

	if got := repo.Sessions["stale"].State; got != session.StateEnded {
		t.Errorf("stale session state = %s, want ENDED", got)
	}
	if got := repo.Sessions["fresh"].State; got != session.StateRunning {
		t.Errorf("fresh session state = %s, want RUNNING", got)
	}
}
