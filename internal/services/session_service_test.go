package services

import (
	"context"
	"testing"
	"time"

	"github.com/contentloom/contentloom/internal/domain/session"
	"github.com/contentloom/contentloom/internal/pkg/logger"
	"github.com/contentloom/contentloom/internal/testutil"
)

func newTestSessionService(t *testing.T) (*SessionService, *testutil.MockSessionRepository) {
	t.Helper()
	repo := testutil.NewMockSessionRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return NewSessionService(repo, log).(*SessionService), repo
}

func TestSessionService_StartIsIdempotent(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	first, err := svc.Start(ctx, 1)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if first.State != session.StateRunning {
		t.Errorf("Start() state = %s, want RUNNING", first.State)
	}

	// Double-start returns the running session instead of a second one
	second, err := svc.Start(ctx, 1)
	if err != nil {
		t.Fatalf("second Start() error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second Start() opened a parallel session %s", second.ID)
	}

	// Another user gets their own session
	other, err := svc.Start(ctx, 2)
	if err != nil {
		t.Fatalf("Start() for second user error = %v", err)
	}
	if other.ID == first.ID {
		t.Error("sessions are not user-scoped")
	}
}

func TestSessionService_PauseAccumulates(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	start := time.Now().Add(-90 * time.Second)
	now := start.Add(90 * time.Second)
	svc.now = func() time.Time { return start }

	sess, err := svc.Start(ctx, 1)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	svc.now = func() time.Time { return now }
	secs, err := svc.Pause(ctx, 1, sess.ID)
	if err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	if secs != 90 {
		t.Errorf("Pause() accumulated = %d, want 90", secs)
	}

	// Pausing again changes nothing
	secs2, err := svc.Pause(ctx, 1, sess.ID)
	if err != nil {
		t.Fatalf("second Pause() error = %v", err)
	}
	if secs2 != 90 {
		t.Errorf("second Pause() accumulated = %d, want 90", secs2)
	}
}

func TestSessionService_ResumeRestartsAccounting(t *testing.T) {
	svc, repo := newTestSessionService(t)
	ctx := context.Background()

	t0 := time.Now()
	svc.now = func() time.Time { return t0 }
	sess, _ := svc.Start(ctx, 1)

	// 60s running, then paused for a while, then 30s more
	svc.now = func() time.Time { return t0.Add(60 * time.Second) }
	if _, err := svc.Pause(ctx, 1, sess.ID); err != nil {
		t.Fatalf("Pause() error = %v", err)
	}

	svc.now = func() time.Time { return t0.Add(10 * time.Minute) }
	resumed, err := svc.Resume(ctx, 1, sess.ID)
	if err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	if resumed.ID != sess.ID {
		t.Errorf("Resume() returned a different session %s", resumed.ID)
	}
	if !resumed.Running() {
		t.Errorf("Resume() state = %s, want RUNNING", resumed.State)
	}

	svc.now = func() time.Time { return t0.Add(10*time.Minute + 30*time.Second) }
	total, err := svc.End(ctx, 1, sess.ID)
	if err != nil {
		t.Fatalf("End() error = %v", err)
	}
	// The paused stretch does not count
	if total != 90 {
		t.Errorf("End() total = %d, want 90", total)
	}

	stored := repo.Sessions[sess.ID]
	if stored.State != session.StateEnded || stored.EndedAt == nil {
		t.Errorf("stored session = %+v, want ENDED", stored)
	}
}

func TestSessionService_ResumeAfterEndStartsFresh(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	sess, _ := svc.Start(ctx, 1)
	if _, err := svc.End(ctx, 1, sess.ID); err != nil {
		t.Fatalf("End() error = %v", err)
	}

	// The old id is dead; resume must hand back a new session
	fresh, err := svc.Resume(ctx, 1, sess.ID)
	if err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	if fresh.ID == sess.ID {
		t.Error("Resume() revived an ended session")
	}
	if !fresh.Running() {
		t.Errorf("Resume() state = %s, want RUNNING", fresh.State)
	}
}

func TestSessionService_Heartbeat(t *testing.T) {
	svc, repo := newTestSessionService(t)
	ctx := context.Background()

	t0 := time.Now()
	svc.now = func() time.Time { return t0 }
	sess, _ := svc.Start(ctx, 1)

	svc.now = func() time.Time { return t0.Add(30 * time.Second) }
	if err := svc.Heartbeat(ctx, 1, sess.ID); err != nil {
		t.Fatalf("Heartbeat() error = %v", err)
	}
	if got := repo.Sessions[sess.ID].LastHeartbeatAt; !got.Equal(t0.Add(30 * time.Second)) {
		t.Errorf("LastHeartbeatAt = %v, want %v", got, t0.Add(30*time.Second))
	}

	// Heartbeat on a paused session is a no-op, not an error
	if _, err := svc.Pause(ctx, 1, sess.ID); err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	if err := svc.Heartbeat(ctx, 1, sess.ID); err != nil {
		t.Errorf("Heartbeat() on paused session error = %v", err)
	}
}

func TestSessionService_BestEffortPauseSwallowsErrors(t *testing.T) {
	svc, repo := newTestSessionService(t)
	ctx := context.Background()

	sess, _ := svc.Start(ctx, 1)
	repo.UpdateError = context.DeadlineExceeded

	// Must not panic or propagate anything
	svc.BestEffortPause(ctx, 1, sess.ID)
	svc.BestEffortPause(ctx, 1, "no-such-session")
}

func TestSessionService_EndIsIdempotent(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	t0 := time.Now()
	svc.now = func() time.Time { return t0 }
	sess, _ := svc.Start(ctx, 1)

	svc.now = func() time.Time { return t0.Add(45 * time.Second) }
	total, err := svc.End(ctx, 1, sess.ID)
	if err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if total != 45 {
		t.Errorf("End() total = %d, want 45", total)
	}

	svc.now = func() time.Time { return t0.Add(2 * time.Hour) }
	again, err := svc.End(ctx, 1, sess.ID)
	if err != nil {
		t.Fatalf("second End() error = %v", err)
	}
	if again != 45 {
		t.Errorf("second End() total = %d, want 45", again)
	}
}

func TestSessionService_EndStaleStopsAtLastHeartbeat(t *testing.T) {
	svc, repo := newTestSessionService(t)
	ctx := context.Background()

	t0 := time.Now()
	svc.now = func() time.Time { return t0 }
	sess, _ := svc.Start(ctx, 1)

	svc.now = func() time.Time { return t0.Add(60 * time.Second) }
	if err := svc.Heartbeat(ctx, 1, sess.ID); err != nil {
		t.Fatalf("Heartbeat() error = %v", err)
	}

	// The client vanishes; the reaper fires much later
	svc.now = func() time.Time { return t0.Add(time.Hour) }
	if err := svc.EndStale(ctx, 1, sess.ID); err != nil {
		t.Fatalf("EndStale() error = %v", err)
	}

	stored := repo.Sessions[sess.ID]
	if stored.State != session.StateEnded {
		t.Errorf("state = %s, want ENDED", stored.State)
	}
	// Only the heartbeat-covered minute counts, not the silent hour
	if stored.AccumulatedSeconds != 60 {
		t.Errorf("accumulated = %d, want 60", stored.AccumulatedSeconds)
	}
}

func TestSessionService_OtherUsersSessionHidden(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	sess, _ := svc.Start(ctx, 1)

	if _, err := svc.Pause(ctx, 2, sess.ID); err == nil {
		t.Error("Pause() on another user's session should fail")
	}
	if err := svc.Heartbeat(ctx, 2, sess.ID); err == nil {
		t.Error("Heartbeat() on another user's session should fail")
	}
}
