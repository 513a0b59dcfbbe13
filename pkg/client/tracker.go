package client

import (
	"context"
	"sync"
	"time"
)

// TrackerState is the local state of a usage-session tracker
type TrackerState string

const (
	TrackerIdle    TrackerState = "IDLE"
	TrackerRunning TrackerState = "RUNNING"
	TrackerPaused  TrackerState = "PAUSED"
	TrackerEnded   TrackerState = "ENDED"
)

// SessionTracker drives the usage-session lifecycle from the client side.
// Start opens a session and begins the heartbeat, Hide/Show follow the
// host's visibility signals and Close finalizes the session. Every
// network call is best effort: a failure is reported through Logf and
// the local state still advances so the caller is never blocked on
// tracking.
type SessionTracker struct {
	client   *Client
	interval time.Duration

	// Logf, when set, receives best-effort call failures.
	Logf func(format string, v ...interface{})

	mu        sync.Mutex
	state     TrackerState
	sessionID string
	stop      chan struct{}
}

// NewSessionTracker creates a tracker with the given heartbeat interval.
// An interval of zero defaults to 30 seconds.
func NewSessionTracker(c *Client, interval time.Duration) *SessionTracker {
	if interval == 0 {
		interval = 30 * time.Second
	}
	return &SessionTracker{
		client:   c,
		interval: interval,
		state:    TrackerIdle,
	}
}

// State returns the tracker's current local state
func (t *SessionTracker) State() TrackerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// SessionID returns the current session id, empty when not tracking
func (t *SessionTracker) SessionID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessionID
}

// Start opens the session and begins the heartbeat. Calling Start while
// already tracking is a no-op.
func (t *SessionTracker) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.state == TrackerRunning {
		t.mu.Unlock()
		return nil
	}
	t.mu.Unlock()

	sess, err := t.client.StartSession(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessionID = sess.ID
	t.state = TrackerRunning
	t.startHeartbeatLocked()
	return nil
}

// Hide pauses the session on a tab-hide or navigation-away signal. The
// pause call is best effort and the tracker moves to PAUSED regardless.
func (t *SessionTracker) Hide(ctx context.Context) {
	t.mu.Lock()
	if t.state != TrackerRunning {
		t.mu.Unlock()
		return
	}
	t.state = TrackerPaused
	t.stopHeartbeatLocked()
	id := t.sessionID
	t.mu.Unlock()

	if _, err := t.client.PauseSession(ctx, id); err != nil {
		t.logf("pause failed: %v", err)
	}
}

// Show resumes a paused session when the tab becomes visible again. A
// reaped or ended session comes back under a fresh id, which the tracker
// adopts transparently.
func (t *SessionTracker) Show(ctx context.Context) {
	t.mu.Lock()
	if t.state != TrackerPaused {
		t.mu.Unlock()
		return
	}
	id := t.sessionID
	t.mu.Unlock()

	sess, err := t.client.ResumeSession(ctx, id)
	if err != nil {
		t.logf("resume failed: %v", err)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != TrackerPaused {
		return
	}
	t.sessionID = sess.ID
	t.state = TrackerRunning
	t.startHeartbeatLocked()
}

// Unload dispatches the fire-and-forget pause used during page teardown
func (t *SessionTracker) Unload(ctx context.Context) {
	t.mu.Lock()
	if t.state != TrackerRunning {
		t.mu.Unlock()
		return
	}
	t.state = TrackerPaused
	t.stopHeartbeatLocked()
	id := t.sessionID
	t.mu.Unlock()

	if err := t.client.BeaconPause(ctx, id); err != nil {
		t.logf("beacon pause failed: %v", err)
	}
}

// Close ends the session on logout, stops all timers and clears the
// session id. Returns the total accumulated seconds when the end call
// succeeds.
func (t *SessionTracker) Close(ctx context.Context) (int64, error) {
	t.mu.Lock()
	if t.state == TrackerIdle || t.state == TrackerEnded {
		t.mu.Unlock()
		return 0, nil
	}
	t.state = TrackerEnded
	t.stopHeartbeatLocked()
	id := t.sessionID
	t.sessionID = ""
	t.mu.Unlock()

	secs, err := t.client.EndSession(ctx, id)
	if err != nil {
		t.logf("end failed: %v", err)
		return 0, err
	}
	return secs.AccumulatedSeconds, nil
}

func (t *SessionTracker) startHeartbeatLocked() {
	t.stopHeartbeatLocked()
	stop := make(chan struct{})
	t.stop = stop
	go t.heartbeatLoop(stop)
}

func (t *SessionTracker) stopHeartbeatLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

func (t *SessionTracker) heartbeatLoop(stop chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.mu.Lock()
			running := t.state == TrackerRunning
			authed := t.client.GetToken() != ""
			id := t.sessionID
			t.mu.Unlock()

			// Self-cancel once the user is logged out or the
			// tracker has moved on.
			if !running || !authed {
				return
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := t.client.SessionHeartbeat(ctx, id); err != nil {
				t.logf("heartbeat failed: %v", err)
			}
			cancel()
		}
	}
}

func (t *SessionTracker) logf(format string, v ...interface{}) {
	if t.Logf != nil {
		t.Logf(format, v...)
	}
}
