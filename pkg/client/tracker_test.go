package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/contentloom/contentloom/pkg/client"
)

func writeData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

type sessionServer struct {
	starts     int32
	pauses     int32
	resumes    int32
	heartbeats int32
	ends       int32

	resumeID string
	failWith int // when non-zero, pause answers this status
}

func (s *sessionServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/usage-sessions/start", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.starts, 1)
		writeData(w, client.Session{ID: "sess-1", State: "RUNNING"})
	})
	mux.HandleFunc("/api/v1/usage-sessions/pause", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.pauses, 1)
		if s.failWith != 0 {
			w.WriteHeader(s.failWith)
			return
		}
		writeData(w, client.SessionSeconds{SessionID: "sess-1", AccumulatedSeconds: 60})
	})
	mux.HandleFunc("/api/v1/usage-sessions/resume", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.resumes, 1)
		id := s.resumeID
		if id == "" {
			id = "sess-1"
		}
		writeData(w, client.Session{ID: id, State: "RUNNING", AccumulatedSeconds: 60})
	})
	mux.HandleFunc("/api/v1/usage-sessions/heartbeat", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.heartbeats, 1)
		writeData(w, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/api/v1/usage-sessions/end", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.ends, 1)
		writeData(w, client.SessionSeconds{SessionID: "sess-1", AccumulatedSeconds: 120})
	})
	return mux
}

func newTrackerFixture(t *testing.T, interval time.Duration) (*sessionServer, *client.SessionTracker) {
	t.Helper()
	srv := &sessionServer{}
	ts := httptest.NewServer(srv.handler())
	t.Cleanup(ts.Close)

	c := client.NewClient(client.Config{BaseURL: ts.URL})
	c.SetToken("test-token")
	return srv, client.NewSessionTracker(c, interval)
}

func TestSessionTracker_StartIsIdempotent(t *testing.T) {
	srv, tracker := newTrackerFixture(t, time.Hour)
	ctx := context.Background()

	if err := tracker.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := tracker.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if got := atomic.LoadInt32(&srv.starts); got != 1 {
		t.Errorf("start calls = %d, want 1", got)
	}
	if tracker.State() != client.TrackerRunning {
		t.Errorf("State() = %s, want RUNNING", tracker.State())
	}
	if tracker.SessionID() != "sess-1" {
		t.Errorf("SessionID() = %s, want sess-1", tracker.SessionID())
	}
}

func TestSessionTracker_HideShowCycle(t *testing.T) {
	srv, tracker := newTrackerFixture(t, time.Hour)
	ctx := context.Background()

	if err := tracker.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	tracker.Hide(ctx)
	if tracker.State() != client.TrackerPaused {
		t.Fatalf("State() after Hide = %s, want PAUSED", tracker.State())
	}
	if got := atomic.LoadInt32(&srv.pauses); got != 1 {
		t.Errorf("pause calls = %d, want 1", got)
	}

	// A reaped session resumes under a new id.
	srv.resumeID = "sess-2"
	tracker.Show(ctx)
	if tracker.State() != client.TrackerRunning {
		t.Fatalf("State() after Show = %s, want RUNNING", tracker.State())
	}
	if tracker.SessionID() != "sess-2" {
		t.Errorf("SessionID() = %s, want sess-2", tracker.SessionID())
	}
}

func TestSessionTracker_HideIsBestEffort(t *testing.T) {
	srv, tracker := newTrackerFixture(t, time.Hour)
	srv.failWith = http.StatusInternalServerError
	ctx := context.Background()

	var logged bool
	tracker.Logf = func(format string, v ...interface{}) { logged = true }

	if err := tracker.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	tracker.Hide(ctx)
	if tracker.State() != client.TrackerPaused {
		t.Errorf("State() = %s, want PAUSED even when pause fails", tracker.State())
	}
	if !logged {
		t.Error("expected failed pause to be logged")
	}
}

func TestSessionTracker_CloseEndsOnce(t *testing.T) {
	srv, tracker := newTrackerFixture(t, time.Hour)
	ctx := context.Background()

	if err := tracker.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	secs, err := tracker.Close(ctx)
	if err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if secs != 120 {
		t.Errorf("Close() seconds = %d, want 120", secs)
	}
	if tracker.State() != client.TrackerEnded {
		t.Errorf("State() = %s, want ENDED", tracker.State())
	}
	if tracker.SessionID() != "" {
		t.Errorf("SessionID() = %q, want empty after Close", tracker.SessionID())
	}

	// Second close is a no-op.
	if _, err := tracker.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if got := atomic.LoadInt32(&srv.ends); got != 1 {
		t.Errorf("end calls = %d, want 1", got)
	}
}

func TestSessionTracker_HeartbeatWhileRunning(t *testing.T) {
	srv, tracker := newTrackerFixture(t, 10*time.Millisecond)
	ctx := context.Background()

	if err := tracker.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&srv.heartbeats) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("no heartbeat observed while RUNNING")
		}
		time.Sleep(5 * time.Millisecond)
	}

	tracker.Hide(ctx)
	// Let any tick already in flight land before sampling.
	time.Sleep(50 * time.Millisecond)
	paused := atomic.LoadInt32(&srv.heartbeats)
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&srv.heartbeats); got != paused {
		t.Errorf("heartbeats continued after pause: %d -> %d", paused, got)
	}
}
