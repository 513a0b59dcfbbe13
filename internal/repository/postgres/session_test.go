package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/contentloom/contentloom/internal/domain/session"
	"github.com/contentloom/contentloom/internal/testutil"
)

func newSessionFixture(t *testing.T) session.Repository {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewSessionRepository(db)
}

func newRunningSession(id string, userID int64, started time.Time) *session.UsageSession {
	return &session.UsageSession{
		ID:              id,
		UserID:          userID,
		State:           session.StateRunning,
		StartedAt:       started,
		LastHeartbeatAt: started,
	}
}

func TestSessionRepository_CreateAndGetByID(t *testing.T) {
	repo := newSessionFixture(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	if err := repo.Create(ctx, newRunningSession("sess-1", 1, now)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name    string
		userID  int64
		id      string
		wantErr bool
	}{
		{
			name:   "owner reads own session",
			userID: 1,
			id:     "sess-1",
		},
		{
			name:    "other user cannot read it",
			userID:  2,
			id:      "sess-1",
			wantErr: true,
		},
		{
			name:    "unknown session",
			userID:  1,
			id:      "sess-404",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByID(ctx, tt.userID, tt.id)

			if (err != nil) != tt.wantErr {
				t.Errorf("GetByID() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if got.State != session.StateRunning {
					t.Errorf("State = %s, want %s", got.State, session.StateRunning)
				}
				if !got.StartedAt.Equal(now) {
					t.Errorf("StartedAt = %v, want %v", got.StartedAt, now)
				}
			}
		})
	}
}

func TestSessionRepository_GetRunning(t *testing.T) {
	repo := newSessionFixture(t)
	ctx := context.Background()

	got, err := repo.GetRunning(ctx, 1)
	if err != nil {
		t.Fatalf("GetRunning() error = %v", err)
	}
	if got != nil {
		t.Fatal("GetRunning() with no rows should return nil")
	}

	now := time.Now().Truncate(time.Second)
	if err := repo.Create(ctx, newRunningSession("sess-old", 1, now.Add(-time.Hour))); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, newRunningSession("sess-new", 1, now)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err = repo.GetRunning(ctx, 1)
	if err != nil {
		t.Fatalf("GetRunning() error = %v", err)
	}
	if got == nil || got.ID != "sess-new" {
		t.Errorf("GetRunning() = %+v, want sess-new", got)
	}
}

func TestSessionRepository_Update(t *testing.T) {
	repo := newSessionFixture(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	s := newRunningSession("sess-1", 1, now)
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	ended := now.Add(90 * time.Second)
	s.State = session.StateEnded
	s.AccumulatedSeconds = 90
	s.EndedAt = &ended
	if err := repo.Update(ctx, s); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(ctx, 1, "sess-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.State != session.StateEnded {
		t.Errorf("State = %s, want %s", got.State, session.StateEnded)
	}
	if got.AccumulatedSeconds != 90 {
		t.Errorf("AccumulatedSeconds = %d, want 90", got.AccumulatedSeconds)
	}
	if got.EndedAt == nil || !got.EndedAt.Equal(ended) {
		t.Errorf("EndedAt = %v, want %v", got.EndedAt, ended)
	}

	missing := newRunningSession("sess-404", 1, now)
	if err := repo.Update(ctx, missing); err == nil {
		t.Error("Update() for unknown session should fail")
	}
}

func TestSessionRepository_ListStale(t *testing.T) {
	repo := newSessionFixture(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	stale := newRunningSession("sess-stale", 1, now.Add(-10*time.Minute))
	fresh := newRunningSession("sess-fresh", 2, now)
	pausedStale := newRunningSession("sess-paused", 3, now.Add(-10*time.Minute))
	pausedStale.State = session.StatePaused

	for _, s := range []*session.UsageSession{stale, fresh, pausedStale} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := repo.ListStale(ctx, now.Add(-5*time.Minute), 10)
	if err != nil {
		t.Fatalf("ListStale() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListStale() returned %d sessions, want 1", len(got))
	}
	if got[0].ID != "sess-stale" {
		t.Errorf("ListStale()[0].ID = %s, want sess-stale", got[0].ID)
	}
}
