package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/contentloom/contentloom/internal/domain/session"
	"github.com/contentloom/contentloom/internal/pkg/errors"
)

// SessionRepository implements session.Repository
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new usage-session repository
func NewSessionRepository(db *sql.DB) session.Repository {
	return &SessionRepository{db: db}
}

// Create persists a new session
func (r *SessionRepository) Create(ctx context.Context, s *session.UsageSession) error {
	query := `
		INSERT INTO usage_sessions (id, user_id, state, started_at, last_heartbeat_at,
			resumed_at, accumulated_seconds, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	var resumedAt, endedAt sql.NullInt64
	if s.ResumedAt != nil {
		resumedAt = sql.NullInt64{Int64: s.ResumedAt.Unix(), Valid: true}
	}
	if s.EndedAt != nil {
		endedAt = sql.NullInt64{Int64: s.EndedAt.Unix(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.UserID, s.State, s.StartedAt.Unix(), s.LastHeartbeatAt.Unix(),
		resumedAt, s.AccumulatedSeconds, endedAt,
	)
	if err != nil {
		return errors.DatabaseError("Failed to create usage session", err)
	}

	return nil
}

func scanSession(scan func(dest ...interface{}) error) (*session.UsageSession, error) {
	var s session.UsageSession
	var startedAt, lastHeartbeat int64
	var resumedAt, endedAt sql.NullInt64

	err := scan(
		&s.ID, &s.UserID, &s.State, &startedAt, &lastHeartbeat,
		&resumedAt, &s.AccumulatedSeconds, &endedAt,
	)
	if err != nil {
		return nil, err
	}

	s.StartedAt = time.Unix(startedAt, 0)
	s.LastHeartbeatAt = time.Unix(lastHeartbeat, 0)
	if resumedAt.Valid {
		t := time.Unix(resumedAt.Int64, 0)
		s.ResumedAt = &t
	}
	if endedAt.Valid {
		t := time.Unix(endedAt.Int64, 0)
		s.EndedAt = &t
	}

	return &s, nil
}

const sessionColumns = `id, user_id, state, started_at, last_heartbeat_at, resumed_at, accumulated_seconds, ended_at`

// GetByID retrieves a session owned by a user
func (r *SessionRepository) GetByID(ctx context.Context, userID int64, id string) (*session.UsageSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM usage_sessions WHERE id = ? AND user_id = ?`

	row := r.db.QueryRowContext(ctx, query, id, userID)
	s, err := scanSession(row.Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Usage session")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get usage session", err)
	}

	return s, nil
}

// GetRunning retrieves the user's RUNNING session. Returns nil without
// error when none exists.
func (r *SessionRepository) GetRunning(ctx context.Context, userID int64) (*session.UsageSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM usage_sessions
		WHERE user_id = ? AND state = ?
		ORDER BY started_at DESC
		LIMIT 1
	`

	row := r.db.QueryRowContext(ctx, query, userID, session.StateRunning)
	s, err := scanSession(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get running session", err)
	}

	return s, nil
}

// Update persists state, heartbeat and accumulated time changes
func (r *SessionRepository) Update(ctx context.Context, s *session.UsageSession) error {
	query := `
		UPDATE usage_sessions
		SET state = ?, last_heartbeat_at = ?, resumed_at = ?, accumulated_seconds = ?, ended_at = ?
		WHERE id = ? AND user_id = ?
	`

	var resumedAt, endedAt sql.NullInt64
	if s.ResumedAt != nil {
		resumedAt = sql.NullInt64{Int64: s.ResumedAt.Unix(), Valid: true}
	}
	if s.EndedAt != nil {
		endedAt = sql.NullInt64{Int64: s.EndedAt.Unix(), Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query,
		s.State, s.LastHeartbeatAt.Unix(), resumedAt, s.AccumulatedSeconds, endedAt,
		s.ID, s.UserID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update usage session", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to check update result", err)
	}
	if rows == 0 {
		return errors.NotFound("Usage session")
	}

	return nil
}

// ListStale retrieves RUNNING sessions whose last heartbeat is older than
// the cutoff
func (r *SessionRepository) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]*session.UsageSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM usage_sessions
		WHERE state = ? AND last_heartbeat_at < ?
		ORDER BY last_heartbeat_at
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, session.StateRunning, cutoff.Unix(), limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list stale sessions", err)
	}
	defer rows.Close()

	var sessions []*session.UsageSession
	for rows.Next() {
		s, err := scanSession(rows.Scan)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan usage session", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate sessions", err)
	}

	return sessions, nil
}
