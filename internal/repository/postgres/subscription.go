package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/contentloom/contentloom/internal/domain/subscription"
	"github.com/contentloom/contentloom/internal/pkg/errors"
)

// SubscriptionRepository implements subscription.Repository
type SubscriptionRepository struct {
	db *sql.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *sql.DB) subscription.Repository {
	return &SubscriptionRepository{db: db}
}

// Create appends a new subscription row
func (r *SubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `
		INSERT INTO subscriptions (team_id, plan_id, status, start_date, trial_end_date,
			end_date, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var trialEnd, endDate sql.NullInt64
	if s.TrialEndDate != nil {
		trialEnd = sql.NullInt64{Int64: s.TrialEndDate.Unix(), Valid: true}
	}
	if s.EndDate != nil {
		endDate = sql.NullInt64{Int64: s.EndDate.Unix(), Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query,
		s.TeamID, s.PlanID, s.Status, s.StartDate.Unix(), trialEnd, endDate,
		s.IsActive, now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create subscription", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get subscription ID", err)
	}

	s.ID = id
	return nil
}

// GetActive retrieves the team's single active subscription. Returns nil
// without error when the team has none.
func (r *SubscriptionRepository) GetActive(ctx context.Context, teamID int64) (*subscription.Subscription, error) {
	query := `
		SELECT id, team_id, plan_id, status, start_date, trial_end_date, end_date,
			is_active, created_at, updated_at
		FROM subscriptions
		WHERE team_id = ? AND is_active = 1
		ORDER BY start_date DESC
		LIMIT 1
	`

	var s subscription.Subscription
	var startDate int64
	var trialEnd, endDate sql.NullInt64
	var createdAt, updatedAt int64

	err := r.db.QueryRowContext(ctx, query, teamID).Scan(
		&s.ID, &s.TeamID, &s.PlanID, &s.Status, &startDate, &trialEnd, &endDate,
		&s.IsActive, &createdAt, &updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get active subscription", err)
	}

	s.StartDate = time.Unix(startDate, 0)
	if trialEnd.Valid {
		t := time.Unix(trialEnd.Int64, 0)
		s.TrialEndDate = &t
	}
	if endDate.Valid {
		t := time.Unix(endDate.Int64, 0)
		s.EndDate = &t
	}
	s.CreatedAt = time.Unix(createdAt, 0)
	s.UpdatedAt = time.Unix(updatedAt, 0)

	return &s, nil
}

// MarkExpired flips a subscription to EXPIRED with is_active cleared
func (r *SubscriptionRepository) MarkExpired(ctx context.Context, id int64, endedAt time.Time) error {
	query := `
		UPDATE subscriptions
		SET status = ?, is_active = 0, end_date = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		subscription.StatusExpired, endedAt.Unix(), time.Now().Unix(), id,
	)
	if err != nil {
		return errors.DatabaseError("Failed to mark subscription expired", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to check update result", err)
	}
	if rows == 0 {
		return errors.NotFound("Subscription")
	}

	return nil
}

// DeactivateAll clears the active flag on every row for a team
func (r *SubscriptionRepository) DeactivateAll(ctx context.Context, teamID int64) error {
	query := `UPDATE subscriptions SET is_active = 0, updated_at = ? WHERE team_id = ? AND is_active = 1`

	if _, err := r.db.ExecContext(ctx, query, time.Now().Unix(), teamID); err != nil {
		return errors.DatabaseError("Failed to deactivate subscriptions", err)
	}
	return nil
}

// ListActiveTrials retrieves team ids holding an active TRIAL subscription
func (r *SubscriptionRepository) ListActiveTrials(ctx context.Context, limit, offset int) ([]int64, error) {
	query := `
		SELECT team_id FROM subscriptions
		WHERE status = ? AND is_active = 1
		ORDER BY team_id LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, subscription.StatusTrial, limit, offset)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list active trials", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errors.DatabaseError("Failed to scan trial team id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate trials", err)
	}

	return ids, nil
}
