package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/contentloom/contentloom/internal/domain/credit"
	"github.com/contentloom/contentloom/internal/domain/team"
	"github.com/contentloom/contentloom/internal/pkg/errors"
)

// TeamRepository implements team.Repository
type TeamRepository struct {
	db *sql.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *sql.DB) team.Repository {
	return &TeamRepository{db: db}
}

// creditColumn maps a credit kind onto its column. Kinds are validated at
// the API boundary; an unknown kind here is a programming error.
func creditColumn(kind credit.Kind) (string, error) {
	switch kind {
	case credit.KindQuickContentCreations:
		return "credits_quick", nil
	case credit.KindCustomContentSuggestions:
		return "credits_suggestions", nil
	case credit.KindContentPlans:
		return "credits_plans", nil
	case credit.KindContentReviews:
		return "credits_reviews", nil
	}
	return "", fmt.Errorf("unknown credit kind: %s", kind)
}

// Create creates a new team
func (r *TeamRepository) Create(ctx context.Context, t *team.Team) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Credits == nil {
		t.Credits = credit.Balance{}
	}

	query := `
		INSERT INTO teams (name, current_plan_id, credits_quick, credits_suggestions,
			credits_plans, credits_reviews, is_trial_active, trial_ends_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var planID sql.NullString
	if t.CurrentPlanID != "" {
		planID = sql.NullString{String: t.CurrentPlanID, Valid: true}
	}
	var trialEnds sql.NullInt64
	if t.TrialEndsAt != nil {
		trialEnds = sql.NullInt64{Int64: t.TrialEndsAt.Unix(), Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query,
		t.Name, planID,
		t.Credits.Remaining(credit.KindQuickContentCreations),
		t.Credits.Remaining(credit.KindCustomContentSuggestions),
		t.Credits.Remaining(credit.KindContentPlans),
		t.Credits.Remaining(credit.KindContentReviews),
		t.IsTrialActive, trialEnds, now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create team", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get team ID", err)
	}

	t.ID = id
	return nil
}

// GetByID retrieves a team by ID
func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*team.Team, error) {
	query := `
		SELECT id, name, current_plan_id, credits_quick, credits_suggestions,
			credits_plans, credits_reviews, is_trial_active, trial_ends_at, created_at, updated_at
		FROM teams WHERE id = ?
	`

	var t team.Team
	var planID sql.NullString
	var quick, suggestions, plans, reviews int64
	var trialEnds sql.NullInt64
	var createdAt, updatedAt int64

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &planID, &quick, &suggestions, &plans, &reviews,
		&t.IsTrialActive, &trialEnds, &createdAt, &updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Team")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get team", err)
	}

	if planID.Valid {
		t.CurrentPlanID = planID.String
	}
	t.Credits = credit.Balance{
		credit.KindQuickContentCreations:    quick,
		credit.KindCustomContentSuggestions: suggestions,
		credit.KindContentPlans:             plans,
		credit.KindContentReviews:           reviews,
	}
	if trialEnds.Valid {
		endsAt := time.Unix(trialEnds.Int64, 0)
		t.TrialEndsAt = &endsAt
	}
	t.CreatedAt = time.Unix(createdAt, 0)
	t.UpdatedAt = time.Unix(updatedAt, 0)

	return &t, nil
}

// Update updates a team
func (r *TeamRepository) Update(ctx context.Context, t *team.Team) error {
	t.UpdatedAt = time.Now()

	query := `
		UPDATE teams
		SET name = ?, current_plan_id = ?, is_trial_active = ?, trial_ends_at = ?, updated_at = ?
		WHERE id = ?
	`

	var planID sql.NullString
	if t.CurrentPlanID != "" {
		planID = sql.NullString{String: t.CurrentPlanID, Valid: true}
	}
	var trialEnds sql.NullInt64
	if t.TrialEndsAt != nil {
		trialEnds = sql.NullInt64{Int64: t.TrialEndsAt.Unix(), Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query,
		t.Name, planID, t.IsTrialActive, trialEnds, t.UpdatedAt.Unix(), t.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update team", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to check update result", err)
	}
	if rows == 0 {
		return errors.NotFound("Team")
	}

	return nil
}

// UpdatePlan sets the team's current plan id
func (r *TeamRepository) UpdatePlan(ctx context.Context, id int64, planID string) error {
	query := `UPDATE teams SET current_plan_id = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, planID, time.Now().Unix(), id)
	if err != nil {
		return errors.DatabaseError("Failed to update team plan", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to check update result", err)
	}
	if rows == 0 {
		return errors.NotFound("Team")
	}

	return nil
}

// UpdateCredits replaces the team's credit balance
func (r *TeamRepository) UpdateCredits(ctx context.Context, id int64, credits credit.Balance) error {
	query := `
		UPDATE teams
		SET credits_quick = ?, credits_suggestions = ?, credits_plans = ?, credits_reviews = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		credits.Remaining(credit.KindQuickContentCreations),
		credits.Remaining(credit.KindCustomContentSuggestions),
		credits.Remaining(credit.KindContentPlans),
		credits.Remaining(credit.KindContentReviews),
		time.Now().Unix(), id,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update team credits", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to check update result", err)
	}
	if rows == 0 {
		return errors.NotFound("Team")
	}

	return nil
}

// DecrementCredit atomically debits one credit counter in a single
// statement, clamped at zero, then reads back the full balance. The clamp
// lives in the statement so concurrent debits cannot drive the column
// negative.
func (r *TeamRepository) DecrementCredit(ctx context.Context, id int64, kind credit.Kind, amount int64) (credit.Balance, error) {
	column, err := creditColumn(kind)
	if err != nil {
		return nil, errors.BadRequest(err.Error())
	}

	query := fmt.Sprintf(`UPDATE teams SET %s = MAX(%s - ?, 0), updated_at = ? WHERE id = ?`, column, column)

	result, err := r.db.ExecContext(ctx, query, amount, time.Now().Unix(), id)
	if err != nil {
		return nil, errors.DatabaseError("Failed to decrement credit", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, errors.DatabaseError("Failed to check decrement result", err)
	}
	if rows == 0 {
		return nil, errors.NotFound("Team")
	}

	t, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return t.Credits, nil
}

// List retrieves teams with pagination
func (r *TeamRepository) List(ctx context.Context, limit, offset int) ([]*team.Team, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams`).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count teams", err)
	}

	query := `
		SELECT id, name, current_plan_id, credits_quick, credits_suggestions,
			credits_plans, credits_reviews, is_trial_active, trial_ends_at, created_at, updated_at
		FROM teams ORDER BY id LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list teams", err)
	}
	defer rows.Close()

	var teams []*team.Team
	for rows.Next() {
		var t team.Team
		var planID sql.NullString
		var quick, suggestions, plans, reviews int64
		var trialEnds sql.NullInt64
		var createdAt, updatedAt int64

		err := rows.Scan(
			&t.ID, &t.Name, &planID, &quick, &suggestions, &plans, &reviews,
			&t.IsTrialActive, &trialEnds, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan team", err)
		}

		if planID.Valid {
			t.CurrentPlanID = planID.String
		}
		t.Credits = credit.Balance{
			credit.KindQuickContentCreations:    quick,
			credit.KindCustomContentSuggestions: suggestions,
			credit.KindContentPlans:             plans,
			credit.KindContentReviews:           reviews,
		}
		if trialEnds.Valid {
			endsAt := time.Unix(trialEnds.Int64, 0)
			t.TrialEndsAt = &endsAt
		}
		t.CreatedAt = time.Unix(createdAt, 0)
		t.UpdatedAt = time.Unix(updatedAt, 0)

		teams = append(teams, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate teams", err)
	}

	return teams, total, nil
}
