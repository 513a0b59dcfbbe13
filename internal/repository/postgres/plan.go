package postgres

import (
	"context"
	"database/sql"

	"github.com/contentloom/contentloom/internal/domain/plan"
	"github.com/contentloom/contentloom/internal/pkg/errors"
)

// PlanRepository implements plan.Repository
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *sql.DB) plan.Repository {
	return &PlanRepository{db: db}
}

const planColumns = `
	id, name, price_cents, trial_days, is_active,
	max_members, max_brands, max_personas, max_themes,
	quick_content_creations, custom_content_suggestions, content_plans, content_reviews
`

func scanPlan(row *sql.Row) (*plan.Plan, error) {
	var p plan.Plan
	var members, brands, personas, themes int64
	var quick, suggestions, plans, reviews int64

	err := row.Scan(
		&p.ID, &p.Name, &p.PriceCents, &p.TrialDays, &p.IsActive,
		&members, &brands, &personas, &themes,
		&quick, &suggestions, &plans, &reviews,
	)
	if err != nil {
		return nil, err
	}

	p.MaxMembers = plan.LimitFromValue(members)
	p.MaxBrands = plan.LimitFromValue(brands)
	p.MaxPersonas = plan.LimitFromValue(personas)
	p.MaxThemes = plan.LimitFromValue(themes)
	p.QuickContentCreations = plan.LimitFromValue(quick)
	p.CustomContentSuggestions = plan.LimitFromValue(suggestions)
	p.ContentPlans = plan.LimitFromValue(plans)
	p.ContentReviews = plan.LimitFromValue(reviews)

	return &p, nil
}

// GetByID retrieves a plan by ID
func (r *PlanRepository) GetByID(ctx context.Context, id string) (*plan.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = ?`

	p, err := scanPlan(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Plan")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get plan", err)
	}

	return p, nil
}

// GetByName retrieves a plan by tier name
func (r *PlanRepository) GetByName(ctx context.Context, name plan.Name) (*plan.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE name = ?`

	p, err := scanPlan(r.db.QueryRowContext(ctx, query, string(name)))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Plan")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get plan", err)
	}

	return p, nil
}

// ListActive retrieves all active plans ordered by price
func (r *PlanRepository) ListActive(ctx context.Context) ([]*plan.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE is_active = 1 ORDER BY price_cents ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list plans", err)
	}
	defer rows.Close()

	var plansOut []*plan.Plan
	for rows.Next() {
		var p plan.Plan
		var members, brands, personas, themes int64
		var quick, suggestions, planLimit, reviews int64

		err := rows.Scan(
			&p.ID, &p.Name, &p.PriceCents, &p.TrialDays, &p.IsActive,
			&members, &brands, &personas, &themes,
			&quick, &suggestions, &planLimit, &reviews,
		)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan plan", err)
		}

		p.MaxMembers = plan.LimitFromValue(members)
		p.MaxBrands = plan.LimitFromValue(brands)
		p.MaxPersonas = plan.LimitFromValue(personas)
		p.MaxThemes = plan.LimitFromValue(themes)
		p.QuickContentCreations = plan.LimitFromValue(quick)
		p.CustomContentSuggestions = plan.LimitFromValue(suggestions)
		p.ContentPlans = plan.LimitFromValue(planLimit)
		p.ContentReviews = plan.LimitFromValue(reviews)

		plansOut = append(plansOut, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate plans", err)
	}

	return plansOut, nil
}
