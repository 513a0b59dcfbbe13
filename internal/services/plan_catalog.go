package services

import (
	"context"

	"github.com/contentloom/contentloom/internal/domain/plan"
	"github.com/contentloom/contentloom/internal/pkg/errors"
	"github.com/contentloom/contentloom/internal/pkg/logger"
)

// PlanCatalogService implements plan.Catalog
type PlanCatalogService struct {
	repo   plan.Repository
	logger *logger.Logger
}

// NewPlanCatalogService creates a new plan catalog service
func NewPlanCatalogService(repo plan.Repository, log *logger.Logger) plan.Catalog {
	return &PlanCatalogService{
		repo:   repo,
		logger: log,
	}
}

// GetByID retrieves a plan by ID
func (s *PlanCatalogService) GetByID(ctx context.Context, id string) (*plan.Plan, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByName retrieves a plan by tier name
func (s *PlanCatalogService) GetByName(ctx context.Context, name plan.Name) (*plan.Plan, error) {
	return s.repo.GetByName(ctx, name)
}

// Free retrieves the FREE plan. Every downgrade and repair path depends on
// this row existing, so its absence is a deployment error, not a 404.
func (s *PlanCatalogService) Free(ctx context.Context) (*plan.Plan, error) {
	p, err := s.repo.GetByName(ctx, plan.NameFree)
	if err != nil {
		s.logger.ErrorWithErr(err, "FREE plan missing from catalog")
		return nil, errors.InconsistentPlanState("default plan not found", err)
	}
	return p, nil
}

// ListActive retrieves all active plans for display
func (s *PlanCatalogService) ListActive(ctx context.Context) ([]*plan.Plan, error) {
	return s.repo.ListActive(ctx)
}
