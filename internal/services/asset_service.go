package services

import (
	"context"
	"fmt"

	"github.com/contentloom/contentloom/internal/domain/asset"
	"github.com/contentloom/contentloom/internal/domain/quota"
	"github.com/contentloom/contentloom/internal/pkg/errors"
	"github.com/contentloom/contentloom/internal/pkg/logger"
)

// AssetService manages team-scoped brands, personas and themes. Creation
// is quota-checked against the team's plan.
type AssetService struct {
	repo   asset.Repository
	guard  quota.Guard
	logger *logger.Logger
}

// NewAssetService creates a new asset service
func NewAssetService(repo asset.Repository, guard quota.Guard, log *logger.Logger) *AssetService {
	return &AssetService{
		repo:   repo,
		guard:  guard,
		logger: log,
	}
}

// Create creates an asset if the team's plan allows one more of its kind
func (s *AssetService) Create(ctx context.Context, a *asset.Asset) error {
	if !a.Kind.Valid() {
		return fmt.Errorf("unknown asset kind: %s", a.Kind)
	}

	decision, err := s.check(ctx, a.TeamID, a.Kind)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return errors.QuotaExceeded(decision.Reason, decision)
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"asset_id": a.ID,
		"team_id":  a.TeamID,
		"kind":     string(a.Kind),
	}).Info("Asset created")

	return nil
}

// List retrieves all assets of a kind for a team
func (s *AssetService) List(ctx context.Context, teamID int64, kind asset.Kind) ([]*asset.Asset, error) {
	return s.repo.List(ctx, teamID, kind)
}

// Delete deletes an asset owned by a team
func (s *AssetService) Delete(ctx context.Context, teamID, id int64) error {
	return s.repo.Delete(ctx, teamID, id)
}

func (s *AssetService) check(ctx context.Context, teamID int64, kind asset.Kind) (quota.Decision, error) {
	switch kind {
	case asset.KindBrand:
		return s.guard.CanCreateBrand(ctx, teamID)
	case asset.KindPersona:
		return s.guard.CanCreatePersona(ctx, teamID)
	case asset.KindTheme:
		return s.guard.CanCreateTheme(ctx, teamID)
	}
	return quota.Decision{}, fmt.Errorf("unknown asset kind: %s", kind)
}
