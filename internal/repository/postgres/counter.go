package postgres

import (
	"context"
	"fmt"

	"github.com/contentloom/contentloom/internal/domain/asset"
	"github.com/contentloom/contentloom/internal/domain/quota"
	"github.com/contentloom/contentloom/internal/domain/user"
)

// ResourceCounter implements quota.ResourceCounter by delegating to the
// asset and user repositories. The guard never counts; this is the
// data-layer counting query it consumes.
type ResourceCounter struct {
	assets asset.Repository
	users  user.Repository
}

// NewResourceCounter creates a new resource counter
func NewResourceCounter(assets asset.Repository, users user.Repository) quota.ResourceCounter {
	return &ResourceCounter{assets: assets, users: users}
}

// Count returns the team's current count for a resource kind
func (c *ResourceCounter) Count(ctx context.Context, teamID int64, resource quota.Resource) (int64, error) {
	switch resource {
	case quota.ResourceMembers:
		return c.users.CountByTeam(ctx, teamID)
	case quota.ResourceBrands:
		return c.assets.Count(ctx, teamID, asset.KindBrand)
	case quota.ResourcePersonas:
		return c.assets.Count(ctx, teamID, asset.KindPersona)
	case quota.ResourceThemes:
		return c.assets.Count(ctx, teamID, asset.KindTheme)
	}
	return 0, fmt.Errorf("uncountable resource: %s", resource)
}
