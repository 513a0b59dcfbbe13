package dto

import "github.com/contentloom/contentloom/internal/domain/asset"

// CreateAssetRequest represents a brand/persona/theme creation request
type CreateAssetRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// AssetDTO is the wire shape of an asset
type AssetDTO struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// FromAsset converts a domain asset to its wire shape
func FromAsset(a *asset.Asset) *AssetDTO {
	return &AssetDTO{
		ID:          a.ID,
		Kind:        string(a.Kind),
		Name:        a.Name,
		Description: a.Description,
	}
}

// FromAssets converts a slice of domain assets
func FromAssets(as []*asset.Asset) []*AssetDTO {
	out := make([]*AssetDTO, 0, len(as))
	for _, a := range as {
		out = append(out, FromAsset(a))
	}
	return out
}
