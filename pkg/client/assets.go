package client

import (
	"context"
	"fmt"
)

// CreateAssetRequest names a new brand, persona or theme
type CreateAssetRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListAssets lists the team's assets of one kind ("brands", "personas"
// or "themes").
func (c *Client) ListAssets(ctx context.Context, kind string) ([]Asset, error) {
	var assets []Asset
	if err := c.doRequest(ctx, "GET", "/api/v1/"+kind, nil, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// CreateAsset creates an asset of the given kind, subject to plan limits
func (c *Client) CreateAsset(ctx context.Context, kind string, req CreateAssetRequest) (*Asset, error) {
	var a Asset
	if err := c.doRequest(ctx, "POST", "/api/v1/"+kind, req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAsset removes an asset by id
func (c *Client) DeleteAsset(ctx context.Context, kind string, id int64) error {
	return c.doRequest(ctx, "DELETE", fmt.Sprintf("/api/v1/%s/%d", kind, id), nil, nil)
}
