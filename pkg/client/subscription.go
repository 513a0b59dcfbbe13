package client

import "context"

// SubscriptionStatus resolves the caller team's current access status
func (c *Client) SubscriptionStatus(ctx context.Context) (*SubscriptionStatus, error) {
	var status SubscriptionStatus
	if err := c.doRequest(ctx, "GET", "/api/v1/subscription/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
