package client

import "context"

// ListPlans returns all active plan tiers ordered for display
func (c *Client) ListPlans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := c.doRequest(ctx, "GET", "/api/v1/billing/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// CreateCheckout opens a payment checkout session for a paid plan
func (c *Client) CreateCheckout(ctx context.Context, planID string) (*CheckoutSession, error) {
	req := map[string]string{"planId": planID}

	var sess CheckoutSession
	if err := c.doRequest(ctx, "POST", "/api/v1/billing/checkout", req, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// StartTrial starts a trial of the given plan for the caller's team
func (c *Client) StartTrial(ctx context.Context, planID string) (*Subscription, error) {
	req := map[string]string{"planId": planID}

	var sub Subscription
	if err := c.doRequest(ctx, "POST", "/api/v1/billing/trial", req, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// ActivatePlan assigns a paid plan to the caller's team
func (c *Client) ActivatePlan(ctx context.Context, planID string) (*Subscription, error) {
	req := map[string]string{"planId": planID}

	var sub Subscription
	if err := c.doRequest(ctx, "POST", "/api/v1/billing/subscription", req, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}
