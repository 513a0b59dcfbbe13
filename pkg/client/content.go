package client

import "context"

// ContentRequest carries the user prompt for a generation operation
type ContentRequest struct {
	Prompt string `json:"prompt"`
}

// QuickContent generates a short piece of marketing content
func (c *Client) QuickContent(ctx context.Context, prompt string) (*ContentResult, error) {
	return c.generate(ctx, "/api/v1/content/quick", prompt)
}

// ContentSuggestions generates tailored content suggestions
func (c *Client) ContentSuggestions(ctx context.Context, prompt string) (*ContentResult, error) {
	return c.generate(ctx, "/api/v1/content/suggestions", prompt)
}

// ContentPlan generates a structured content plan
func (c *Client) ContentPlan(ctx context.Context, prompt string) (*ContentResult, error) {
	return c.generate(ctx, "/api/v1/content/plans", prompt)
}

// ContentReview reviews a draft and suggests improvements
func (c *Client) ContentReview(ctx context.Context, prompt string) (*ContentResult, error) {
	return c.generate(ctx, "/api/v1/content/reviews", prompt)
}

func (c *Client) generate(ctx context.Context, path, prompt string) (*ContentResult, error) {
	var res ContentResult
	if err := c.doRequest(ctx, "POST", path, ContentRequest{Prompt: prompt}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
