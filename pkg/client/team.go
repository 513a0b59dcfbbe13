package client

import "context"

// AddMemberRequest creates a new account on the caller's team
type AddMemberRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
}

// ListMembers lists the caller team's member accounts
func (c *Client) ListMembers(ctx context.Context) ([]User, error) {
	var members []User
	if err := c.doRequest(ctx, "GET", "/api/v1/team/members", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// AddMember adds a member to the caller's team, subject to plan limits
func (c *Client) AddMember(ctx context.Context, req AddMemberRequest) (*User, error) {
	var member User
	if err := c.doRequest(ctx, "POST", "/api/v1/team/members", req, &member); err != nil {
		return nil, err
	}
	return &member, nil
}
