package client

import "context"

type sessionRequest struct {
	SessionID string `json:"sessionId"`
}

// StartSession opens the user's usage session. If a session is already
// running the server returns it instead of opening a second one.
func (c *Client) StartSession(ctx context.Context) (*Session, error) {
	var sess Session
	if err := c.doRequest(ctx, "POST", "/api/v1/usage-sessions/start", nil, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// PauseSession folds the running stretch into accumulated time
func (c *Client) PauseSession(ctx context.Context, sessionID string) (*SessionSeconds, error) {
	var secs SessionSeconds
	if err := c.doRequest(ctx, "POST", "/api/v1/usage-sessions/pause", sessionRequest{SessionID: sessionID}, &secs); err != nil {
		return nil, err
	}
	return &secs, nil
}

// ResumeSession restarts a paused session. If the session was reaped or
// ended in the meantime the server opens a fresh one, so the returned id
// may differ from the one passed in.
func (c *Client) ResumeSession(ctx context.Context, sessionID string) (*Session, error) {
	var sess Session
	if err := c.doRequest(ctx, "POST", "/api/v1/usage-sessions/resume", sessionRequest{SessionID: sessionID}, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// SessionHeartbeat extends the session's liveness window
func (c *Client) SessionHeartbeat(ctx context.Context, sessionID string) error {
	return c.doRequest(ctx, "POST", "/api/v1/usage-sessions/heartbeat", sessionRequest{SessionID: sessionID}, nil)
}

// EndSession finalizes the session and reports total accumulated seconds
func (c *Client) EndSession(ctx context.Context, sessionID string) (*SessionSeconds, error) {
	var secs SessionSeconds
	if err := c.doRequest(ctx, "POST", "/api/v1/usage-sessions/end", sessionRequest{SessionID: sessionID}, &secs); err != nil {
		return nil, err
	}
	return &secs, nil
}

// BeaconPause is the teardown-time pause. The call is fire-and-forget:
// the response is discarded and any error is returned only so callers
// that still have a live context can log it.
func (c *Client) BeaconPause(ctx context.Context, sessionID string) error {
	return c.doRequest(ctx, "POST", "/api/v1/usage-sessions/beacon", sessionRequest{SessionID: sessionID}, nil)
}
