package client

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// PromptDecision is the outcome of one upgrade-prompt check
type PromptDecision string

const (
	// PromptNone means nothing to do: the team has access, a check is
	// already in flight, or the prompt was already shown this session.
	PromptNone PromptDecision = "NONE"
	// PromptShow means the caller should display the upgrade prompt.
	PromptShow PromptDecision = "SHOW"
	// PromptRedirect means access lapsed but the user already dismissed
	// the prompt this epoch, so send them to the billing page instead.
	PromptRedirect PromptDecision = "REDIRECT"
)

const lastSeenUserKey = "last_seen_user_id"

// UpgradePrompt decides when to surface the upgrade prompt after a
// team's access has lapsed. Two process-wide flags gate the check: one
// marks a check in flight, the other that the prompt was already shown
// this session. Both outlive any one caller so the prompt fires at most
// once no matter how often Check runs. Dismissals persist per user in
// the KV store and reset when a different user signs in on the same
// device.
type UpgradePrompt struct {
	client *Client
	store  KV

	// Logf, when set, receives failed status checks.
	Logf func(format string, v ...interface{})

	mu       sync.Mutex
	checking bool
	shown    bool
}

// NewUpgradePrompt creates a prompt controller backed by store
func NewUpgradePrompt(c *Client, store KV) *UpgradePrompt {
	return &UpgradePrompt{
		client: c,
		store:  store,
	}
}

func dismissKey(userID int64) string {
	return fmt.Sprintf("trial_modal_dismissed_%d", userID)
}

// Check runs one prompt cycle for the given user. A cycle that overlaps
// another, fails over the network, or finds nothing to show returns
// PromptNone; network failures are logged and treated as no-op so the
// caller's timer keeps running.
func (p *UpgradePrompt) Check(ctx context.Context, userID int64) PromptDecision {
	p.mu.Lock()
	if p.checking {
		p.mu.Unlock()
		return PromptNone
	}
	p.checking = true
	p.resetEpochLocked(userID)
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.checking = false
		p.mu.Unlock()
	}()

	status, err := p.client.SubscriptionStatus(ctx)
	if err != nil {
		p.logf("subscription status check failed: %v", err)
		return PromptNone
	}

	if !status.IsExpired || status.CanAccess {
		return PromptNone
	}

	if _, dismissed := p.store.Get(dismissKey(userID)); dismissed {
		return PromptRedirect
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shown {
		return PromptNone
	}
	p.shown = true
	return PromptShow
}

// Dismiss records that the user has seen and closed the prompt; further
// lapsed-access checks redirect instead of re-showing it.
func (p *UpgradePrompt) Dismiss(userID int64) error {
	return p.store.Set(dismissKey(userID), "true")
}

// ClearDismissal removes the user's dismissal flag
func (p *UpgradePrompt) ClearDismissal(userID int64) error {
	return p.store.Delete(dismissKey(userID))
}

// Run checks periodically until ctx is cancelled, reporting each
// non-PromptNone decision to onDecision.
func (p *UpgradePrompt) Run(ctx context.Context, userID int64, initialDelay, interval time.Duration, onDecision func(PromptDecision)) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(initialDelay):
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if d := p.Check(ctx, userID); d != PromptNone {
			onDecision(d)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// resetEpochLocked clears dismissal state and the shown flag when a
// different user signs in on the same device. Caller holds p.mu.
func (p *UpgradePrompt) resetEpochLocked(userID int64) {
	id := strconv.FormatInt(userID, 10)
	last, ok := p.store.Get(lastSeenUserKey)
	if ok && last == id {
		return
	}

	if ok {
		if prev, err := strconv.ParseInt(last, 10, 64); err == nil {
			_ = p.store.Delete(dismissKey(prev))
		}
		p.shown = false
	}
	_ = p.store.Set(lastSeenUserKey, id)
}

func (p *UpgradePrompt) logf(format string, v ...interface{}) {
	if p.Logf != nil {
		p.Logf(format, v...)
	}
}
