package subscription

import "context"

// Resolver computes whether a team may use the product.
//
// Resolve is idempotent and self-correcting: repeated calls after a trial
// expiry converge to the same downgraded state without further writes.
type Resolver interface {
	// Resolve computes the team's access status. A missing plan is
	// repaired to FREE as a side effect; an expired trial triggers the
	// one-directional TRIAL to EXPIRED transition plus a downgrade of the
	// team's plan to FREE.
	Resolve(ctx context.Context, teamID int64) (*AccessStatus, error)

	// EnsurePlanAssigned repairs a missing plan assignment. Invoked at
	// team creation so the Resolve read path almost never has to write.
	EnsurePlanAssigned(ctx context.Context, teamID int64) error

	// StartTrial opens a TRIAL subscription for the given plan, replacing
	// any currently active subscription.
	StartTrial(ctx context.Context, teamID int64, planID string) (*Subscription, error)
}
