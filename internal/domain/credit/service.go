package credit

import "context"

// Ledger defines the interface for debiting content credits.
//
// Credits are debited after a successful content action, never reserved
// beforehand. Two concurrent requests can both observe sufficient balance
// before either decrements; the store-level clamp keeps the balance at or
// above zero but a team can overspend past its nominal ceiling under
// concurrent load. Accepted trade-off, see DESIGN.md.
type Ledger interface {
	// Decrement debits amount credits of the given kind and returns the
	// updated balance. The result is clamped at zero.
	Decrement(ctx context.Context, teamID int64, kind Kind, amount int64) (Balance, error)
}
