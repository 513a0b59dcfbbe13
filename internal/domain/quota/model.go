package quota

import "github.com/contentloom/contentloom/internal/domain/credit"

// Resource identifies a quota-checked resource kind
type Resource string

// Count-based resources
const (
	ResourceMembers  Resource = "members"
	ResourceBrands   Resource = "brands"
	ResourcePersonas Resource = "personas"
	ResourceThemes   Resource = "themes"
)

// ForCredit maps a credit kind onto its quota resource name
func ForCredit(k credit.Kind) Resource {
	return Resource(k)
}

// Decision is the structured quota answer. Denial is a value, not an
// error, so callers can render the message without exception handling.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Limit   *int64 `json:"limit,omitempty"`
}

// Allow returns an allowing decision echoing the limit for display
func Allow(limit *int64) Decision {
	return Decision{Allowed: true, Limit: limit}
}

// Deny returns a denying decision
func Deny(reason string, limit *int64) Decision {
	return Decision{Allowed: false, Reason: reason, Limit: limit}
}
