package plan

// Name identifies a plan tier
type Name string

// Plan tiers
const (
	NameFree       Name = "FREE"
	NameBasic      Name = "BASIC"
	NamePro        Name = "PRO"
	NameEnterprise Name = "ENTERPRISE"
)

// UnlimitedSentinel is the stored value that denotes "no limit". Rows at or
// above it are decoded into Limit{Unlimited: true}.
const UnlimitedSentinel int64 = 999999

// Limit is a plan ceiling: either a finite count or unlimited. Using a sum
// type instead of the raw sentinel keeps comparisons honest at extreme
// usage counts.
type Limit struct {
	N         int64
	Unlimited bool
}

// Finite returns a finite limit
func Finite(n int64) Limit {
	return Limit{N: n}
}

// Unlimited returns an unbounded limit
func Unlimited() Limit {
	return Limit{Unlimited: true}
}

// Allows reports whether one more unit may be used at the given current usage
func (l Limit) Allows(currentUsage int64) bool {
	if l.Unlimited {
		return true
	}
	return currentUsage < l.N
}

// Value returns the stored representation of the limit
func (l Limit) Value() int64 {
	if l.Unlimited {
		return UnlimitedSentinel
	}
	return l.N
}

// LimitFromValue decodes a stored limit value
func LimitFromValue(n int64) Limit {
	if n >= UnlimitedSentinel {
		return Unlimited()
	}
	return Finite(n)
}

// Plan is an immutable-per-version tier definition
type Plan struct {
	ID        string `json:"id"`
	Name      Name   `json:"name"`
	PriceCents int64 `json:"priceCents"`
	TrialDays int    `json:"trialDays"`
	IsActive  bool   `json:"isActive"`

	// Count-based resource ceilings
	MaxMembers  Limit `json:"maxMembers"`
	MaxBrands   Limit `json:"maxBrands"`
	MaxPersonas Limit `json:"maxPersonas"`
	MaxThemes   Limit `json:"maxThemes"`

	// Content-credit ceilings
	QuickContentCreations    Limit `json:"quickContentCreations"`
	CustomContentSuggestions Limit `json:"customContentSuggestions"`
	ContentPlans             Limit `json:"contentPlans"`
	ContentReviews           Limit `json:"contentReviews"`
}
