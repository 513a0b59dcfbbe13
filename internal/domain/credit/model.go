package credit

// Kind identifies one of the four content-credit counters
type Kind string

// Credit kinds
const (
	KindQuickContentCreations    Kind = "quickContentCreations"
	KindCustomContentSuggestions Kind = "customContentSuggestions"
	KindContentPlans             Kind = "contentPlans"
	KindContentReviews           Kind = "contentReviews"
)

// Kinds lists every credit kind in display order
func Kinds() []Kind {
	return []Kind{
		KindQuickContentCreations,
		KindCustomContentSuggestions,
		KindContentPlans,
		KindContentReviews,
	}
}

// Valid reports whether k names a known credit counter
func (k Kind) Valid() bool {
	switch k {
	case KindQuickContentCreations, KindCustomContentSuggestions, KindContentPlans, KindContentReviews:
		return true
	}
	return false
}

// Balance is the remaining credit per kind. Values are remaining balance,
// not consumed counts, and never go below zero.
type Balance map[Kind]int64

// Clone returns a copy of the balance
func (b Balance) Clone() Balance {
	out := make(Balance, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Remaining returns the balance for a kind, zero when absent
func (b Balance) Remaining(k Kind) int64 {
	return b[k]
}
