package asset

import "time"

// Kind identifies a team-scoped marketing asset type
type Kind string

// Asset kinds
const (
	KindBrand   Kind = "brand"
	KindPersona Kind = "persona"
	KindTheme   Kind = "theme"
)

// Valid reports whether k names a known asset kind
func (k Kind) Valid() bool {
	switch k {
	case KindBrand, KindPersona, KindTheme:
		return true
	}
	return false
}

// Asset is a brand, persona or theme owned by a team. Only the fields the
// quota subsystem needs are modeled here; the content payload is opaque.
type Asset struct {
	ID          int64     `json:"id"`
	TeamID      int64     `json:"team_id"`
	Kind        Kind      `json:"kind"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
