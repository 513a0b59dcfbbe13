package client

// User represents a user in the system
type User struct {
	ID       int64  `json:"id"`
	TeamID   int64  `json:"teamId"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
	Role     string `json:"role"`
}

// AuthResponse is returned by login, register and refresh
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user,omitempty"`
}

// Plan describes a subscription tier. Ceilings use a large sentinel
// value for unlimited.
type Plan struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	TrialDays  int    `json:"trialDays"`

	MaxMembers  int64 `json:"maxMembers"`
	MaxBrands   int64 `json:"maxBrands"`
	MaxPersonas int64 `json:"maxPersonas"`
	MaxThemes   int64 `json:"maxThemes"`

	QuickContentCreations    int64 `json:"quickContentCreations"`
	CustomContentSuggestions int64 `json:"customContentSuggestions"`
	ContentPlans             int64 `json:"contentPlans"`
	ContentReviews           int64 `json:"contentReviews"`
}

// SubscriptionStatus is the resolver's verdict for the caller's team
type SubscriptionStatus struct {
	IsActive      bool  `json:"isActive"`
	IsExpired     bool  `json:"isExpired"`
	IsTrial       bool  `json:"isTrial"`
	CanAccess     bool  `json:"canAccess"`
	DaysRemaining int   `json:"daysRemaining"`
	Plan          *Plan `json:"plan"`
}

// Subscription is one row of a team's plan assignment history
type Subscription struct {
	ID           int64  `json:"id"`
	PlanID       string `json:"planId"`
	Status       string `json:"status"`
	StartDate    string `json:"startDate"`
	TrialEndDate string `json:"trialEndDate,omitempty"`
	IsActive     bool   `json:"isActive"`
}

// Session is a usage session as reported by the server
type Session struct {
	ID                 string `json:"id"`
	State              string `json:"state"`
	AccumulatedSeconds int64  `json:"accumulatedSeconds"`
}

// SessionSeconds reports accumulated time after pause/end
type SessionSeconds struct {
	SessionID          string `json:"sessionId"`
	AccumulatedSeconds int64  `json:"accumulatedSeconds"`
}

// ContentResult carries generated text plus the remaining credit balance
type ContentResult struct {
	Text    string           `json:"text"`
	Credits map[string]int64 `json:"credits,omitempty"`
	Warning string           `json:"warning,omitempty"`
}

// Asset is a brand, persona or theme belonging to the caller's team
type Asset struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CheckoutSession carries the payment redirect URL
type CheckoutSession struct {
	URL string `json:"url"`
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status string `json:"status"`
}
