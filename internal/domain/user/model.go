package user

import "time"

// User represents an authenticated member of a team
type User struct {
	ID           int64     `json:"id"`
	TeamID       int64     `json:"team_id"`
	Email        string    `json:"email"`
	FullName     *string   `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"` // Not exposed in JSON
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// User roles
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)
