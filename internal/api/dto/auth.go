package dto

import "github.com/contentloom/contentloom/internal/domain/user"

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName,omitempty"`
	TeamName string `json:"teamName" validate:"required,min=2,max=100"`
}

// RefreshTokenRequest represents a refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         *UserDTO `json:"user"`
}

// UserDTO is the wire shape of a user
type UserDTO struct {
	ID       int64  `json:"id"`
	TeamID   int64  `json:"teamId"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
	Role     string `json:"role"`
}

// FromUser converts a domain user to its wire shape
func FromUser(u *user.User) *UserDTO {
	d := &UserDTO{
		ID:     u.ID,
		TeamID: u.TeamID,
		Email:  u.Email,
		Role:   u.Role,
	}
	if u.FullName != nil {
		d.FullName = *u.FullName
	}
	return d
}

// AddMemberRequest represents a request to add a team member
type AddMemberRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName,omitempty"`
}
