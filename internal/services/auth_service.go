package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/contentloom/contentloom/internal/auth"
	"github.com/contentloom/contentloom/internal/config"
	"github.com/contentloom/contentloom/internal/domain/credit"
	"github.com/contentloom/contentloom/internal/domain/plan"
	"github.com/contentloom/contentloom/internal/domain/subscription"
	"github.com/contentloom/contentloom/internal/domain/team"
	"github.com/contentloom/contentloom/internal/domain/user"
	"github.com/contentloom/contentloom/internal/pkg/errors"
	"github.com/contentloom/contentloom/internal/pkg/logger"
)

// AuthService handles registration, login and token minting
type AuthService struct {
	users    user.Repository
	teams    team.Repository
	catalog  plan.Catalog
	resolver subscription.Resolver
	cfg      config.AuthConfig
	logger   *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users user.Repository, teams team.Repository, catalog plan.Catalog, resolver subscription.Resolver, cfg config.AuthConfig, log *logger.Logger) *AuthService {
	return &AuthService{
		users:    users,
		teams:    teams,
		catalog:  catalog,
		resolver: resolver,
		cfg:      cfg,
		logger:   log,
	}
}

// Register creates a team and its first admin user. The team starts on the
// FREE plan with the plan's full credit allowance.
func (s *AuthService) Register(ctx context.Context, email, password, fullName, teamName string) (*user.User, auth.TokenPair, error) {
	if existing, _ := s.users.GetByEmail(ctx, email); existing != nil {
		return nil, auth.TokenPair{}, errors.Conflict("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BCryptCost)
	if err != nil {
		return nil, auth.TokenPair{}, errors.Internal("Failed to hash password", err)
	}

	free, err := s.catalog.Free(ctx)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	t := &team.Team{
		Name:          teamName,
		CurrentPlanID: free.ID,
		Credits:       startingCredits(free),
	}
	if err := s.teams.Create(ctx, t); err != nil {
		return nil, auth.TokenPair{}, err
	}

	// The create above already assigns FREE; this is a belt-and-braces
	// repair so the invariant holds even if plan seeding changes.
	if err := s.resolver.EnsurePlanAssigned(ctx, t.ID); err != nil {
		return nil, auth.TokenPair{}, err
	}

	u := &user.User{
		TeamID:       t.ID,
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
	}
	if fullName != "" {
		u.FullName = &fullName
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, auth.TokenPair{}, err
	}

	tokens, err := auth.MintTokens(u.ID, t.ID, u.Email, s.cfg.JWTSecret, s.cfg.AccessTokenExpiry, s.cfg.RefreshTokenExpiry)
	if err != nil {
		return nil, auth.TokenPair{}, errors.Internal("Failed to mint tokens", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"team_id": t.ID,
		"email":   u.Email,
	}).Info("User registered")

	return u, tokens, nil
}

// Login verifies credentials and mints a token pair
func (s *AuthService) Login(ctx context.Context, email, password string) (*user.User, auth.TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, auth.TokenPair{}, errors.Unauthorized("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, auth.TokenPair{}, errors.Unauthorized("Invalid email or password")
	}

	tokens, err := auth.MintTokens(u.ID, u.TeamID, u.Email, s.cfg.JWTSecret, s.cfg.AccessTokenExpiry, s.cfg.RefreshTokenExpiry)
	if err != nil {
		return nil, auth.TokenPair{}, errors.Internal("Failed to mint tokens", err)
	}

	return u, tokens, nil
}

// Refresh mints a new token pair from a valid refresh token
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	claims, err := auth.ParseClaims(refreshToken, s.cfg.JWTSecret)
	if err != nil {
		return auth.TokenPair{}, errors.Unauthorized("Invalid refresh token")
	}

	// The user may have been removed since the token was minted
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return auth.TokenPair{}, errors.Unauthorized("Invalid refresh token")
	}

	tokens, err := auth.MintTokens(u.ID, u.TeamID, u.Email, s.cfg.JWTSecret, s.cfg.AccessTokenExpiry, s.cfg.RefreshTokenExpiry)
	if err != nil {
		return auth.TokenPair{}, errors.Internal("Failed to mint tokens", err)
	}
	return tokens, nil
}

// Me retrieves the authenticated user
func (s *AuthService) Me(ctx context.Context, userID int64) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

// AddMember creates an additional member on an existing team. Quota
// enforcement happens at the handler via the guard.
func (s *AuthService) AddMember(ctx context.Context, teamID int64, email, password, fullName string) (*user.User, error) {
	if existing, _ := s.users.GetByEmail(ctx, email); existing != nil {
		return nil, errors.Conflict("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BCryptCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	u := &user.User{
		TeamID:       teamID,
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleMember,
	}
	if fullName != "" {
		u.FullName = &fullName
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"team_id": teamID,
	}).Info("Team member added")

	return u, nil
}

// startingCredits grants a new team its plan's full credit allowance.
// Unlimited ceilings are stored as the sentinel value.
func startingCredits(p *plan.Plan) credit.Balance {
	return credit.Balance{
		credit.KindQuickContentCreations:    p.QuickContentCreations.Value(),
		credit.KindCustomContentSuggestions: p.CustomContentSuggestions.Value(),
		credit.KindContentPlans:             p.ContentPlans.Value(),
		credit.KindContentReviews:           p.ContentReviews.Value(),
	}
}
