package services

import (
	"context"
	"testing"
	"time"

	"github.com/contentloom/contentloom/internal/config"
	"github.com/contentloom/contentloom/internal/domain/credit"
	"github.com/contentloom/contentloom/internal/pkg/logger"
	"github.com/contentloom/contentloom/internal/testutil"
)

func newTestAuthService(t *testing.T) (*AuthService, *testutil.MockUserRepository, *testutil.MockTeamRepository) {
	t.Helper()
	plans := testutil.NewMockPlanRepository()
	testPlans(plans)
	users := testutil.NewMockUserRepository()
	teams := testutil.NewMockTeamRepository()
	subs := testutil.NewMockSubscriptionRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	catalog := NewPlanCatalogService(plans, log)
	resolver := NewSubscriptionResolverService(teams, subs, catalog, log)

	cfg := config.AuthConfig{
		JWTSecret:          "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
		BCryptCost:         4,
	}
	return NewAuthService(users, teams, catalog, resolver, cfg, log), users, teams
}

func TestAuthService_Register(t *testing.T) {
	svc, _, teams := newTestAuthService(t)
	ctx := context.Background()

	u, tokens, err := svc.Register(ctx, "owner@acme.test", "hunter22", "Ada", "acme")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("Register() returned empty tokens")
	}

	created := teams.Teams[u.TeamID]
	if created.CurrentPlanID != "plan-free" {
		t.Errorf("new team plan = %q, want plan-free", created.CurrentPlanID)
	}
	if got := created.Credits.Remaining(credit.KindQuickContentCreations); got != 3 {
		t.Errorf("starting credits = %d, want the FREE allowance of 3", got)
	}

	// Duplicate email is rejected
	if _, _, err := svc.Register(ctx, "owner@acme.test", "hunter22", "Ada", "acme2"); err == nil {
		t.Error("Register() with duplicate email should fail")
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "owner@acme.test", "hunter22", "", "acme"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"valid credentials", "owner@acme.test", "hunter22", false},
		{"wrong password", "owner@acme.test", "nope", true},
		{"unknown email", "ghost@acme.test", "hunter22", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, tokens, err := svc.Login(ctx, tt.email, tt.password)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Login() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && tokens.AccessToken == "" {
				t.Error("Login() returned empty access token")
			}
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, tokens, err := svc.Register(ctx, "owner@acme.test", "hunter22", "", "acme")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	fresh, err := svc.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if fresh.AccessToken == "" {
		t.Error("Refresh() returned empty access token")
	}

	if _, err := svc.Refresh(ctx, "not-a-token"); err == nil {
		t.Error("Refresh() with garbage token should fail")
	}
}

func TestAuthService_AddMember(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	ctx := context.Background()

	owner, _, err := svc.Register(ctx, "owner@acme.test", "hunter22", "", "acme")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	member, err := svc.AddMember(ctx, owner.TeamID, "dev@acme.test", "hunter22", "Grace")
	if err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}
	if member.TeamID != owner.TeamID {
		t.Errorf("member team = %d, want %d", member.TeamID, owner.TeamID)
	}

	count, _ := users.CountByTeam(ctx, owner.TeamID)
	if count != 2 {
		t.Errorf("team member count = %d, want 2", count)
	}
}
