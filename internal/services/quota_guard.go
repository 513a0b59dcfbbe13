package services

import (
	"context"
	"fmt"

	"github.com/contentloom/contentloom/internal/domain/credit"
	"github.com/contentloom/contentloom/internal/domain/plan"
	"github.com/contentloom/contentloom/internal/domain/quota"
	"github.com/contentloom/contentloom/internal/domain/subscription"
	"github.com/contentloom/contentloom/internal/pkg/logger"
	"github.com/contentloom/contentloom/internal/pkg/metrics"
)

// QuotaGuardService implements quota.Guard
type QuotaGuardService struct {
	resolver subscription.Resolver
	counter  quota.ResourceCounter
	logger   *logger.Logger
}

// NewQuotaGuardService creates a new quota guard
func NewQuotaGuardService(resolver subscription.Resolver, counter quota.ResourceCounter, log *logger.Logger) quota.Guard {
	return &QuotaGuardService{
		resolver: resolver,
		counter:  counter,
		logger:   log,
	}
}

// CanPerform checks a content-credit ceiling against a caller-supplied
// usage count. The guard does not count content actions itself.
func (s *QuotaGuardService) CanPerform(ctx context.Context, teamID int64, kind credit.Kind, currentUsage int64) (quota.Decision, error) {
	if !kind.Valid() {
		return quota.Decision{}, fmt.Errorf("unknown credit kind: %s", kind)
	}

	st, err := s.resolver.Resolve(ctx, teamID)
	if err != nil {
		return quota.Decision{}, err
	}
	if d, denied := denyForAccess(st); denied {
		metrics.RecordQuotaCheck(string(quota.ForCredit(kind)), false)
		return d, nil
	}

	d := decide(creditLimit(st.Plan, kind), currentUsage, string(kind), st.Plan.Name)
	metrics.RecordQuotaCheck(string(quota.ForCredit(kind)), d.Allowed)
	return d, nil
}

// CanAddMembers checks the member ceiling against the current count
func (s *QuotaGuardService) CanAddMembers(ctx context.Context, teamID int64) (quota.Decision, error) {
	return s.canCreate(ctx, teamID, quota.ResourceMembers, func(p *plan.Plan) plan.Limit { return p.MaxMembers })
}

// CanCreateBrand checks the brand ceiling against the current count
func (s *QuotaGuardService) CanCreateBrand(ctx context.Context, teamID int64) (quota.Decision, error) {
	return s.canCreate(ctx, teamID, quota.ResourceBrands, func(p *plan.Plan) plan.Limit { return p.MaxBrands })
}

// CanCreatePersona checks the persona ceiling against the current count
func (s *QuotaGuardService) CanCreatePersona(ctx context.Context, teamID int64) (quota.Decision, error) {
	return s.canCreate(ctx, teamID, quota.ResourcePersonas, func(p *plan.Plan) plan.Limit { return p.MaxPersonas })
}

// CanCreateTheme checks the theme ceiling against the current count
func (s *QuotaGuardService) CanCreateTheme(ctx context.Context, teamID int64) (quota.Decision, error) {
	return s.canCreate(ctx, teamID, quota.ResourceThemes, func(p *plan.Plan) plan.Limit { return p.MaxThemes })
}

func (s *QuotaGuardService) canCreate(ctx context.Context, teamID int64, resource quota.Resource, limitOf func(*plan.Plan) plan.Limit) (quota.Decision, error) {
	st, err := s.resolver.Resolve(ctx, teamID)
	if err != nil {
		return quota.Decision{}, err
	}
	if d, denied := denyForAccess(st); denied {
		metrics.RecordQuotaCheck(string(resource), false)
		return d, nil
	}

	count, err := s.counter.Count(ctx, teamID, resource)
	if err != nil {
		return quota.Decision{}, err
	}

	d := decide(limitOf(st.Plan), count, string(resource), st.Plan.Name)
	metrics.RecordQuotaCheck(string(resource), d.Allowed)
	return d, nil
}

// denyForAccess translates a blocked access status into a denial with a
// reason that distinguishes an expired trial from an inactive subscription.
func denyForAccess(st *subscription.AccessStatus) (quota.Decision, bool) {
	if st.CanAccess {
		return quota.Decision{}, false
	}
	if st.IsExpired {
		return quota.Deny("Your trial has expired. Upgrade to continue.", nil), true
	}
	return quota.Deny("Your subscription is inactive.", nil), true
}

func decide(limit plan.Limit, currentUsage int64, label string, planName plan.Name) quota.Decision {
	if limit.Unlimited {
		return quota.Allow(nil)
	}
	n := limit.N
	if !limit.Allows(currentUsage) {
		reason := fmt.Sprintf("%s limit of %d reached on the %s plan", label, n, planName)
		return quota.Deny(reason, &n)
	}
	return quota.Allow(&n)
}

func creditLimit(p *plan.Plan, kind credit.Kind) plan.Limit {
	switch kind {
	case credit.KindQuickContentCreations:
		return p.QuickContentCreations
	case credit.KindCustomContentSuggestions:
		return p.CustomContentSuggestions
	case credit.KindContentPlans:
		return p.ContentPlans
	case credit.KindContentReviews:
		return p.ContentReviews
	}
	return plan.Finite(0)
}
