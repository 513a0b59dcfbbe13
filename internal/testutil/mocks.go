package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/contentloom/contentloom/internal/domain/asset"
	"github.com/contentloom/contentloom/internal/domain/credit"
	"github.com/contentloom/contentloom/internal/domain/plan"
	"github.com/contentloom/contentloom/internal/domain/quota"
	"github.com/contentloom/contentloom/internal/domain/session"
	"github.com/contentloom/contentloom/internal/domain/subscription"
	"github.com/contentloom/contentloom/internal/domain/team"
	"github.com/contentloom/contentloom/internal/domain/user"
)

// MockPlanRepository is a mock implementation of plan.Repository
type MockPlanRepository struct {
	Plans    map[string]*plan.Plan
	GetError error
}

func NewMockPlanRepository() *MockPlanRepository {
	return &MockPlanRepository{Plans: make(map[string]*plan.Plan)}
}

// Seed adds a plan and returns it for further tweaking
func (m *MockPlanRepository) Seed(p *plan.Plan) *plan.Plan {
	m.Plans[p.ID] = p
	return p
}

func (m *MockPlanRepository) GetByID(ctx context.Context, id string) (*plan.Plan, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	p, ok := m.Plans[id]
	if !ok {
		return nil, fmt.Errorf("plan not found")
	}
	return p, nil
}

func (m *MockPlanRepository) GetByName(ctx context.Context, name plan.Name) (*plan.Plan, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, p := range m.Plans {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("plan not found")
}

func (m *MockPlanRepository) ListActive(ctx context.Context) ([]*plan.Plan, error) {
	var result []*plan.Plan
	for _, p := range m.Plans {
		if p.IsActive {
			result = append(result, p)
		}
	}
	return result, nil
}

// MockTeamRepository is a mock implementation of team.Repository. It
// counts writes so tests can assert on idempotency.
type MockTeamRepository struct {
	Teams          map[int64]*team.Team
	NextID         int64
	WriteCount     int
	CreateError    error
	GetError       error
	UpdateError    error
	DecrementError error
}

func NewMockTeamRepository() *MockTeamRepository {
	return &MockTeamRepository{
		Teams:  make(map[int64]*team.Team),
		NextID: 1,
	}
}

func (m *MockTeamRepository) Create(ctx context.Context, t *team.Team) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	t.ID = m.NextID
	m.NextID++
	if t.Credits == nil {
		t.Credits = credit.Balance{}
	}
	m.Teams[t.ID] = t
	m.WriteCount++
	return nil
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id int64) (*team.Team, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	t, ok := m.Teams[id]
	if !ok {
		return nil, fmt.Errorf("team not found")
	}
	return t, nil
}

func (m *MockTeamRepository) Update(ctx context.Context, t *team.Team) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Teams[t.ID]; !ok {
		return fmt.Errorf("team not found")
	}
	m.Teams[t.ID] = t
	m.WriteCount++
	return nil
}

func (m *MockTeamRepository) UpdatePlan(ctx context.Context, id int64, planID string) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	t, ok := m.Teams[id]
	if !ok {
		return fmt.Errorf("team not found")
	}
	t.CurrentPlanID = planID
	m.WriteCount++
	return nil
}

func (m *MockTeamRepository) UpdateCredits(ctx context.Context, id int64, credits credit.Balance) error {
	t, ok := m.Teams[id]
	if !ok {
		return fmt.Errorf("team not found")
	}
	t.Credits = credits.Clone()
	m.WriteCount++
	return nil
}

func (m *MockTeamRepository) DecrementCredit(ctx context.Context, id int64, kind credit.Kind, amount int64) (credit.Balance, error) {
	if m.DecrementError != nil {
		return nil, m.DecrementError
	}
	t, ok := m.Teams[id]
	if !ok {
		return nil, fmt.Errorf("team not found")
	}
	next := t.Credits.Remaining(kind) - amount
	if next < 0 {
		next = 0
	}
	t.Credits[kind] = next
	m.WriteCount++
	return t.Credits.Clone(), nil
}

func (m *MockTeamRepository) List(ctx context.Context, limit, offset int) ([]*team.Team, int64, error) {
	var result []*team.Team
	for _, t := range m.Teams {
		result = append(result, t)
	}
	return result, int64(len(result)), nil
}

// MockSubscriptionRepository is a mock implementation of
// subscription.Repository
type MockSubscriptionRepository struct {
	Subscriptions map[int64]*subscription.Subscription
	NextID        int64
	WriteCount    int
	CreateError   error
	GetError      error
	UpdateError   error
}

func NewMockSubscriptionRepository() *MockSubscriptionRepository {
	return &MockSubscriptionRepository{
		Subscriptions: make(map[int64]*subscription.Subscription),
		NextID:        1,
	}
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	s.ID = m.NextID
	m.NextID++
	m.Subscriptions[s.ID] = s
	m.WriteCount++
	return nil
}

func (m *MockSubscriptionRepository) GetActive(ctx context.Context, teamID int64) (*subscription.Subscription, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	var latest *subscription.Subscription
	for _, s := range m.Subscriptions {
		if s.TeamID != teamID || !s.IsActive {
			continue
		}
		if latest == nil || s.StartDate.After(latest.StartDate) {
			latest = s
		}
	}
	return latest, nil
}

func (m *MockSubscriptionRepository) MarkExpired(ctx context.Context, id int64, endedAt time.Time) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	s, ok := m.Subscriptions[id]
	if !ok {
		return fmt.Errorf("subscription not found")
	}
	s.Status = subscription.StatusExpired
	s.IsActive = false
	s.EndDate = &endedAt
	m.WriteCount++
	return nil
}

func (m *MockSubscriptionRepository) DeactivateAll(ctx context.Context, teamID int64) error {
	for _, s := range m.Subscriptions {
		if s.TeamID == teamID && s.IsActive {
			s.IsActive = false
			m.WriteCount++
		}
	}
	return nil
}

func (m *MockSubscriptionRepository) ListActiveTrials(ctx context.Context, limit, offset int) ([]int64, error) {
	var ids []int64
	for _, s := range m.Subscriptions {
		if s.Status == subscription.StatusTrial && s.IsActive {
			ids = append(ids, s.TeamID)
		}
	}
	return ids, nil
}

// MockSessionRepository is a mock implementation of session.Repository
type MockSessionRepository struct {
	Sessions    map[string]*session.UsageSession
	CreateError error
	GetError    error
	UpdateError error
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{Sessions: make(map[string]*session.UsageSession)}
}

func (m *MockSessionRepository) Create(ctx context.Context, s *session.UsageSession) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Sessions[s.ID] = s
	return nil
}

func (m *MockSessionRepository) GetByID(ctx context.Context, userID int64, id string) (*session.UsageSession, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	s, ok := m.Sessions[id]
	if !ok || s.UserID != userID {
		return nil, fmt.Errorf("session not found")
	}
	return s, nil
}

func (m *MockSessionRepository) GetRunning(ctx context.Context, userID int64) (*session.UsageSession, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, s := range m.Sessions {
		if s.UserID == userID && s.State == session.StateRunning {
			return s, nil
		}
	}
	return nil, nil
}

func (m *MockSessionRepository) Update(ctx context.Context, s *session.UsageSession) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Sessions[s.ID]; !ok {
		return fmt.Errorf("session not found")
	}
	m.Sessions[s.ID] = s
	return nil
}

func (m *MockSessionRepository) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]*session.UsageSession, error) {
	var result []*session.UsageSession
	for _, s := range m.Sessions {
		if s.State == session.StateRunning && s.LastHeartbeatAt.Before(cutoff) {
			result = append(result, s)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

// MockAssetRepository is a mock implementation of asset.Repository
type MockAssetRepository struct {
	Assets      map[int64]*asset.Asset
	NextID      int64
	CreateError error
}

func NewMockAssetRepository() *MockAssetRepository {
	return &MockAssetRepository{
		Assets: make(map[int64]*asset.Asset),
		NextID: 1,
	}
}

func (m *MockAssetRepository) Create(ctx context.Context, a *asset.Asset) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	a.ID = m.NextID
	m.NextID++
	m.Assets[a.ID] = a
	return nil
}

func (m *MockAssetRepository) GetByID(ctx context.Context, teamID, id int64) (*asset.Asset, error) {
	a, ok := m.Assets[id]
	if !ok || a.TeamID != teamID {
		return nil, fmt.Errorf("asset not found")
	}
	return a, nil
}

func (m *MockAssetRepository) List(ctx context.Context, teamID int64, kind asset.Kind) ([]*asset.Asset, error) {
	var result []*asset.Asset
	for _, a := range m.Assets {
		if a.TeamID == teamID && a.Kind == kind {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *MockAssetRepository) Count(ctx context.Context, teamID int64, kind asset.Kind) (int64, error) {
	var n int64
	for _, a := range m.Assets {
		if a.TeamID == teamID && a.Kind == kind {
			n++
		}
	}
	return n, nil
}

func (m *MockAssetRepository) Delete(ctx context.Context, teamID, id int64) error {
	a, ok := m.Assets[id]
	if !ok || a.TeamID != teamID {
		return fmt.Errorf("asset not found")
	}
	delete(m.Assets, id)
	return nil
}

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	Users       map[int64]*user.User
	EmailIndex  map[string]*user.User
	NextID      int64
	CreateError error
	GetError    error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[int64]*user.User),
		EmailIndex: make(map[string]*user.User),
		NextID:     1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	u.ID = m.NextID
	m.NextID++
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.EmailIndex[email]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	if _, ok := m.Users[u.ID]; !ok {
		return fmt.Errorf("user not found")
	}
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) CountByTeam(ctx context.Context, teamID int64) (int64, error) {
	var n int64
	for _, u := range m.Users {
		if u.TeamID == teamID {
			n++
		}
	}
	return n, nil
}

func (m *MockUserRepository) ListByTeam(ctx context.Context, teamID int64) ([]*user.User, error) {
	var result []*user.User
	for _, u := range m.Users {
		if u.TeamID == teamID {
			result = append(result, u)
		}
	}
	return result, nil
}

// MockResourceCounter is a mock implementation of quota.ResourceCounter
// with fixed counts per resource.
type MockResourceCounter struct {
	Counts     map[quota.Resource]int64
	CountError error
}

func NewMockResourceCounter() *MockResourceCounter {
	return &MockResourceCounter{Counts: make(map[quota.Resource]int64)}
}

func (m *MockResourceCounter) Count(ctx context.Context, teamID int64, resource quota.Resource) (int64, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	return m.Counts[resource], nil
}
