package goals

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/savelxev/biteplan-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProfileRepo struct {
	profiles map[string]*domain.Profile

	updateCalls int
	lastGoal    float64
	lastTargets domain.NutritionTargets
	lastFiber   int
	updateErr   error
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (m *mockProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	m.profiles[p.UserID] = p
	return nil
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	if _, ok := m.profiles[p.UserID]; !ok {
		return domain.ErrProfileNotFound
	}
	copied := *p
	m.profiles[p.UserID] = &copied
	return nil
}

func (m *mockProfileRepo) UpdateGoalAndTargets(_ context.Context, userID string, goalWeightKg float64, targets domain.NutritionTargets, fiberGoal int) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.profiles[userID]; !ok {
		return domain.ErrProfileNotFound
	}
	m.updateCalls++
	m.lastGoal = goalWeightKg
	m.lastTargets = targets
	m.lastFiber = fiberGoal
	return nil
}

type mockCache struct {
	values   map[string]domain.NutritionTargets
	setCalls int
}

func newMockCache() *mockCache {
	return &mockCache{values: make(map[string]domain.NutritionTargets)}
}

func (m *mockCache) Get(_ context.Context, userID string) (*domain.NutritionTargets, error) {
	t, ok := m.values[userID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *mockCache) Set(_ context.Context, userID string, targets domain.NutritionTargets) error {
	m.setCalls++
	m.values[userID] = targets
	return nil
}

func (m *mockCache) Invalidate(_ context.Context, userID string) error {
	delete(m.values, userID)
	return nil
}

type mockProposer struct {
	proposal *domain.TargetProposal
	err      error
	calls    int
	lastCtx  string
}

func (m *mockProposer) ProposeTargets(_ context.Context, goalContext string) (*domain.TargetProposal, error) {
	m.calls++
	m.lastCtx = goalContext
	if m.err != nil {
		return nil, m.err
	}
	return m.proposal, nil
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func gptr(g domain.Gender) *domain.Gender { return &g }

func seedProfile(repo *mockProfileRepo) *domain.Profile {
	p := &domain.Profile{
		UserID:     "user-1",
		Gender:     gptr(domain.GenderMale),
		Age:        iptr(30),
		Weight:     fptr(80),
		WeightUnit: domain.WeightUnitKg,
		Height:     fptr(180),
		HeightUnit: domain.HeightUnitCm,
		Goal:       domain.Goal{Type: domain.GoalLose, DesiredWeightKg: fptr(75)},
		Targets:    domain.NutritionTargets{Calories: 2500, Protein: 160, Carbs: 300, Fat: 80, HealthScore: 8},
	}
	repo.profiles[p.UserID] = p
	return p
}

func completeProposal() *domain.TargetProposal {
	return &domain.TargetProposal{
		DailyCalorieGoal: fptr(2300),
		ProteinGoal:      fptr(150),
		CarbsGoal:        fptr(280),
		FatGoal:          fptr(70),
		FiberGoal:        fptr(32),
		Reasoning:        "Moderate deficit appropriate for 5 kg of loss.",
	}
}

func newTestUseCase(repo *mockProfileRepo, cache *mockCache, proposer *mockProposer) *GoalsUseCase {
	uc := NewGoalsUseCase(repo, cache, proposer, slog.New(slog.NewTextHandler(io.Discard, nil)))
	uc.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	return uc
}

func TestRecalculateProfileNotFound(t *testing.T) {
	repo := newMockProfileRepo()
	proposer := &mockProposer{proposal: completeProposal()}
	uc := newTestUseCase(repo, newMockCache(), proposer)

	_, err := uc.Recalculate(context.Background(), "nobody", 72)

	require.ErrorIs(t, err, domain.ErrProfileNotFound)
	assert.Zero(t, proposer.calls, "engine must not be called without a profile")
	assert.Zero(t, repo.updateCalls)
}

func TestRecalculateSuccess(t *testing.T) {
	repo := newMockProfileRepo()
	seedProfile(repo)
	cache := newMockCache()
	proposer := &mockProposer{proposal: completeProposal()}
	uc := newTestUseCase(repo, cache, proposer)

	result, err := uc.Recalculate(context.Background(), "user-1", 72)

	require.NoError(t, err)
	assert.Equal(t, 1, repo.updateCalls, "exactly one profile write per successful call")
	assert.Equal(t, 72.0, repo.lastGoal)
	assert.Equal(t, 2300, result.Targets.Calories)
	assert.Equal(t, 150, result.Targets.Protein)
	assert.Equal(t, 280, result.Targets.Carbs)
	assert.Equal(t, 70, result.Targets.Fat)
	assert.Equal(t, 32, result.FiberGoal)
	assert.Equal(t, 8, result.Targets.HealthScore, "stored score is kept, the engine proposes none")
	assert.Equal(t, "Moderate deficit appropriate for 5 kg of loss.", result.Reasoning)

	cached, err := cache.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, result.Targets, *cached)
}

func TestRecalculateIncompleteProposal(t *testing.T) {
	fields := []struct {
		name   string
		mutate func(p *domain.TargetProposal)
	}{
		{"missing calories", func(p *domain.TargetProposal) { p.DailyCalorieGoal = nil }},
		{"missing protein", func(p *domain.TargetProposal) { p.ProteinGoal = nil }},
		{"missing carbs", func(p *domain.TargetProposal) { p.CarbsGoal = nil }},
		{"missing fat", func(p *domain.TargetProposal) { p.FatGoal = nil }},
		{"missing fiber", func(p *domain.TargetProposal) { p.FiberGoal = nil }},
	}
	for _, tt := range fields {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockProfileRepo()
			seedProfile(repo)
			proposal := completeProposal()
			tt.mutate(proposal)
			uc := newTestUseCase(repo, newMockCache(), &mockProposer{proposal: proposal})

			_, err := uc.Recalculate(context.Background(), "user-1", 72)

			require.ErrorIs(t, err, domain.ErrInvalidProposal)
			assert.Zero(t, repo.updateCalls, "rejected proposals must not be persisted")
		})
	}
}

func TestRecalculateEngineFailure(t *testing.T) {
	repo := newMockProfileRepo()
	seedProfile(repo)
	uc := newTestUseCase(repo, newMockCache(), &mockProposer{err: errors.New("deadline exceeded")})

	_, err := uc.Recalculate(context.Background(), "user-1", 72)

	require.ErrorIs(t, err, domain.ErrRecalculationFailed)
	assert.Zero(t, repo.updateCalls)
}

func TestRecalculateStoreFailure(t *testing.T) {
	repo := newMockProfileRepo()
	seedProfile(repo)
	repo.updateErr = errors.New("connection reset")
	uc := newTestUseCase(repo, newMockCache(), &mockProposer{proposal: completeProposal()})

	_, err := uc.Recalculate(context.Background(), "user-1", 72)

	require.ErrorIs(t, err, domain.ErrRecalculationFailed)
}

func TestRecalculateClampsCaloriesToFloor(t *testing.T) {
	repo := newMockProfileRepo()
	p := seedProfile(repo)
	p.Gender = gptr(domain.GenderFemale)

	proposal := completeProposal()
	proposal.DailyCalorieGoal = fptr(900)
	uc := newTestUseCase(repo, newMockCache(), &mockProposer{proposal: proposal})

	result, err := uc.Recalculate(context.Background(), "user-1", 50)

	require.NoError(t, err)
	assert.Equal(t, 1200, result.Targets.Calories)
	assert.Equal(t, 1200, repo.lastTargets.Calories)
}

func TestGetTargetsCacheMissFallsThrough(t *testing.T) {
	repo := newMockProfileRepo()
	p := seedProfile(repo)
	cache := newMockCache()
	uc := newTestUseCase(repo, cache, &mockProposer{})

	targets, _, err := uc.GetTargets(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, p.Targets, *targets)
	assert.Equal(t, 1, cache.setCalls, "miss should warm the cache")

	// second read is served from cache
	again, _, err := uc.GetTargets(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, p.Targets, *again)
	assert.Equal(t, 1, cache.setCalls)
}

func TestGetTargetsUnknownUser(t *testing.T) {
	uc := newTestUseCase(newMockProfileRepo(), newMockCache(), &mockProposer{})

	_, _, err := uc.GetTargets(context.Background(), "nobody")
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
}
