package goals

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/savelxev/biteplan-backend/internal/calculator"
	"github.com/savelxev/biteplan-backend/internal/domain"
	"github.com/savelxev/biteplan-backend/internal/repository"
)

// TargetProposer is the reasoning-engine boundary. The production
// implementation talks to Gemini; tests plug in a fake.
type TargetProposer interface {
	ProposeTargets(ctx context.Context, goalContext string) (*domain.TargetProposal, error)
}

// RecalcResult is what a successful recalculation hands back to the caller.
type RecalcResult struct {
	GoalWeightKg float64                 `json:"goal_weight_kg"`
	Targets      domain.NutritionTargets `json:"targets"`
	FiberGoal    int                     `json:"fiber_goal"`
	Reasoning    string                  `json:"reasoning"`
}

type GoalsUseCase struct {
	profileRepo repository.ProfileRepository
	cache       repository.TargetsCache
	proposer    TargetProposer
	log         *slog.Logger
	now         func() time.Time
}

func NewGoalsUseCase(
	profileRepo repository.ProfileRepository,
	cache repository.TargetsCache,
	proposer TargetProposer,
	log *slog.Logger,
) *GoalsUseCase {
	return &GoalsUseCase{
		profileRepo: profileRepo,
		cache:       cache,
		proposer:    proposer,
		log:         log,
		now:         time.Now,
	}
}

// GetTargets returns the latest targets for a user, cache first, profile
// store on a miss.
func (uc *GoalsUseCase) GetTargets(ctx context.Context, userID string) (*domain.NutritionTargets, *int, error) {
	if cached, err := uc.cache.Get(ctx, userID); err == nil && cached != nil {
		return cached, nil, nil
	} else if err != nil {
		uc.log.Warn("targets cache read failed", "user_id", userID, "error", err)
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if err := uc.cache.Set(ctx, userID, profile.Targets); err != nil {
		uc.log.Warn("targets cache write failed", "user_id", userID, "error", err)
	}
	return &profile.Targets, profile.FiberGoal, nil
}

// Recalculate re-derives the user's targets for a new goal weight through the
// reasoning engine. Exactly one profile write happens on success; nothing is
// written when the profile is missing or the proposal is incomplete. Engine
// and store failures surface as ErrRecalculationFailed. Concurrent calls for
// the same user are not coordinated: last write wins.
func (uc *GoalsUseCase) Recalculate(ctx context.Context, userID string, goalWeightKg float64) (*RecalcResult, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: fetching profile: %v", domain.ErrRecalculationFailed, err)
	}

	goalContext := buildGoalContext(profile, goalWeightKg, uc.now())

	proposal, err := uc.proposer.ProposeTargets(ctx, goalContext)
	if err != nil {
		// a reply that arrived but could not be decoded is an invalid
		// proposal, not a transport failure
		if errors.Is(err, domain.ErrInvalidProposal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: reasoning engine: %v", domain.ErrRecalculationFailed, err)
	}
	if proposal == nil || !proposal.Complete() {
		return nil, domain.ErrInvalidProposal
	}

	targets := domain.NutritionTargets{
		Calories: int(math.Round(*proposal.DailyCalorieGoal)),
		Protein:  int(math.Round(*proposal.ProteinGoal)),
		Carbs:    int(math.Round(*proposal.CarbsGoal)),
		Fat:      int(math.Round(*proposal.FatGoal)),
		// the engine proposes no score; the stored one is kept
		HealthScore: profile.Targets.HealthScore,
	}
	fiber := int(math.Round(*proposal.FiberGoal))

	// Sanity floor on the externally proposed value: never persist a calorie
	// target below the gender safety floor.
	if profile.Gender != nil {
		if floor := calculator.CalorieFloor(*profile.Gender); targets.Calories < floor {
			uc.log.Warn("proposed calories below safety floor, clamping",
				"user_id", userID, "proposed", targets.Calories, "floor", floor)
			targets.Calories = floor
		}
	}

	if err := uc.profileRepo.UpdateGoalAndTargets(ctx, userID, goalWeightKg, targets, fiber); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: persisting targets: %v", domain.ErrRecalculationFailed, err)
	}

	if err := uc.cache.Set(ctx, userID, targets); err != nil {
		uc.log.Warn("targets cache refresh failed", "user_id", userID, "error", err)
		if err := uc.cache.Invalidate(ctx, userID); err != nil {
			uc.log.Warn("targets cache invalidation failed", "user_id", userID, "error", err)
		}
	}

	return &RecalcResult{
		GoalWeightKg: goalWeightKg,
		Targets:      targets,
		FiberGoal:    fiber,
		Reasoning:    proposal.Reasoning,
	}, nil
}
