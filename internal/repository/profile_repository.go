package repository

import (
	"context"

	"github.com/savelxev/biteplan-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error

	// UpdateGoalAndTargets is the single write performed by a successful
	// recalculation: new desired weight plus the proposed targets, in one
	// statement. The health score column is left untouched because the
	// reasoning engine does not produce one.
	UpdateGoalAndTargets(ctx context.Context, userID string, goalWeightKg float64, targets domain.NutritionTargets, fiberGoal int) error
}
