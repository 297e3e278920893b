package repository

import (
	"context"

	"github.com/savelxev/biteplan-backend/internal/domain"
)

// TargetsCache is the shared read store for the latest nutrition targets.
// Every screen reads from here; it is rewritten atomically whenever targets
// are recomputed, locally or via the reasoning engine.
type TargetsCache interface {
	Get(ctx context.Context, userID string) (*domain.NutritionTargets, error)
	Set(ctx context.Context, userID string, targets domain.NutritionTargets) error
	Invalidate(ctx context.Context, userID string) error
}
