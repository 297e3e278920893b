package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/savelxev/biteplan-backend/internal/calculator"
	"github.com/savelxev/biteplan-backend/internal/domain"
	"github.com/savelxev/biteplan-backend/internal/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	cache       repository.TargetsCache
	log         *slog.Logger
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	cache repository.TargetsCache,
	log *slog.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		cache:       cache,
		log:         log,
	}
}

// GoalInput replaces the stored goal wholesale; goals are never patched field
// by field.
type GoalInput struct {
	Type            string   `json:"type" binding:"required,oneof=lose maintain gain"`
	DesiredWeightKg *float64 `json:"desired_weight_kg" binding:"omitempty,min=30,max=300"`
	SpeedKgPerWeek  *float64 `json:"speed_kg_per_week" binding:"omitempty,gt=0,max=2"`
}

// CreateProfileRequest is the onboarding payload.
type CreateProfileRequest struct {
	Gender          string     `json:"gender" binding:"required,oneof=male female"`
	BirthDate       *time.Time `json:"birth_date"`
	Age             *int       `json:"age" binding:"omitempty,min=13,max=120"`
	Weight          float64    `json:"weight" binding:"required,gt=0"`
	WeightUnit      string     `json:"weight_unit" binding:"required,oneof=kg lb"`
	Height          float64    `json:"height" binding:"required,gt=0"`
	HeightUnit      string     `json:"height_unit" binding:"required,oneof=cm ft"`
	WorkoutsPerWeek *string    `json:"workouts_per_week" binding:"omitempty,oneof=0-2 3-5 6+"`
	Goal            GoalInput  `json:"goal" binding:"required"`
}

// UpdateProfileRequest patches personal details; a present Goal replaces the
// whole goal.
type UpdateProfileRequest struct {
	Gender          *string    `json:"gender" binding:"omitempty,oneof=male female"`
	BirthDate       *time.Time `json:"birth_date"`
	Age             *int       `json:"age" binding:"omitempty,min=13,max=120"`
	Weight          *float64   `json:"weight" binding:"omitempty,gt=0"`
	WeightUnit      *string    `json:"weight_unit" binding:"omitempty,oneof=kg lb"`
	Height          *float64   `json:"height" binding:"omitempty,gt=0"`
	HeightUnit      *string    `json:"height_unit" binding:"omitempty,oneof=cm ft"`
	WorkoutsPerWeek *string    `json:"workouts_per_week" binding:"omitempty,oneof=0-2 3-5 6+"`
	Goal            *GoalInput `json:"goal"`
}

// CreateProfile creates the profile at onboarding and computes the first set
// of targets locally.
func (uc *ProfileUseCase) CreateProfile(ctx context.Context, userID string, req *CreateProfileRequest) (*domain.Profile, error) {
	if existing, err := uc.profileRepo.GetByUserID(ctx, userID); err == nil && existing != nil {
		return nil, domain.ErrProfileAlreadyExists
	}

	gender := domain.Gender(req.Gender)
	profile := &domain.Profile{
		UserID:     userID,
		Gender:     &gender,
		BirthDate:  req.BirthDate,
		Age:        req.Age,
		Weight:     &req.Weight,
		WeightUnit: domain.WeightUnit(req.WeightUnit),
		Height:     &req.Height,
		HeightUnit: domain.HeightUnit(req.HeightUnit),
		Goal:       goalFromInput(req.Goal),
	}
	if req.WorkoutsPerWeek != nil {
		bucket := domain.ActivityBucket(*req.WorkoutsPerWeek)
		profile.WorkoutsPerWeek = &bucket
	}

	profile.Targets = calculator.Compute(profile, &profile.Goal)

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrProfileAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	uc.refreshCache(ctx, userID, profile.Targets)
	return profile, nil
}

// GetProfile returns the caller's profile.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

// UpdateProfile applies edits and recomputes targets locally. Every relevant
// edit recomputes; the stored targets are always consistent with the stored
// profile.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Gender != nil {
		gender := domain.Gender(*req.Gender)
		profile.Gender = &gender
	}
	if req.BirthDate != nil {
		profile.BirthDate = req.BirthDate
	}
	if req.Age != nil {
		profile.Age = req.Age
	}
	if req.Weight != nil {
		profile.Weight = req.Weight
	}
	if req.WeightUnit != nil {
		profile.WeightUnit = domain.WeightUnit(*req.WeightUnit)
	}
	if req.Height != nil {
		profile.Height = req.Height
	}
	if req.HeightUnit != nil {
		profile.HeightUnit = domain.HeightUnit(*req.HeightUnit)
	}
	if req.WorkoutsPerWeek != nil {
		bucket := domain.ActivityBucket(*req.WorkoutsPerWeek)
		profile.WorkoutsPerWeek = &bucket
	}
	if req.Goal != nil {
		profile.Goal = goalFromInput(*req.Goal)
	}

	profile.Targets = calculator.Compute(profile, &profile.Goal)

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	uc.refreshCache(ctx, userID, profile.Targets)
	return profile, nil
}

func (uc *ProfileUseCase) refreshCache(ctx context.Context, userID string, targets domain.NutritionTargets) {
	if err := uc.cache.Set(ctx, userID, targets); err != nil {
		uc.log.Warn("targets cache refresh failed", "user_id", userID, "error", err)
	}
}

func goalFromInput(in GoalInput) domain.Goal {
	return domain.Goal{
		Type:            domain.GoalType(in.Type),
		DesiredWeightKg: in.DesiredWeightKg,
		SpeedKgPerWeek:  in.SpeedKgPerWeek,
	}
}
