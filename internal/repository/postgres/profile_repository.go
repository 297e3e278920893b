package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/savelxev/biteplan-backend/internal/domain"
	"github.com/savelxev/biteplan-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
	id, user_id, gender, birth_date, age,
	weight, weight_unit, height, height_unit, workouts_per_week,
	goal_type, desired_weight_kg, speed_kg_per_week,
	daily_calorie_goal, protein_goal, carbs_goal, fat_goal, health_score, fiber_goal,
	created_at, updated_at
`

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, gender, birth_date, age,
			weight, weight_unit, height, height_unit, workouts_per_week,
			goal_type, desired_weight_kg, speed_kg_per_week,
			daily_calorie_goal, protein_goal, carbs_goal, fat_goal, health_score
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.UserID, profile.Gender, profile.BirthDate, profile.Age,
		profile.Weight, profile.WeightUnit, profile.Height, profile.HeightUnit, profile.WorkoutsPerWeek,
		profile.Goal.Type, profile.Goal.DesiredWeightKg, profile.Goal.SpeedKgPerWeek,
		profile.Targets.Calories, profile.Targets.Protein, profile.Targets.Carbs,
		profile.Targets.Fat, profile.Targets.HealthScore,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProfileAlreadyExists
		}
		return err
	}
	return nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.Gender, &profile.BirthDate, &profile.Age,
		&profile.Weight, &profile.WeightUnit, &profile.Height, &profile.HeightUnit, &profile.WorkoutsPerWeek,
		&profile.Goal.Type, &profile.Goal.DesiredWeightKg, &profile.Goal.SpeedKgPerWeek,
		&profile.Targets.Calories, &profile.Targets.Protein, &profile.Targets.Carbs,
		&profile.Targets.Fat, &profile.Targets.HealthScore, &profile.FiberGoal,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET gender = $1, birth_date = $2, age = $3,
		    weight = $4, weight_unit = $5, height = $6, height_unit = $7, workouts_per_week = $8,
		    goal_type = $9, desired_weight_kg = $10, speed_kg_per_week = $11,
		    daily_calorie_goal = $12, protein_goal = $13, carbs_goal = $14,
		    fat_goal = $15, health_score = $16,
		    updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $17
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.Gender, profile.BirthDate, profile.Age,
		profile.Weight, profile.WeightUnit, profile.Height, profile.HeightUnit, profile.WorkoutsPerWeek,
		profile.Goal.Type, profile.Goal.DesiredWeightKg, profile.Goal.SpeedKgPerWeek,
		profile.Targets.Calories, profile.Targets.Protein, profile.Targets.Carbs,
		profile.Targets.Fat, profile.Targets.HealthScore,
		profile.UserID,
	).Scan(&profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProfileNotFound
		}
		return err
	}
	return nil
}

func (r *profileRepository) UpdateGoalAndTargets(ctx context.Context, userID string, goalWeightKg float64, targets domain.NutritionTargets, fiberGoal int) error {
	query := `
		UPDATE profiles
		SET desired_weight_kg = $1,
		    daily_calorie_goal = $2, protein_goal = $3, carbs_goal = $4,
		    fat_goal = $5, fiber_goal = $6,
		    updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $7
	`
	result, err := r.db.ExecContext(ctx, query,
		goalWeightKg,
		targets.Calories, targets.Protein, targets.Carbs, targets.Fat, fiberGoal,
		userID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
