// Package calculator derives daily calorie and macronutrient targets from a
// user's profile and weight goal. Everything here is pure: no I/O, no clock
// other than the injected one, safe to call from any goroutine.
package calculator

import (
	"math"
	"time"

	"github.com/savelxev/biteplan-backend/internal/domain"
)

const (
	// kcal in roughly 1 kg of fat tissue, the standard approximation used to
	// convert a weekly weight-change speed into a daily calorie delta.
	kcalPerKg = 7700

	calorieFloorMale   = 1500
	calorieFloorFemale = 1200

	carbsFloorG = 100
	fatFloorG   = 40

	// Healthy gain is capped at half a kilo per week no matter how far away
	// the desired weight is.
	maxGainKgPerWeek = 0.5

	defaultLossKgPerWeek = 0.5
)

// DefaultTargets is returned whenever a required profile field (weight,
// height, gender, age) is missing. The UI always has a number to show.
var DefaultTargets = domain.NutritionTargets{
	Calories:    2000,
	Protein:     150,
	Carbs:       225,
	Fat:         65,
	HealthScore: 7,
}

var activityMultipliers = map[domain.ActivityBucket]float64{
	domain.ActivityLow:    1.2,
	domain.ActivityMedium: 1.55,
	domain.ActivityHigh:   1.725,
}

// light-activity default when the workout bucket was never set
const fallbackActivityMultiplier = 1.375

// CalorieFloor is the minimum daily calorie target per gender. Computed
// deficits never push the target below it.
func CalorieFloor(g domain.Gender) int {
	if g == domain.GenderFemale {
		return calorieFloorFemale
	}
	return calorieFloorMale
}

// Compute derives nutrition targets from a profile and goal. It is total:
// missing required data degrades to DefaultTargets, it never errors.
func Compute(profile *domain.Profile, goal *domain.Goal) domain.NutritionTargets {
	return computeAt(profile, goal, time.Now())
}

func computeAt(profile *domain.Profile, goal *domain.Goal, now time.Time) domain.NutritionTargets {
	if profile == nil {
		return DefaultTargets
	}
	weightKg, okW := profile.WeightKg()
	heightCm, okH := profile.HeightCm()
	age, okA := profile.AgeYears(now)
	if !okW || !okH || !okA || profile.Gender == nil {
		return DefaultTargets
	}
	gender := *profile.Gender

	// Mifflin-St Jeor
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == domain.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	mult := fallbackActivityMultiplier
	if profile.WorkoutsPerWeek != nil {
		if m, ok := activityMultipliers[*profile.WorkoutsPerWeek]; ok {
			mult = m
		}
	}
	tdee := bmr * mult

	goalType := domain.GoalMaintain
	if goal != nil && goal.Type != "" {
		goalType = goal.Type
	}

	target := tdee
	score := 8
	floorHit := false

	switch {
	case goalType == domain.GoalLose && goal != nil && goal.DesiredWeightKg != nil:
		speed := defaultLossKgPerWeek
		if goal.SpeedKgPerWeek != nil {
			speed = *goal.SpeedKgPerWeek
		}
		dailyDeficit := speed * kcalPerKg / 7
		target = tdee - dailyDeficit

		switch pct := dailyDeficit / tdee; {
		case pct > 0.25:
			score = 5
		case pct > 0.20:
			score = 6
		case pct > 0.15:
			score = 7
		default:
			score = 9
		}
	case goalType == domain.GoalGain && goal != nil && goal.DesiredWeightKg != nil:
		weekly := (*goal.DesiredWeightKg - weightKg) / 12
		if weekly > maxGainKgPerWeek {
			weekly = maxGainKgPerWeek
		}
		if weekly < 0 {
			// desired weight at or below current: fall back to maintenance
			// instead of letting a negative surplus become a hidden deficit
			weekly = 0
		}
		target = tdee + weekly*kcalPerKg/7
		score = 8
	}

	if floor := float64(CalorieFloor(gender)); target < floor {
		target = floor
		if goalType == domain.GoalLose {
			floorHit = true
			score -= 2
			if score < 4 {
				score = 4
			}
		}
	}

	proteinPerKg, fatShare := 1.8, 0.30
	if goalType == domain.GoalLose {
		proteinPerKg, fatShare = 2.0, 0.25
	}
	protein := int(math.Round(weightKg * proteinPerKg))
	fat := int(math.Round(target * fatShare / 9))
	carbs := int(math.Round((target - float64(protein*4) - float64(fat*9)) / 4))
	if carbs < carbsFloorG {
		carbs = carbsFloorG
	}
	if fat < fatFloorG {
		fat = fatFloorG
	}

	h := heightCm / 100.0
	bmi := weightKg / (h * h)
	if bmi < 18.5 || bmi > 30 {
		score--
		if score < 4 {
			score = 4
		}
	}
	// Reward a loss goal that lands in the normal BMI band, unless the plan
	// already had to be clamped to the calorie floor.
	if goalType == domain.GoalLose && !floorHit && goal != nil && goal.DesiredWeightKg != nil {
		if desiredBMI := *goal.DesiredWeightKg / (h * h); desiredBMI >= 18.5 && desiredBMI <= 25 {
			score++
			if score > 10 {
				score = 10
			}
		}
	}

	return domain.NutritionTargets{
		Calories:    int(math.Round(target)),
		Protein:     protein,
		Carbs:       carbs,
		Fat:         fat,
		HealthScore: score,
	}
}
