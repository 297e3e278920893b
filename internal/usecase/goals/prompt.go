package goals

import (
	"fmt"
	"strings"
	"time"

	"github.com/savelxev/biteplan-backend/internal/domain"
)

// buildGoalContext renders the profile context handed to the reasoning
// engine. Pure templating, kept apart from the numeric calculator so the two
// can be tested on their own. The strict-JSON output instruction lives in the
// engine adapter, not here.
func buildGoalContext(profile *domain.Profile, goalWeightKg float64, now time.Time) string {
	var b strings.Builder

	b.WriteString("User profile for nutrition goal recalculation:\n")

	if weightKg, ok := profile.WeightKg(); ok {
		fmt.Fprintf(&b, "- Current weight: %.1f kg\n", weightKg)
	}
	fmt.Fprintf(&b, "- Goal weight: %.1f kg\n", goalWeightKg)
	if heightCm, ok := profile.HeightCm(); ok {
		fmt.Fprintf(&b, "- Height: %.1f cm\n", heightCm)
	}
	if age, ok := profile.AgeYears(now); ok {
		fmt.Fprintf(&b, "- Age: %d years\n", age)
	}
	if profile.Gender != nil {
		fmt.Fprintf(&b, "- Gender: %s\n", *profile.Gender)
	}
	if profile.WorkoutsPerWeek != nil {
		fmt.Fprintf(&b, "- Workouts per week: %s\n", *profile.WorkoutsPerWeek)
	}
	fmt.Fprintf(&b, "- Goal type: %s\n", goalTypeFor(profile, goalWeightKg))

	return b.String()
}

// goalTypeFor classifies the requested change by the sign of the weight
// delta. A missing current weight reads as maintain.
func goalTypeFor(profile *domain.Profile, goalWeightKg float64) domain.GoalType {
	weightKg, ok := profile.WeightKg()
	if !ok {
		return domain.GoalMaintain
	}
	switch {
	case goalWeightKg < weightKg:
		return domain.GoalLose
	case goalWeightKg > weightKg:
		return domain.GoalGain
	default:
		return domain.GoalMaintain
	}
}
