package domain

type GoalType string

const (
	GoalLose     GoalType = "lose"
	GoalMaintain GoalType = "maintain"
	GoalGain     GoalType = "gain"
)

// Goal is the user's stated weight goal. DesiredWeightKg is required whenever
// Type is not maintain; SpeedKgPerWeek only applies to lose. A goal is always
// replaced wholesale, never patched field by field.
type Goal struct {
	Type            GoalType `json:"type" db:"goal_type"`
	DesiredWeightKg *float64 `json:"desired_weight_kg" db:"desired_weight_kg"`
	SpeedKgPerWeek  *float64 `json:"speed_kg_per_week" db:"speed_kg_per_week"`
}
