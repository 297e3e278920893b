package domain

// NutritionTargets are the daily calorie and macro targets shown to the user.
// HealthScore is a 1-10 heuristic for how sustainable the calorie target is,
// not a clinical metric.
type NutritionTargets struct {
	Calories    int `json:"calories" db:"daily_calorie_goal"`
	Protein     int `json:"protein" db:"protein_goal"`
	Carbs       int `json:"carbs" db:"carbs_goal"`
	Fat         int `json:"fat" db:"fat_goal"`
	HealthScore int `json:"health_score" db:"health_score"`
}

// TargetProposal is what the reasoning engine returns for a goal-weight
// change. Pointer fields so a missing key in the engine's JSON is
// distinguishable from a zero; fiber has no deterministic counterpart and
// exists only on this path.
type TargetProposal struct {
	DailyCalorieGoal *float64 `json:"dailyCalorieGoal"`
	ProteinGoal      *float64 `json:"proteinGoal"`
	CarbsGoal        *float64 `json:"carbsGoal"`
	FatGoal          *float64 `json:"fatGoal"`
	FiberGoal        *float64 `json:"fiberGoal"`
	Reasoning        string   `json:"reasoning"`
}

// Complete reports whether all five numeric fields were present in the
// engine's response.
func (p *TargetProposal) Complete() bool {
	return p.DailyCalorieGoal != nil &&
		p.ProteinGoal != nil &&
		p.CarbsGoal != nil &&
		p.FatGoal != nil &&
		p.FiberGoal != nil
}
