package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// WeightUnit is the unit the user entered their weight in. Formulas always
// consume kilograms; conversion happens in WeightKg.
type WeightUnit string

const (
	WeightUnitKg WeightUnit = "kg"
	WeightUnitLb WeightUnit = "lb"
)

type HeightUnit string

const (
	HeightUnitCm HeightUnit = "cm"
	HeightUnitFt HeightUnit = "ft"
)

// ActivityBucket is the weekly workout-frequency bucket collected during
// onboarding.
type ActivityBucket string

const (
	ActivityLow    ActivityBucket = "0-2"
	ActivityMedium ActivityBucket = "3-5"
	ActivityHigh   ActivityBucket = "6+"
)

const (
	lbToKg = 0.453592
	ftToCm = 30.48
)

// Profile holds a user's anthropometric data. Weight and height are stored in
// whatever unit the user entered; anything that feeds a formula must go
// through WeightKg/HeightCm first.
type Profile struct {
	ID              int             `json:"id" db:"id"`
	UserID          string          `json:"user_id" db:"user_id"`
	Gender          *Gender         `json:"gender" db:"gender"`
	BirthDate       *time.Time      `json:"birth_date" db:"birth_date"`
	Age             *int            `json:"age" db:"age"`
	Weight          *float64        `json:"weight" db:"weight"`
	WeightUnit      WeightUnit      `json:"weight_unit" db:"weight_unit"`
	Height          *float64        `json:"height" db:"height"`
	HeightUnit      HeightUnit      `json:"height_unit" db:"height_unit"`
	WorkoutsPerWeek *ActivityBucket `json:"workouts_per_week" db:"workouts_per_week"`

	Goal    Goal             `json:"goal"`
	Targets NutritionTargets `json:"targets"`
	// FiberGoal only exists when the AI-assisted path has run; the
	// deterministic calculator has no fiber formula.
	FiberGoal *int `json:"fiber_goal,omitempty" db:"fiber_goal"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// WeightKg returns the current weight normalized to kilograms.
func (p *Profile) WeightKg() (float64, bool) {
	if p.Weight == nil {
		return 0, false
	}
	if p.WeightUnit == WeightUnitLb {
		return *p.Weight * lbToKg, true
	}
	return *p.Weight, true
}

// HeightCm returns the height normalized to centimeters.
func (p *Profile) HeightCm() (float64, bool) {
	if p.Height == nil {
		return 0, false
	}
	if p.HeightUnit == HeightUnitFt {
		return *p.Height * ftToCm, true
	}
	return *p.Height, true
}

// AgeYears returns the user's age in whole years at the given time,
// day-accurate. Falls back to the stored age when no birth date is set.
func (p *Profile) AgeYears(now time.Time) (int, bool) {
	if p.BirthDate != nil {
		age := now.Year() - p.BirthDate.Year()
		if now.Before(p.BirthDate.AddDate(age, 0, 0)) {
			age--
		}
		return age, true
	}
	if p.Age != nil {
		return *p.Age, true
	}
	return 0, false
}

// BMI computes body mass index from normalized weight and height.
func (p *Profile) BMI() (float64, bool) {
	weightKg, okW := p.WeightKg()
	heightCm, okH := p.HeightCm()
	if !okW || !okH || heightCm <= 0 {
		return 0, false
	}
	h := heightCm / 100.0
	return weightKg / (h * h), true
}
