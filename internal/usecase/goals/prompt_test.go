package goals

import (
	"strings"
	"testing"
	"time"

	"github.com/savelxev/biteplan-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildGoalContext(t *testing.T) {
	bucket := domain.ActivityMedium
	profile := &domain.Profile{
		Gender:          gptr(domain.GenderMale),
		Age:             iptr(30),
		Weight:          fptr(80),
		WeightUnit:      domain.WeightUnitKg,
		Height:          fptr(180),
		HeightUnit:      domain.HeightUnitCm,
		WorkoutsPerWeek: &bucket,
	}
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	got := buildGoalContext(profile, 72, now)

	for _, want := range []string{
		"Current weight: 80.0 kg",
		"Goal weight: 72.0 kg",
		"Height: 180.0 cm",
		"Age: 30 years",
		"Gender: male",
		"Workouts per week: 3-5",
		"Goal type: lose",
	} {
		assert.True(t, strings.Contains(got, want), "context missing %q:\n%s", want, got)
	}
}

func TestBuildGoalContextNormalizesUnits(t *testing.T) {
	profile := &domain.Profile{
		Gender:     gptr(domain.GenderFemale),
		Age:        iptr(25),
		Weight:     fptr(154.324), // lb
		WeightUnit: domain.WeightUnitLb,
		Height:     fptr(5.5), // ft
		HeightUnit: domain.HeightUnitFt,
	}
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	got := buildGoalContext(profile, 80, now)

	assert.Contains(t, got, "Current weight: 70.0 kg")
	assert.Contains(t, got, "Height: 167.6 cm")
	assert.Contains(t, got, "Goal type: gain")
}

func TestGoalTypeFor(t *testing.T) {
	tests := []struct {
		name       string
		weightKg   *float64
		goalWeight float64
		want       domain.GoalType
	}{
		{"below current is lose", fptr(80), 72, domain.GoalLose},
		{"above current is gain", fptr(80), 85, domain.GoalGain},
		{"equal is maintain", fptr(80), 80, domain.GoalMaintain},
		{"unknown weight is maintain", nil, 72, domain.GoalMaintain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &domain.Profile{Weight: tt.weightKg, WeightUnit: domain.WeightUnitKg}
			assert.Equal(t, tt.want, goalTypeFor(p, tt.goalWeight))
		})
	}
}
