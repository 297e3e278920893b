package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fp(v float64) *float64 { return &v }

func TestWeightKgNormalization(t *testing.T) {
	tests := []struct {
		name   string
		weight *float64
		unit   WeightUnit
		wantKg float64
		wantOK bool
	}{
		{"kg passes through", fp(80), WeightUnitKg, 80, true},
		{"lb converts", fp(100), WeightUnitLb, 45.3592, true},
		{"nil weight", nil, WeightUnitKg, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Profile{Weight: tt.weight, WeightUnit: tt.unit}
			got, ok := p.WeightKg()
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.InDelta(t, tt.wantKg, got, 1e-9)
			}
		})
	}
}

func TestHeightCmNormalization(t *testing.T) {
	p := &Profile{Height: fp(6), HeightUnit: HeightUnitFt}
	got, ok := p.HeightCm()
	assert.True(t, ok)
	assert.InDelta(t, 182.88, got, 1e-9)
}

func TestAgeYearsDayAccurate(t *testing.T) {
	birth := time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC)
	p := &Profile{BirthDate: &birth}

	dayBefore := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	onBirthday := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	age, ok := p.AgeYears(dayBefore)
	assert.True(t, ok)
	assert.Equal(t, 35, age)

	age, _ = p.AgeYears(onBirthday)
	assert.Equal(t, 36, age)
}

func TestAgeYearsFallsBackToStoredAge(t *testing.T) {
	stored := 42
	p := &Profile{Age: &stored}

	age, ok := p.AgeYears(time.Now())
	assert.True(t, ok)
	assert.Equal(t, 42, age)

	empty := &Profile{}
	_, ok = empty.AgeYears(time.Now())
	assert.False(t, ok)
}

func TestTargetProposalComplete(t *testing.T) {
	full := &TargetProposal{
		DailyCalorieGoal: fp(2200),
		ProteinGoal:      fp(150),
		CarbsGoal:        fp(250),
		FatGoal:          fp(70),
		FiberGoal:        fp(30),
	}
	assert.True(t, full.Complete())

	missing := *full
	missing.FiberGoal = nil
	assert.False(t, missing.Complete())
}
