package interval

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"equipment-maintenance-backend/internal/model"
)

func TestResolveNamedPeriods(t *testing.T) {
	testCases := []struct {
		period model.NamedPeriod
		days   int
	}{
		{model.PeriodWeekly, 7},
		{model.PeriodBiweekly, 14},
		{model.PeriodMonthly, 30},
		{model.PeriodQuarterly, 90},
		{model.PeriodYearly, 365},
	}

	for _, tc := range testCases {
		t.Run(string(tc.period), func(t *testing.T) {
			days, err := Resolve(model.IntervalSpec{Period: tc.period})
			assert.NoError(t, err)
			assert.Equal(t, tc.days, days)
		})
	}
}

func TestResolveCustom(t *testing.T) {
	days, err := Resolve(model.IntervalSpec{Length: 45, Unit: model.UnitDays})
	assert.NoError(t, err)
	assert.Equal(t, 45, days)

	days, err = Resolve(model.IntervalSpec{Length: 2, Unit: model.UnitMonths})
	assert.NoError(t, err)
	assert.Equal(t, 2*DaysPerMonth, days)
}

func TestResolveErrors(t *testing.T) {
	testCases := []struct {
		name string
		spec model.IntervalSpec
	}{
		{"unknown period", model.IntervalSpec{Period: "fortnightly"}},
		{"zero length", model.IntervalSpec{Length: 0, Unit: model.UnitDays}},
		{"negative length", model.IntervalSpec{Length: -3, Unit: model.UnitDays}},
		{"unknown unit", model.IntervalSpec{Length: 5, Unit: "weeks"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(tc.spec)
			var cfgErr *model.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
		})
	}
}
