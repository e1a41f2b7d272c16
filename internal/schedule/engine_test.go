package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-maintenance-backend/internal/model"
)

func TestDefaultInterval(t *testing.T) {
	eng := NewEngine(nil)
	assert.Equal(t, model.IntervalSpec{Period: model.PeriodBiweekly}, eng.DefaultInterval(model.EquipmentCrane))
	assert.Equal(t, model.IntervalSpec{Period: model.PeriodMonthly}, eng.DefaultInterval(model.EquipmentTruck))
	assert.Equal(t, model.IntervalSpec{Period: model.PeriodMonthly}, eng.DefaultInterval(model.EquipmentWinch))
}

func TestDefaultIntervalOverride(t *testing.T) {
	eng := NewEngine(map[model.EquipmentType]model.IntervalSpec{
		model.EquipmentWinch: {Period: model.PeriodWeekly},
	})
	assert.Equal(t, model.IntervalSpec{Period: model.PeriodWeekly}, eng.DefaultInterval(model.EquipmentWinch))
	// Overrides only apply to the type they name.
	assert.Equal(t, model.IntervalSpec{Period: model.PeriodBiweekly}, eng.DefaultInterval(model.EquipmentCrane))
}

func TestEnsureScheduleCreatesDefault(t *testing.T) {
	eng := NewEngine(nil)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := &model.Machine{ID: "m1"}

	s, err := eng.EnsureSchedule(m, model.EquipmentCrane, now)
	require.NoError(t, err)
	require.Len(t, m.Schedules, 1)
	assert.Equal(t, model.EquipmentCrane, s.EquipmentType)
	assert.Equal(t, model.PeriodBiweekly, s.Interval.Period)
	assert.Nil(t, s.LastPerformed)
	assert.Equal(t, now.AddDate(0, 0, 14), s.NextDue)
}

func TestEnsureScheduleIsIdempotent(t *testing.T) {
	eng := NewEngine(nil)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := &model.Machine{ID: "m1"}

	first, err := eng.EnsureSchedule(m, model.EquipmentCrane, now)
	require.NoError(t, err)

	second, err := eng.EnsureSchedule(m, model.EquipmentCrane, now.AddDate(0, 0, 7))
	require.NoError(t, err)

	assert.Len(t, m.Schedules, 1, "a second EnsureSchedule must not create a duplicate")
	assert.Equal(t, first.NextDue, second.NextDue)
}

func TestAdvance(t *testing.T) {
	eng := NewEngine(nil)
	performed := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	s := &model.MaintenanceSchedule{
		EquipmentType: model.EquipmentTruck,
		Interval:      model.IntervalSpec{Length: 45, Unit: model.UnitDays},
	}

	require.NoError(t, eng.Advance(s, performed))
	require.NotNil(t, s.LastPerformed)
	assert.Equal(t, performed, *s.LastPerformed)
	assert.Equal(t, performed.AddDate(0, 0, 45), s.NextDue)
}

func TestAdvanceRejectsBadInterval(t *testing.T) {
	eng := NewEngine(nil)
	s := &model.MaintenanceSchedule{Interval: model.IntervalSpec{Period: "eon"}}

	err := eng.Advance(s, time.Now())
	assert.Error(t, err)
	assert.Nil(t, s.LastPerformed, "a failed advance must not touch the schedule")
}
