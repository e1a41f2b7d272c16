// Package schedule computes and maintains maintenance schedules.
package schedule

import (
	"time"

	"equipment-maintenance-backend/internal/interval"
	"equipment-maintenance-backend/internal/model"
)

// Engine rolls maintenance schedules forward and bootstraps missing ones.
// Overrides replace the built-in default interval for an equipment type;
// they come from site configuration.
type Engine struct {
	overrides map[model.EquipmentType]model.IntervalSpec
}

// NewEngine creates an engine with the given site-wide interval overrides.
// A nil map means built-in defaults only.
func NewEngine(overrides map[model.EquipmentType]model.IntervalSpec) *Engine {
	return &Engine{overrides: overrides}
}

// DefaultInterval returns the interval a fresh schedule for the given
// equipment type starts with. Cranes default to biweekly, everything else to
// monthly, unless a site override says otherwise.
func (e *Engine) DefaultInterval(et model.EquipmentType) model.IntervalSpec {
	if spec, ok := e.overrides[et]; ok {
		return spec
	}
	if et == model.EquipmentCrane {
		return model.IntervalSpec{Period: model.PeriodBiweekly}
	}
	return model.IntervalSpec{Period: model.PeriodMonthly}
}

// EnsureSchedule returns the machine's schedule for the equipment type,
// creating and attaching a default one if none exists. Idempotent: an
// existing schedule is reused, never replaced, so a machine+equipment-type
// pair has at most one active schedule.
func (e *Engine) EnsureSchedule(m *model.Machine, et model.EquipmentType, now time.Time) (*model.MaintenanceSchedule, error) {
	if s := m.Schedule(et); s != nil {
		return s, nil
	}

	spec := e.DefaultInterval(et)
	days, err := interval.Resolve(spec)
	if err != nil {
		return nil, err
	}
	m.Schedules = append(m.Schedules, model.MaintenanceSchedule{
		EquipmentType: et,
		Interval:      spec,
		NextDue:       now.AddDate(0, 0, days),
		CreatedAt:     now,
	})
	return &m.Schedules[len(m.Schedules)-1], nil
}

// BootstrapSchedules attaches a default schedule for every equipment type
// the machine carries but has no schedule for yet. It only creates
// schedules; follow-up tasks are spawned by recorded events alone.
func (e *Engine) BootstrapSchedules(m *model.Machine, now time.Time) error {
	for _, eq := range m.Equipment {
		if _, err := e.EnsureSchedule(m, eq.Type, now); err != nil {
			return err
		}
	}
	return nil
}

// Advance records that maintenance was performed at the given time and
// recomputes the next due date from it. NextDue is always derived, never
// hand-edited.
func (e *Engine) Advance(s *model.MaintenanceSchedule, performedAt time.Time) error {
	days, err := interval.Resolve(s.Interval)
	if err != nil {
		return err
	}
	at := performedAt
	s.LastPerformed = &at
	s.NextDue = performedAt.AddDate(0, 0, days)
	return nil
}
