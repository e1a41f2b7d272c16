package model

import "time"

// NamedPeriod is one of the fixed recurring maintenance periods.
type NamedPeriod string

const (
	PeriodWeekly    NamedPeriod = "weekly"
	PeriodBiweekly  NamedPeriod = "biweekly"
	PeriodMonthly   NamedPeriod = "monthly"
	PeriodQuarterly NamedPeriod = "quarterly"
	PeriodYearly    NamedPeriod = "yearly"
)

// IntervalUnit is the unit of a custom interval length.
type IntervalUnit string

const (
	UnitDays   IntervalUnit = "days"
	UnitMonths IntervalUnit = "months"
)

// IntervalSpec describes how often maintenance recurs: either a named
// period, or a custom length with a unit. A spec with a non-empty Period is
// named; otherwise Length and Unit apply.
type IntervalSpec struct {
	Period NamedPeriod  `json:"period,omitempty" yaml:"period,omitempty"`
	Length int          `json:"length,omitempty" yaml:"length,omitempty"`
	Unit   IntervalUnit `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Named reports whether the spec uses a named period.
func (s IntervalSpec) Named() bool {
	return s.Period != ""
}

// MaintenanceSchedule is the recurring due-date record for one
// machine+equipment-type pair. NextDue is always derived from LastPerformed
// (or CreatedAt when never performed) plus the resolved interval; it is never
// edited by hand.
type MaintenanceSchedule struct {
	EquipmentType EquipmentType `json:"equipmentType"`
	Interval      IntervalSpec  `json:"interval"`
	LastPerformed *time.Time    `json:"lastPerformed,omitempty"`
	NextDue       time.Time     `json:"nextDue"`
	CreatedAt     time.Time     `json:"createdAt"`
}
