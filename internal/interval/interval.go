// Package interval resolves interval specifications into day counts.
package interval

import (
	"fmt"

	"equipment-maintenance-backend/internal/model"
)

// DaysPerMonth is the fixed day count used for month-based intervals. Every
// schedule computation in the system must use this same conversion,
// otherwise next-due dates written at record time and dates re-derived later
// silently drift apart.
const DaysPerMonth = 30

var namedPeriodDays = map[model.NamedPeriod]int{
	model.PeriodWeekly:    7,
	model.PeriodBiweekly:  14,
	model.PeriodMonthly:   30,
	model.PeriodQuarterly: 90,
	model.PeriodYearly:    365,
}

// Resolve returns the interval length in days for the given spec.
// An unknown named period or a non-positive custom length is a
// ConfigurationError; callers must not substitute a default.
func Resolve(spec model.IntervalSpec) (int, error) {
	if spec.Named() {
		days, ok := namedPeriodDays[spec.Period]
		if !ok {
			return 0, &model.ConfigurationError{
				Field:  "interval.period",
				Reason: fmt.Sprintf("unrecognized period %q", spec.Period),
			}
		}
		return days, nil
	}

	if spec.Length <= 0 {
		return 0, &model.ConfigurationError{
			Field:  "interval.length",
			Reason: fmt.Sprintf("custom length must be positive, got %d", spec.Length),
		}
	}
	switch spec.Unit {
	case model.UnitDays:
		return spec.Length, nil
	case model.UnitMonths:
		return spec.Length * DaysPerMonth, nil
	default:
		return 0, &model.ConfigurationError{
			Field:  "interval.unit",
			Reason: fmt.Sprintf("unrecognized unit %q", spec.Unit),
		}
	}
}
