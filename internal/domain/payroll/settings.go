package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StatutorySettings is the configuration record driving the deduction
// engine and shift/holiday pay. It is loaded fresh at the start of every
// run and never cached across runs; rates may change between runs at any
// time. Caps and levy figures are expressed on a monthly basis and
// prorated by pay frequency.
type StatutorySettings struct {
	SocialEmployeeRate decimal.Decimal
	SocialEmployerRate decimal.Decimal
	SocialMonthlyCap   decimal.Decimal
	RetirementAge      int

	HealthEmployeeRate decimal.Decimal
	HealthEmployerRate decimal.Decimal
	HealthSeniorRate   decimal.Decimal // employee-only reduced rate
	SeniorAge          int
	HealthMaxAge       int

	LevyStandardRate decimal.Decimal
	LevyHigherRate   decimal.Decimal
	LevyExemption    decimal.Decimal // monthly
	LevyThreshold    decimal.Decimal // monthly

	HolidayPayEnabled bool

	// Day-shift window, hours of day [start, end). A shift employee's
	// first punch-in inside the window selects the day rate.
	DayShiftStartHour int
	DayShiftEndHour   int

	ShiftWeekdayDayRate   decimal.Decimal
	ShiftWeekdayNightRate decimal.Decimal
	ShiftWeekendDayRate   decimal.Decimal
	ShiftWeekendNightRate decimal.Decimal
}

// Validate rejects a misconfigured settings row before any write happens.
func (s StatutorySettings) Validate() error {
	one := decimal.NewFromInt(1)
	rates := map[string]decimal.Decimal{
		"social_employee_rate": s.SocialEmployeeRate,
		"social_employer_rate": s.SocialEmployerRate,
		"health_employee_rate": s.HealthEmployeeRate,
		"health_employer_rate": s.HealthEmployerRate,
		"health_senior_rate":   s.HealthSeniorRate,
		"levy_standard_rate":   s.LevyStandardRate,
		"levy_higher_rate":     s.LevyHigherRate,
	}
	for name, rate := range rates {
		if rate.IsNegative() || rate.GreaterThan(one) {
			return fmt.Errorf("%w: %s must be within [0, 1]", ErrInvalidStatutorySettings, name)
		}
	}
	if s.SocialMonthlyCap.IsNegative() || s.LevyExemption.IsNegative() || s.LevyThreshold.IsNegative() {
		return fmt.Errorf("%w: caps and levy figures must be non-negative", ErrInvalidStatutorySettings)
	}
	if s.LevyThreshold.LessThan(s.LevyExemption) {
		return fmt.Errorf("%w: levy threshold below exemption", ErrInvalidStatutorySettings)
	}
	if s.RetirementAge <= 0 {
		return fmt.Errorf("%w: retirement age must be positive", ErrInvalidStatutorySettings)
	}
	if s.SeniorAge <= 0 || s.HealthMaxAge <= s.SeniorAge {
		return fmt.Errorf("%w: health age bands must satisfy 0 < senior < max", ErrInvalidStatutorySettings)
	}
	if s.DayShiftStartHour < 0 || s.DayShiftEndHour > 24 || s.DayShiftStartHour >= s.DayShiftEndHour {
		return fmt.Errorf("%w: day-shift window must satisfy 0 <= start < end <= 24", ErrInvalidStatutorySettings)
	}
	return nil
}
