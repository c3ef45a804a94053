package payroll

import (
	"fmt"
	"time"

	"github.com/paygrid-hq/payroll-engine-go/internal/domain/employee"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/payroll"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

// payModelInput is everything one classification strategy needs. Absence
// hours ride along because salaried proration counts them as credited time.
type payModelInput struct {
	Employee      employee.Employee
	Frequency     employee.PayFrequency
	WorkedHours   decimal.Decimal
	Entries       []timesheet.Entry
	VacationHours decimal.Decimal
	LeaveHours    decimal.Decimal
	Settings      payroll.StatutorySettings
}

type payBreakdown struct {
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	BasePay       decimal.Decimal
	OvertimePay   decimal.Decimal
}

var overtimeMultiplier = decimal.NewFromFloat(1.5)

// calculateBasePay dispatches to one of the three pay strategies. Each
// strategy owns its rules end to end so they stay independently testable.
func calculateBasePay(in payModelInput) (payBreakdown, error) {
	switch in.Employee.Classification {
	case employee.ClassificationSalaried:
		return salariedPay(in)
	case employee.ClassificationHourly:
		return hourlyPay(in)
	case employee.ClassificationShift:
		return shiftPay(in)
	}
	return payBreakdown{}, fmt.Errorf("unknown pay classification %q", in.Employee.Classification)
}

// salariedPay prorates the per-period salary share when credited hours
// (worked + vacation + leave) fall short of the standard period hours.
// A full or over-full period pays the full share with no separate overtime.
func salariedPay(in payModelInput) (payBreakdown, error) {
	if in.Employee.AnnualSalary == nil {
		return payBreakdown{}, fmt.Errorf("salaried employee has no annual salary")
	}

	periods := in.Frequency.PeriodsPerYear()
	if periods == 0 {
		return payBreakdown{}, fmt.Errorf("invalid pay frequency %q", in.Frequency)
	}

	base := in.Employee.AnnualSalary.Div(decimal.NewFromInt(periods))
	standard := in.Employee.StandardWeeklyHours.Mul(in.Frequency.WeeksInPeriod())
	credited := in.WorkedHours.Add(in.VacationHours).Add(in.LeaveHours)

	if standard.IsPositive() && credited.LessThan(standard) {
		base = base.Mul(credited).Div(standard)
	}

	return payBreakdown{
		RegularHours: in.WorkedHours,
		BasePay:      base,
	}, nil
}

// hourlyPay pays worked hours at the employee rate with a 1.5x premium past
// the standard period hours. Absence hours never push time into overtime.
func hourlyPay(in payModelInput) (payBreakdown, error) {
	if in.Employee.HourlyRate == nil {
		return payBreakdown{}, fmt.Errorf("hourly employee has no hourly rate")
	}

	rate := *in.Employee.HourlyRate
	standard := in.Employee.StandardWeeklyHours.Mul(in.Frequency.WeeksInPeriod())

	regular := in.WorkedHours
	overtime := decimal.Zero
	if regular.GreaterThan(standard) {
		overtime = regular.Sub(standard)
		regular = standard
	}

	return payBreakdown{
		RegularHours:  regular,
		OvertimeHours: overtime,
		BasePay:       regular.Mul(rate),
		OvertimePay:   overtime.Mul(rate).Mul(overtimeMultiplier),
	}, nil
}

// shiftPay prices each calendar day of actual entries at a single rate
// chosen by weekday/weekend and whether the day's first punch-in lands in
// the configured day-shift window. No intra-day rate splitting.
func shiftPay(in payModelInput) (payBreakdown, error) {
	type dayAgg struct {
		date    time.Time
		firstIn time.Time
		hours   decimal.Decimal
	}

	days := make(map[string]dayAgg)
	var order []string
	for _, entry := range in.Entries {
		key := entry.WorkDate.Format("2006-01-02")
		agg, seen := days[key]
		if !seen {
			order = append(order, key)
			agg.date = entry.WorkDate
			agg.firstIn = entry.TimeIn
		} else if entry.TimeIn.Before(agg.firstIn) {
			agg.firstIn = entry.TimeIn
		}
		agg.hours = agg.hours.Add(entry.Duration)
		days[key] = agg
	}

	base := decimal.Zero
	for _, key := range order {
		agg := days[key]
		base = base.Add(agg.hours.Mul(shiftRate(agg.date, agg.firstIn, in.Settings)))
	}

	return payBreakdown{
		RegularHours: in.WorkedHours,
		BasePay:      base,
	}, nil
}

func shiftRate(date, firstIn time.Time, settings payroll.StatutorySettings) decimal.Decimal {
	weekend := date.Weekday() == time.Saturday || date.Weekday() == time.Sunday
	day := firstIn.Hour() >= settings.DayShiftStartHour && firstIn.Hour() < settings.DayShiftEndHour

	switch {
	case weekend && day:
		return settings.ShiftWeekendDayRate
	case weekend:
		return settings.ShiftWeekendNightRate
	case day:
		return settings.ShiftWeekdayDayRate
	default:
		return settings.ShiftWeekdayNightRate
	}
}
