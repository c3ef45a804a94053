package payroll

import (
	"context"
	"fmt"

	"github.com/paygrid-hq/payroll-engine-go/internal/domain/employee"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/payroll"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

type absenceBreakdown struct {
	VacationHours decimal.Decimal
	LeaveHours    decimal.Decimal
	HolidayHours  decimal.Decimal
	VacationPay   decimal.Decimal
	LeavePay      decimal.Decimal
	HolidayPay    decimal.Decimal
}

var workdaysPerWeek = decimal.NewFromInt(5)

// collectAbsences merges approved vacation, leave and public-holiday
// entitlements for one employee into the pay calculation. Entry hours are
// credited in full once the range overlaps the period, never clipped to the
// overlap. Salaried vacation carries no incremental pay; those hours feed
// the proration base instead.
func (s *PayrollServiceImpl) collectAbsences(ctx context.Context, emp employee.Employee, period timesheet.Period, settings payroll.StatutorySettings) (absenceBreakdown, error) {
	var b absenceBreakdown

	defaultRate := emp.EquivalentHourlyRate()

	vacations, err := s.absences.ListApprovedVacations(ctx, emp.ID, period.StartDate, period.EndDate)
	if err != nil {
		return absenceBreakdown{}, fmt.Errorf("vacation lookup failed: %w", err)
	}
	for _, entry := range vacations {
		b.VacationHours = b.VacationHours.Add(entry.Hours)
		if emp.Classification == employee.ClassificationSalaried {
			continue
		}
		rate := defaultRate
		if entry.HourlyRateOverride != nil {
			rate = *entry.HourlyRateOverride
		}
		b.VacationPay = b.VacationPay.Add(entry.Hours.Mul(rate))
	}

	leaves, err := s.absences.ListApprovedLeaves(ctx, emp.ID, period.StartDate, period.EndDate)
	if err != nil {
		return absenceBreakdown{}, fmt.Errorf("leave lookup failed: %w", err)
	}
	for _, entry := range leaves {
		b.LeaveHours = b.LeaveHours.Add(entry.Hours)
		rate := defaultRate
		if entry.HourlyRateOverride != nil {
			rate = *entry.HourlyRateOverride
		}
		b.LeavePay = b.LeavePay.Add(entry.Hours.Mul(rate).Mul(entry.PaymentPercentage))
	}

	if settings.HolidayPayEnabled {
		holidays, err := s.absences.ListHolidays(ctx, period.StartDate, period.EndDate)
		if err != nil {
			return absenceBreakdown{}, fmt.Errorf("holiday lookup failed: %w", err)
		}

		// One standard day's hours per paid holiday, additive for every
		// classification.
		dayHours := decimal.Zero
		if emp.StandardWeeklyHours.IsPositive() {
			dayHours = emp.StandardWeeklyHours.Div(workdaysPerWeek)
		}
		holidayRate := defaultRate
		if emp.Classification == employee.ClassificationShift {
			holidayRate = settings.ShiftWeekdayDayRate
		}
		for _, h := range holidays {
			if !h.Paid {
				continue
			}
			b.HolidayHours = b.HolidayHours.Add(dayHours)
			b.HolidayPay = b.HolidayPay.Add(dayHours.Mul(holidayRate))
		}
	}

	return b, nil
}
