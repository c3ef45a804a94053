package payroll

import (
	"testing"
	"time"

	"github.com/paygrid-hq/payroll-engine-go/internal/domain/employee"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(v decimal.Decimal) *decimal.Decimal { return &v }

func TestSalariedPay_FullPeriod(t *testing.T) {
	salary := decimal.NewFromInt(52000)
	breakdown, err := calculateBasePay(payModelInput{
		Employee: employee.Employee{
			Classification:      employee.ClassificationSalaried,
			AnnualSalary:        decPtr(salary),
			StandardWeeklyHours: decimal.NewFromInt(40),
		},
		Frequency:   employee.FrequencyBiweekly,
		WorkedHours: decimal.NewFromInt(80),
	})
	require.NoError(t, err)

	// 52000 / 26 = 2000, no proration at the full 80 standard hours.
	assert.True(t, breakdown.BasePay.Equal(decimal.NewFromInt(2000)), "got %s", breakdown.BasePay)
	assert.True(t, breakdown.OvertimePay.IsZero())
	assert.True(t, breakdown.OvertimeHours.IsZero())
}

func TestSalariedPay_ProratedWhenShort(t *testing.T) {
	salary := decimal.NewFromInt(52000)
	breakdown, err := calculateBasePay(payModelInput{
		Employee: employee.Employee{
			Classification:      employee.ClassificationSalaried,
			AnnualSalary:        decPtr(salary),
			StandardWeeklyHours: decimal.NewFromInt(40),
		},
		Frequency:   employee.FrequencyBiweekly,
		WorkedHours: decimal.NewFromInt(60),
	})
	require.NoError(t, err)

	// 2000 * 60/80 = 1500.
	assert.True(t, breakdown.BasePay.Equal(decimal.NewFromInt(1500)), "got %s", breakdown.BasePay)
}

func TestSalariedPay_AbsenceHoursFillTheProrationBase(t *testing.T) {
	salary := decimal.NewFromInt(52000)
	breakdown, err := calculateBasePay(payModelInput{
		Employee: employee.Employee{
			Classification:      employee.ClassificationSalaried,
			AnnualSalary:        decPtr(salary),
			StandardWeeklyHours: decimal.NewFromInt(40),
		},
		Frequency:     employee.FrequencyBiweekly,
		WorkedHours:   decimal.NewFromInt(60),
		VacationHours: decimal.NewFromInt(16),
		LeaveHours:    decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	// 60 + 16 + 4 = 80 credited hours: full salary share.
	assert.True(t, breakdown.BasePay.Equal(decimal.NewFromInt(2000)), "got %s", breakdown.BasePay)
}

func TestSalariedPay_OverfullPeriodNeverExceedsSalaryShare(t *testing.T) {
	salary := decimal.NewFromInt(52000)
	breakdown, err := calculateBasePay(payModelInput{
		Employee: employee.Employee{
			Classification:      employee.ClassificationSalaried,
			AnnualSalary:        decPtr(salary),
			StandardWeeklyHours: decimal.NewFromInt(40),
		},
		Frequency:   employee.FrequencyBiweekly,
		WorkedHours: decimal.NewFromInt(120),
	})
	require.NoError(t, err)

	assert.True(t, breakdown.BasePay.Equal(decimal.NewFromInt(2000)), "got %s", breakdown.BasePay)
	assert.True(t, breakdown.OvertimePay.IsZero())
}

func TestSalariedPay_MissingSalary(t *testing.T) {
	_, err := calculateBasePay(payModelInput{
		Employee: employee.Employee{
			Classification:      employee.ClassificationSalaried,
			StandardWeeklyHours: decimal.NewFromInt(40),
		},
		Frequency: employee.FrequencyMonthly,
	})
	assert.Error(t, err)
}

func TestHourlyPay_WithOvertime(t *testing.T) {
	rate := decimal.NewFromInt(20)
	breakdown, err := calculateBasePay(payModelInput{
		Employee: employee.Employee{
			Classification:      employee.ClassificationHourly,
			HourlyRate:          decPtr(rate),
			StandardWeeklyHours: decimal.NewFromInt(40),
		},
		Frequency:   employee.FrequencyBiweekly,
		WorkedHours: decimal.NewFromInt(90),
	})
	require.NoError(t, err)

	// 80 regular at 20 = 1600; 10 overtime at 1.5x = 300.
	assert.True(t, breakdown.RegularHours.Equal(decimal.NewFromInt(80)))
	assert.True(t, breakdown.OvertimeHours.Equal(decimal.NewFromInt(10)))
	assert.True(t, breakdown.BasePay.Equal(decimal.NewFromInt(1600)), "got %s", breakdown.BasePay)
	assert.True(t, breakdown.OvertimePay.Equal(decimal.NewFromInt(300)), "got %s", breakdown.OvertimePay)
}

func TestHourlyPay_AbsenceHoursDoNotTriggerOvertime(t *testing.T) {
	rate := decimal.NewFromInt(20)
	breakdown, err := calculateBasePay(payModelInput{
		Employee: employee.Employee{
			Classification:      employee.ClassificationHourly,
			HourlyRate:          decPtr(rate),
			StandardWeeklyHours: decimal.NewFromInt(40),
		},
		Frequency:     employee.FrequencyBiweekly,
		WorkedHours:   decimal.NewFromInt(75),
		VacationHours: decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	assert.True(t, breakdown.OvertimeHours.IsZero())
	assert.True(t, breakdown.BasePay.Equal(decimal.NewFromInt(1500)), "got %s", breakdown.BasePay)
}

func TestHourlyPay_MissingRate(t *testing.T) {
	_, err := calculateBasePay(payModelInput{
		Employee: employee.Employee{
			Classification:      employee.ClassificationHourly,
			StandardWeeklyHours: decimal.NewFromInt(40),
		},
		Frequency: employee.FrequencyWeekly,
	})
	assert.Error(t, err)
}

func shiftEntry(date string, hour int, hours int64) timesheet.Entry {
	d, _ := time.Parse("2006-01-02", date)
	return timesheet.Entry{
		WorkDate: d,
		TimeIn:   d.Add(time.Duration(hour) * time.Hour),
		TimeOut:  d.Add(time.Duration(hour+int(hours)) * time.Hour),
		Duration: decimal.NewFromInt(hours),
	}
}

func TestShiftPay_RatePerDayByFirstPunchIn(t *testing.T) {
	entries := []timesheet.Entry{
		// Monday, first punch 08:00 inside the 06-18 window: weekday day rate.
		shiftEntry("2025-03-03", 8, 8),
		// Tuesday, first punch 20:00: weekday night rate.
		shiftEntry("2025-03-04", 20, 8),
		// Saturday, first punch 09:00: weekend day rate.
		shiftEntry("2025-03-08", 9, 8),
		// Sunday, first punch 22:00: weekend night rate.
		shiftEntry("2025-03-09", 22, 8),
	}

	breakdown, err := calculateBasePay(payModelInput{
		Employee: employee.Employee{
			Classification:      employee.ClassificationShift,
			StandardWeeklyHours: decimal.NewFromInt(40),
		},
		Frequency:   employee.FrequencyWeekly,
		WorkedHours: decimal.NewFromInt(32),
		Entries:     entries,
		Settings:    testSettings(),
	})
	require.NoError(t, err)

	// 8*(20 + 25 + 28 + 32) = 840
	assert.True(t, breakdown.BasePay.Equal(decimal.NewFromInt(840)), "got %s", breakdown.BasePay)
	assert.True(t, breakdown.OvertimeHours.IsZero())
}

func TestShiftPay_OneRateCoversSplitDay(t *testing.T) {
	// Two entries on the same day; the earlier punch-in (07:00) picks the
	// day rate for both even though the second starts at night.
	entries := []timesheet.Entry{
		shiftEntry("2025-03-05", 19, 4),
		shiftEntry("2025-03-05", 7, 6),
	}

	breakdown, err := calculateBasePay(payModelInput{
		Employee: employee.Employee{
			Classification:      employee.ClassificationShift,
			StandardWeeklyHours: decimal.NewFromInt(40),
		},
		Frequency:   employee.FrequencyWeekly,
		WorkedHours: decimal.NewFromInt(10),
		Entries:     entries,
		Settings:    testSettings(),
	})
	require.NoError(t, err)

	// 10 hours at the weekday day rate of 20.
	assert.True(t, breakdown.BasePay.Equal(decimal.NewFromInt(200)), "got %s", breakdown.BasePay)
}

func TestCalculateBasePay_UnknownClassification(t *testing.T) {
	_, err := calculateBasePay(payModelInput{
		Employee: employee.Employee{Classification: "commission"},
	})
	assert.Error(t, err)
}
