package payroll

import (
	"testing"

	"github.com/paygrid-hq/payroll-engine-go/internal/domain/employee"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() payroll.StatutorySettings {
	return payroll.StatutorySettings{
		SocialEmployeeRate: decimal.NewFromFloat(0.05),
		SocialEmployerRate: decimal.NewFromFloat(0.07),
		SocialMonthlyCap:   decimal.NewFromInt(6000),
		RetirementAge:      65,

		HealthEmployeeRate: decimal.NewFromFloat(0.04),
		HealthEmployerRate: decimal.NewFromFloat(0.06),
		HealthSeniorRate:   decimal.NewFromFloat(0.025),
		SeniorAge:          60,
		HealthMaxAge:       70,

		LevyStandardRate: decimal.NewFromFloat(0.02),
		LevyHigherRate:   decimal.NewFromFloat(0.04),
		LevyExemption:    decimal.NewFromInt(1000),
		LevyThreshold:    decimal.NewFromInt(5000),

		HolidayPayEnabled: true,
		DayShiftStartHour: 6,
		DayShiftEndHour:   18,

		ShiftWeekdayDayRate:   decimal.NewFromInt(20),
		ShiftWeekdayNightRate: decimal.NewFromInt(25),
		ShiftWeekendDayRate:   decimal.NewFromInt(28),
		ShiftWeekendNightRate: decimal.NewFromInt(32),
	}
}

func TestCalculateDeductions_StandardRates(t *testing.T) {
	d := CalculateDeductions(DeductionInput{
		Gross:     decimal.NewFromInt(2000),
		Age:       35,
		Frequency: employee.FrequencyMonthly,
	}, testSettings())

	assert.True(t, d.SocialEmployee.Equal(decimal.NewFromInt(100)), "got %s", d.SocialEmployee)
	assert.True(t, d.SocialEmployer.Equal(decimal.NewFromInt(140)), "got %s", d.SocialEmployer)
	assert.True(t, d.HealthEmployee.Equal(decimal.NewFromInt(80)), "got %s", d.HealthEmployee)
	assert.True(t, d.HealthEmployer.Equal(decimal.NewFromInt(120)), "got %s", d.HealthEmployer)
	// levy: 2% of (2000 - 1000)
	assert.True(t, d.IncomeLevy.Equal(decimal.NewFromInt(20)), "got %s", d.IncomeLevy)
}

func TestCalculateDeductions_SocialCapProrated(t *testing.T) {
	settings := testSettings()

	// Biweekly cap = 6000 * 14/30 = 2800; gross above it contributes at the cap.
	d := CalculateDeductions(DeductionInput{
		Gross:     decimal.NewFromInt(10000),
		Age:       40,
		Frequency: employee.FrequencyBiweekly,
	}, settings)

	assert.True(t, d.SocialEmployee.Equal(decimal.NewFromInt(140)), "got %s", d.SocialEmployee)
	assert.True(t, d.SocialEmployer.Equal(decimal.NewFromInt(196)), "got %s", d.SocialEmployer)
}

func TestCalculateDeductions_SocialZeroAtRetirementAge(t *testing.T) {
	for _, age := range []int{65, 70, 90} {
		d := CalculateDeductions(DeductionInput{
			Gross:     decimal.NewFromInt(100000),
			Age:       age,
			Frequency: employee.FrequencyMonthly,
		}, testSettings())

		assert.True(t, d.SocialEmployee.IsZero(), "age %d", age)
		assert.True(t, d.SocialEmployer.IsZero(), "age %d", age)
	}
}

func TestCalculateDeductions_SocialZeroWhenExempt(t *testing.T) {
	d := CalculateDeductions(DeductionInput{
		Gross:        decimal.NewFromInt(100000),
		Age:          30,
		Frequency:    employee.FrequencyMonthly,
		SocialExempt: true,
	}, testSettings())

	assert.True(t, d.SocialEmployee.IsZero())
	assert.True(t, d.SocialEmployer.IsZero())
}

func TestCalculateDeductions_HealthSeniorBand(t *testing.T) {
	// Age 62 inside the 60-70 band: reduced employee-only rate.
	d := CalculateDeductions(DeductionInput{
		Gross:     decimal.NewFromInt(1000),
		Age:       62,
		Frequency: employee.FrequencyWeekly,
	}, testSettings())

	assert.True(t, d.HealthEmployee.Equal(decimal.NewFromInt(25)), "got %s", d.HealthEmployee)
	assert.True(t, d.HealthEmployer.IsZero())

	// Age 75 past the max age: no health deduction at all.
	d = CalculateDeductions(DeductionInput{
		Gross:     decimal.NewFromInt(1000),
		Age:       75,
		Frequency: employee.FrequencyWeekly,
	}, testSettings())

	assert.True(t, d.HealthEmployee.IsZero())
	assert.True(t, d.HealthEmployer.IsZero())
}

func TestCalculateDeductions_HealthZeroWhenExempt(t *testing.T) {
	d := CalculateDeductions(DeductionInput{
		Gross:        decimal.NewFromInt(5000),
		Age:          30,
		Frequency:    employee.FrequencyMonthly,
		HealthExempt: true,
	}, testSettings())

	assert.True(t, d.HealthEmployee.IsZero())
	assert.True(t, d.HealthEmployer.IsZero())
}

func TestCalculateDeductions_LevyZeroForSubMonthlyFrequencies(t *testing.T) {
	for _, freq := range []employee.PayFrequency{employee.FrequencyWeekly, employee.FrequencyBiweekly} {
		d := CalculateDeductions(DeductionInput{
			Gross:     decimal.NewFromInt(50000),
			Age:       40,
			Frequency: freq,
		}, testSettings())

		assert.True(t, d.IncomeLevy.IsZero(), "frequency %s", freq)
	}
}

func TestCalculateDeductions_LevyTiers(t *testing.T) {
	settings := testSettings()

	// Below exemption: zero.
	d := CalculateDeductions(DeductionInput{
		Gross:     decimal.NewFromInt(900),
		Age:       40,
		Frequency: employee.FrequencyMonthly,
	}, settings)
	assert.True(t, d.IncomeLevy.IsZero())

	// Above threshold: 2% of (5000-1000) + 4% of (8000-5000) = 80 + 120.
	d = CalculateDeductions(DeductionInput{
		Gross:     decimal.NewFromInt(8000),
		Age:       40,
		Frequency: employee.FrequencyMonthly,
	}, settings)
	assert.True(t, d.IncomeLevy.Equal(decimal.NewFromInt(200)), "got %s", d.IncomeLevy)
}

func TestCalculateDeductions_LevyHalvedForSemimonthly(t *testing.T) {
	// Exemption 500, threshold 2500: 2% of (2500-500) + 4% of (4000-2500).
	d := CalculateDeductions(DeductionInput{
		Gross:     decimal.NewFromInt(4000),
		Age:       40,
		Frequency: employee.FrequencySemimonthly,
	}, testSettings())

	assert.True(t, d.IncomeLevy.Equal(decimal.NewFromInt(100)), "got %s", d.IncomeLevy)
}

func TestCalculateDeductions_LevyMonotonicInGross(t *testing.T) {
	settings := testSettings()
	prev := decimal.Zero
	for gross := int64(1000); gross <= 20000; gross += 500 {
		d := CalculateDeductions(DeductionInput{
			Gross:     decimal.NewFromInt(gross),
			Age:       40,
			Frequency: employee.FrequencyMonthly,
		}, settings)

		require.True(t, d.IncomeLevy.GreaterThanOrEqual(prev), "levy decreased at gross %d", gross)
		prev = d.IncomeLevy
	}
}

func TestCalculateDeductions_AllComponentsNonNegative(t *testing.T) {
	for _, gross := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-500), decimal.NewFromInt(3000)} {
		d := CalculateDeductions(DeductionInput{
			Gross:     gross,
			Age:       40,
			Frequency: employee.FrequencyMonthly,
		}, testSettings())

		assert.False(t, d.SocialEmployee.IsNegative())
		assert.False(t, d.SocialEmployer.IsNegative())
		assert.False(t, d.HealthEmployee.IsNegative())
		assert.False(t, d.HealthEmployer.IsNegative())
		assert.False(t, d.IncomeLevy.IsNegative())
	}
}
