package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayClassification string

const (
	ClassificationSalaried PayClassification = "salaried"
	ClassificationHourly   PayClassification = "hourly"
	ClassificationShift    PayClassification = "shift_differentiated"
)

type PayFrequency string

const (
	FrequencyWeekly      PayFrequency = "weekly"
	FrequencyBiweekly    PayFrequency = "biweekly"
	FrequencySemimonthly PayFrequency = "semimonthly"
	FrequencyMonthly     PayFrequency = "monthly"
)

func (f PayFrequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencySemimonthly, FrequencyMonthly:
		return true
	}
	return false
}

func (f PayFrequency) PeriodsPerYear() int64 {
	switch f {
	case FrequencyWeekly:
		return 52
	case FrequencyBiweekly:
		return 26
	case FrequencySemimonthly:
		return 24
	case FrequencyMonthly:
		return 12
	}
	return 0
}

// WeeksInPeriod spreads 52 weeks across the year's pay periods, so a
// semimonthly period covers 52/24 weeks rather than a fixed 2.
func (f PayFrequency) WeeksInPeriod() decimal.Decimal {
	periods := f.PeriodsPerYear()
	if periods == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(52).Div(decimal.NewFromInt(periods))
}

// CapProrationFactor scales a monthly statutory cap to this frequency.
// Sub-monthly frequencies follow the day-count convention (14/30 for
// biweekly, 7/30 for weekly); semimonthly is an exact half month.
func (f PayFrequency) CapProrationFactor() decimal.Decimal {
	switch f {
	case FrequencyWeekly:
		return decimal.NewFromInt(7).Div(decimal.NewFromInt(30))
	case FrequencyBiweekly:
		return decimal.NewFromInt(14).Div(decimal.NewFromInt(30))
	case FrequencySemimonthly:
		return decimal.NewFromFloat(0.5)
	case FrequencyMonthly:
		return decimal.NewFromInt(1)
	}
	return decimal.Zero
}

// Employee is the read-only projection of the external directory. Pay
// master data is owned elsewhere; the engine never writes this table.
type Employee struct {
	ID                  string
	FullName            string
	Classification      PayClassification
	HourlyRate          *decimal.Decimal
	AnnualSalary        *decimal.Decimal
	StandardWeeklyHours decimal.Decimal
	PayFrequency        PayFrequency // empty means the run default applies
	BirthDate           time.Time
	SocialExempt        bool
	HealthExempt        bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (e Employee) AgeAt(date time.Time) int {
	age := date.Year() - e.BirthDate.Year()
	if e.BirthDate.AddDate(age, 0, 0).After(date) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}

func (e Employee) FrequencyOrDefault(def PayFrequency) PayFrequency {
	if e.PayFrequency != "" {
		return e.PayFrequency
	}
	return def
}

// EquivalentHourlyRate derives an hourly figure for pay components priced
// per hour. Salaried employees use annual salary over 52 standard weeks;
// hourly and shift employees use their default hourly rate.
func (e Employee) EquivalentHourlyRate() decimal.Decimal {
	if e.Classification == ClassificationSalaried {
		if e.AnnualSalary == nil || !e.StandardWeeklyHours.IsPositive() {
			return decimal.Zero
		}
		return e.AnnualSalary.Div(decimal.NewFromInt(52).Mul(e.StandardWeeklyHours))
	}
	if e.HourlyRate == nil {
		return decimal.Zero
	}
	return *e.HourlyRate
}
