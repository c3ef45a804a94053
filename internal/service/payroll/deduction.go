package payroll

import (
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/employee"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// DeductionInput carries everything the statutory calculation needs. The
// calculation itself is a pure function of this input and the settings row.
type DeductionInput struct {
	Gross        decimal.Decimal
	Age          int
	Frequency    employee.PayFrequency
	SocialExempt bool
	HealthExempt bool
}

type DeductionSet struct {
	SocialEmployee decimal.Decimal
	SocialEmployer decimal.Decimal
	HealthEmployee decimal.Decimal
	HealthEmployer decimal.Decimal
	IncomeLevy     decimal.Decimal
}

func (d DeductionSet) EmployeeTotal() decimal.Decimal {
	return d.SocialEmployee.Add(d.HealthEmployee).Add(d.IncomeLevy)
}

// CalculateDeductions computes the mandated withholdings for one gross
// figure. Every component is clamped to >= 0 and rounded to 2 decimals;
// intermediate math keeps full precision.
func CalculateDeductions(in DeductionInput, settings payroll.StatutorySettings) DeductionSet {
	var d DeductionSet

	gross := in.Gross
	if gross.IsNegative() {
		gross = decimal.Zero
	}

	// Social contribution: percentage of gross up to the frequency-prorated
	// monthly cap. Waived past retirement age.
	if !in.SocialExempt && in.Age < settings.RetirementAge {
		cap := settings.SocialMonthlyCap.Mul(in.Frequency.CapProrationFactor())
		base := gross
		if base.GreaterThan(cap) {
			base = cap
		}
		d.SocialEmployee = settings.SocialEmployeeRate.Mul(base)
		d.SocialEmployer = settings.SocialEmployerRate.Mul(base)
	}

	// Health benefit: standard rates below the senior band, a reduced
	// employee-only rate inside it, nothing past the max age.
	if !in.HealthExempt && in.Age < settings.HealthMaxAge {
		if in.Age < settings.SeniorAge {
			d.HealthEmployee = settings.HealthEmployeeRate.Mul(gross)
			d.HealthEmployer = settings.HealthEmployerRate.Mul(gross)
		} else {
			d.HealthEmployee = settings.HealthSeniorRate.Mul(gross)
		}
	}

	// Income levy applies to monthly and semimonthly frequencies only, with
	// the monthly exemption and threshold halved for semimonthly.
	switch in.Frequency {
	case employee.FrequencyMonthly, employee.FrequencySemimonthly:
		exemption := settings.LevyExemption
		threshold := settings.LevyThreshold
		if in.Frequency == employee.FrequencySemimonthly {
			two := decimal.NewFromInt(2)
			exemption = exemption.Div(two)
			threshold = threshold.Div(two)
		}
		if gross.GreaterThan(exemption) {
			if gross.LessThanOrEqual(threshold) {
				d.IncomeLevy = settings.LevyStandardRate.Mul(gross.Sub(exemption))
			} else {
				d.IncomeLevy = settings.LevyStandardRate.Mul(threshold.Sub(exemption)).
					Add(settings.LevyHigherRate.Mul(gross.Sub(threshold)))
			}
		}
	}

	d.SocialEmployee = clampRound(d.SocialEmployee)
	d.SocialEmployer = clampRound(d.SocialEmployer)
	d.HealthEmployee = clampRound(d.HealthEmployee)
	d.HealthEmployer = clampRound(d.HealthEmployer)
	d.IncomeLevy = clampRound(d.IncomeLevy)

	return d
}

// clampRound floors a deduction component at zero before rounding.
func clampRound(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		v = decimal.Zero
	}
	return v.Round(2)
}
