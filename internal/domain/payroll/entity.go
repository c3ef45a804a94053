package payroll

import (
	"time"

	"github.com/paygrid-hq/payroll-engine-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

type RunStatus string

const (
	RunStatusProcessing          RunStatus = "processing"
	RunStatusCompleted           RunStatus = "completed"
	RunStatusCompletedWithErrors RunStatus = "completed_with_errors"
	RunStatusFinalized           RunStatus = "finalized"
)

// Run is one payroll calculation for a period and pay date. A run row only
// ever rests in a terminal-calculated state: the processing status is
// flipped to its classification inside the creating transaction.
type Run struct {
	ID                  string
	PeriodID            string
	PayDate             time.Time
	Status              RunStatus
	TotalGross          decimal.Decimal
	TotalDeductions     decimal.Decimal
	TotalLoanRepayments decimal.Decimal
	TotalNet            decimal.Decimal
	EmployeeCount       int
	CreatedAt           time.Time
	UpdatedAt           time.Time
	FinalizedAt         *time.Time
}

// LineItem is one employee's computed record within a run. Once the parent
// run is finalized the item is editable only through the audited override.
type LineItem struct {
	ID         string
	RunID      string
	EmployeeID string
	Frequency  employee.PayFrequency

	WorkedHours   decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	VacationHours decimal.Decimal
	LeaveHours    decimal.Decimal
	HolidayHours  decimal.Decimal

	BasePay     decimal.Decimal
	OvertimePay decimal.Decimal
	VacationPay decimal.Decimal
	LeavePay    decimal.Decimal
	HolidayPay  decimal.Decimal
	GrossPay    decimal.Decimal

	SocialEmployee decimal.Decimal
	SocialEmployer decimal.Decimal
	HealthEmployee decimal.Decimal
	HealthEmployer decimal.Decimal
	IncomeLevy     decimal.Decimal

	InternalLoanDeduction   decimal.Decimal
	ThirdPartyLoanDeduction decimal.Decimal

	// NetPay = GrossPay - statutory employee deductions - loan deductions,
	// deliberately unclamped: deductions may exceed gross.
	NetPay decimal.Decimal

	YTDGross  decimal.Decimal
	YTDSocial decimal.Decimal
	YTDHealth decimal.Decimal
	YTDLevy   decimal.Decimal
	YTDNet    decimal.Decimal

	Overridden     bool
	OverrideReason *string
	OverriddenAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatutoryEmployeeTotal sums the employee-side mandated withholdings.
func (li LineItem) StatutoryEmployeeTotal() decimal.Decimal {
	return li.SocialEmployee.Add(li.HealthEmployee).Add(li.IncomeLevy)
}

func (li LineItem) TotalLoanDeduction() decimal.Decimal {
	return li.InternalLoanDeduction.Add(li.ThirdPartyLoanDeduction)
}

// YTDTotals are the per-component running sums from January 1 of the
// pay-date year through the current run.
type YTDTotals struct {
	Gross      decimal.Decimal
	Social     decimal.Decimal
	Health     decimal.Decimal
	Levy       decimal.Decimal
	LoanRepaid decimal.Decimal
	Net        decimal.Decimal
}

func (t YTDTotals) Add(o YTDTotals) YTDTotals {
	return YTDTotals{
		Gross:      t.Gross.Add(o.Gross),
		Social:     t.Social.Add(o.Social),
		Health:     t.Health.Add(o.Health),
		Levy:       t.Levy.Add(o.Levy),
		LoanRepaid: t.LoanRepaid.Add(o.LoanRepaid),
		Net:        t.Net.Add(o.Net),
	}
}

// YTDSummary is the denormalized per-employee-per-year row kept alongside
// the line-item mirrors for the reporting collaborator.
type YTDSummary struct {
	EmployeeID string
	Year       int
	Totals     YTDTotals
	UpdatedAt  time.Time
}

// OverrideAudit records a post-hoc gross correction.
type OverrideAudit struct {
	ID         string
	LineItemID string
	OldGross   decimal.Decimal
	NewGross   decimal.Decimal
	OldNet     decimal.Decimal
	NewNet     decimal.Decimal
	Reason     string
	CreatedAt  time.Time
}

// RunError is one recoverable per-employee failure. Accumulating these
// instead of aborting is what moves a run to completed_with_errors.
type RunError struct {
	EmployeeRef string
	Stage       string
	Message     string
}

const (
	StageTimeAggregation = "time_aggregation"
	StagePayModel        = "pay_model"
	StageAbsence         = "absence"
)
