package payroll

import (
	"time"

	"github.com/paygrid-hq/payroll-engine-go/internal/domain/employee"
	"github.com/paygrid-hq/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CALCULATION DTOs ==========

type CalculatePayrollRequest struct {
	PeriodID            string `json:"period_id"`
	PayDate             string `json:"pay_date"` // YYYY-MM-DD
	DefaultPayFrequency string `json:"default_pay_frequency"`
}

func (r *CalculatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PeriodID) {
		errs = append(errs, validator.ValidationError{Field: "period_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.PayDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "pay_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if !employee.PayFrequency(r.DefaultPayFrequency).Valid() {
		errs = append(errs, validator.ValidationError{Field: "default_pay_frequency", Message: "must be one of weekly, biweekly, semimonthly, monthly"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParsedPayDate must be called after Validate.
func (r *CalculatePayrollRequest) ParsedPayDate() time.Time {
	d, _ := validator.IsValidDate(r.PayDate)
	return d
}

type CalculatePayrollResponse struct {
	RunID          string             `json:"run_id"`
	Status         string             `json:"status"`
	TotalEmployees int                `json:"total_employees"`
	LineItems      []LineItemResponse `json:"line_items"`
	Errors         []RunErrorResponse `json:"errors"`
}

type RunErrorResponse struct {
	EmployeeRef string `json:"employee_ref"`
	Stage       string `json:"stage"`
	Message     string `json:"message"`
}

// ========== OVERRIDE DTOs ==========

type ApplyOverrideRequest struct {
	NewGrossPay decimal.Decimal `json:"new_gross_pay"`
	Reason      string          `json:"reason"`
}

func (r *ApplyOverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.NewGrossPay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "new_gross_pay", Message: "must be non-negative"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== READ DTOs ==========

type RunResponse struct {
	ID                  string          `json:"id"`
	PeriodID            string          `json:"period_id"`
	PayDate             string          `json:"pay_date"`
	Status              string          `json:"status"`
	TotalGross          decimal.Decimal `json:"total_gross"`
	TotalDeductions     decimal.Decimal `json:"total_deductions"`
	TotalLoanRepayments decimal.Decimal `json:"total_loan_repayments"`
	TotalNet            decimal.Decimal `json:"total_net"`
	EmployeeCount       int             `json:"employee_count"`
	FinalizedAt         *string         `json:"finalized_at,omitempty"`
}

type LineItemResponse struct {
	ID         string `json:"id"`
	RunID      string `json:"run_id"`
	EmployeeID string `json:"employee_id"`
	Frequency  string `json:"pay_frequency"`

	WorkedHours   decimal.Decimal `json:"worked_hours"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	VacationHours decimal.Decimal `json:"vacation_hours"`
	LeaveHours    decimal.Decimal `json:"leave_hours"`
	HolidayHours  decimal.Decimal `json:"holiday_hours"`

	BasePay     decimal.Decimal `json:"base_pay"`
	OvertimePay decimal.Decimal `json:"overtime_pay"`
	VacationPay decimal.Decimal `json:"vacation_pay"`
	LeavePay    decimal.Decimal `json:"leave_pay"`
	HolidayPay  decimal.Decimal `json:"holiday_pay"`
	GrossPay    decimal.Decimal `json:"gross_pay"`

	SocialEmployee decimal.Decimal `json:"social_employee"`
	SocialEmployer decimal.Decimal `json:"social_employer"`
	HealthEmployee decimal.Decimal `json:"health_employee"`
	HealthEmployer decimal.Decimal `json:"health_employer"`
	IncomeLevy     decimal.Decimal `json:"income_levy"`

	InternalLoanDeduction   decimal.Decimal `json:"internal_loan_deduction"`
	ThirdPartyLoanDeduction decimal.Decimal `json:"third_party_loan_deduction"`

	NetPay decimal.Decimal `json:"net_pay"`

	YTDGross  decimal.Decimal `json:"ytd_gross"`
	YTDSocial decimal.Decimal `json:"ytd_social"`
	YTDHealth decimal.Decimal `json:"ytd_health"`
	YTDLevy   decimal.Decimal `json:"ytd_levy"`
	YTDNet    decimal.Decimal `json:"ytd_net"`

	Overridden     bool    `json:"overridden"`
	OverrideReason *string `json:"override_reason,omitempty"`
	OverriddenAt   *string `json:"overridden_at,omitempty"`
}

type YTDSummaryResponse struct {
	EmployeeID string          `json:"employee_id"`
	Year       int             `json:"year"`
	Gross      decimal.Decimal `json:"gross"`
	Social     decimal.Decimal `json:"social"`
	Health     decimal.Decimal `json:"health"`
	Levy       decimal.Decimal `json:"levy"`
	LoanRepaid decimal.Decimal `json:"loan_repaid"`
	Net        decimal.Decimal `json:"net"`
}
