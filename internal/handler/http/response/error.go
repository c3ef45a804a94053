package response

import (
	"errors"
	"net/http"

	"github.com/paygrid-hq/payroll-engine-go/internal/domain/employee"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/loan"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/payroll"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/timesheet"
	"github.com/paygrid-hq/payroll-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrLineItemNotFound):
		NotFound(w, "Payroll line item not found")
	case errors.Is(err, payroll.ErrYTDSummaryNotFound):
		NotFound(w, "Year-to-date summary not found")
	case errors.Is(err, payroll.ErrRunFinalized):
		Conflict(w, "Payroll run is finalized")
	case errors.Is(err, payroll.ErrRunNotSettled):
		Conflict(w, "Payroll run is not in a finalizable state")
	case errors.Is(err, payroll.ErrStatutorySettingsNotFound):
		Conflict(w, "Statutory settings are not configured")
	case errors.Is(err, payroll.ErrInvalidStatutorySettings):
		Conflict(w, "Statutory settings are misconfigured")

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrPeriodNotFound):
		NotFound(w, "Timesheet period not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Loan domain errors
	case errors.Is(err, loan.ErrLoanNotFound):
		NotFound(w, "Loan not found")
	case errors.Is(err, loan.ErrDuplicateLoanPayment):
		Conflict(w, "Loan payment already exists for this line item")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
