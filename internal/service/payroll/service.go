package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/paygrid-hq/payroll-engine-go/internal/domain/absence"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/employee"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/loan"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/payroll"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/timesheet"
)

// TxFunc runs fn inside one transaction; every repository call made with
// the ctx it passes joins that transaction. Any error rolls the whole unit
// of work back.
type TxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

type PayrollServiceImpl struct {
	runner     TxFunc
	logger     *slog.Logger
	payrolls   payroll.Repository
	employees  employee.Repository
	timesheets timesheet.Repository
	absences   absence.Repository
	loans      loan.Repository
}

func NewPayrollService(
	runner TxFunc,
	logger *slog.Logger,
	payrolls payroll.Repository,
	employees employee.Repository,
	timesheets timesheet.Repository,
	absences absence.Repository,
	loans loan.Repository,
) payroll.Service {
	return &PayrollServiceImpl{
		runner:     runner,
		logger:     logger,
		payrolls:   payrolls,
		employees:  employees,
		timesheets: timesheets,
		absences:   absences,
		loans:      loans,
	}
}

// CalculatePayroll implements payroll.Service. One invocation is one unit
// of work: a missing period or any write failure rolls everything back and
// leaves no run record behind. Per-employee failures are accumulated and
// classify the run as completed_with_errors instead of aborting it.
func (s *PayrollServiceImpl) CalculatePayroll(ctx context.Context, req payroll.CalculatePayrollRequest) (payroll.CalculatePayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CalculatePayrollResponse{}, err
	}

	payDate := req.ParsedPayDate()
	defaultFrequency := employee.PayFrequency(req.DefaultPayFrequency)

	var resp payroll.CalculatePayrollResponse
	err := s.runner(ctx, func(ctx context.Context) error {
		period, err := s.timesheets.GetPeriodByID(ctx, req.PeriodID)
		if err != nil {
			return err
		}

		// Settings are read fresh per run and held constant for its whole
		// duration; mid-run rate changes never apply.
		settings, err := s.payrolls.GetStatutorySettings(ctx)
		if err != nil {
			return err
		}
		if err := settings.Validate(); err != nil {
			return err
		}

		workforce, err := s.employees.ListActive(ctx)
		if err != nil {
			return err
		}

		entries, err := s.timesheets.ListEntriesByPeriod(ctx, period.ID)
		if err != nil {
			return err
		}

		hours, runErrors := aggregateTimeEntries(entries, workforce)

		run, err := s.payrolls.CreateRun(ctx, payroll.Run{
			PeriodID: period.ID,
			PayDate:  payDate,
			Status:   payroll.RunStatusProcessing,
		})
		if err != nil {
			return err
		}

		var items []payroll.LineItem
		for _, emp := range workforce {
			item, empErrors, err := s.processEmployee(ctx, emp, hours[emp.ID], period, settings, run, defaultFrequency)
			if err != nil {
				return fmt.Errorf("employee %s: %w", emp.ID, err)
			}
			runErrors = append(runErrors, empErrors...)
			items = append(items, item)

			run.TotalGross = run.TotalGross.Add(item.GrossPay)
			run.TotalDeductions = run.TotalDeductions.Add(item.StatutoryEmployeeTotal())
			run.TotalLoanRepayments = run.TotalLoanRepayments.Add(item.TotalLoanDeduction())
			run.TotalNet = run.TotalNet.Add(item.NetPay)
		}

		// The run row never rests in processing: its terminal classification
		// is written inside the same transaction that created it.
		run.Status = payroll.RunStatusCompleted
		if len(runErrors) > 0 {
			run.Status = payroll.RunStatusCompletedWithErrors
		}
		run.EmployeeCount = len(items)
		if err := s.payrolls.UpdateRunTotals(ctx, run); err != nil {
			return err
		}

		resp = payroll.CalculatePayrollResponse{
			RunID:          run.ID,
			Status:         string(run.Status),
			TotalEmployees: run.EmployeeCount,
			LineItems:      toLineItemResponses(items),
			Errors:         toRunErrorResponses(runErrors),
		}
		return nil
	})
	if err != nil {
		return payroll.CalculatePayrollResponse{}, err
	}

	s.logger.InfoContext(ctx, "payroll run calculated",
		slog.String("run_id", resp.RunID),
		slog.String("status", resp.Status),
		slog.Int("employees", resp.TotalEmployees),
		slog.Int("errors", len(resp.Errors)),
	)

	return resp, nil
}

// processEmployee walks one employee through the full pipeline: absences,
// pay model, statutory deductions, loans, then year-to-date. Recoverable
// stage failures zero that stage's components and come back as run errors;
// persistence failures bubble up and abort the run.
func (s *PayrollServiceImpl) processEmployee(
	ctx context.Context,
	emp employee.Employee,
	hours EmployeeHours,
	period timesheet.Period,
	settings payroll.StatutorySettings,
	run payroll.Run,
	defaultFrequency employee.PayFrequency,
) (payroll.LineItem, []payroll.RunError, error) {
	var empErrors []payroll.RunError
	frequency := emp.FrequencyOrDefault(defaultFrequency)

	absences, err := s.collectAbsences(ctx, emp, period, settings)
	if err != nil {
		s.logger.WarnContext(ctx, "absence integration failed",
			slog.String("employee_id", emp.ID), slog.Any("error", err))
		empErrors = append(empErrors, payroll.RunError{
			EmployeeRef: emp.ID,
			Stage:       payroll.StageAbsence,
			Message:     err.Error(),
		})
		absences = absenceBreakdown{}
	}

	breakdown, err := calculateBasePay(payModelInput{
		Employee:      emp,
		Frequency:     frequency,
		WorkedHours:   hours.Total,
		Entries:       hours.Entries,
		VacationHours: absences.VacationHours,
		LeaveHours:    absences.LeaveHours,
		Settings:      settings,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "pay model calculation failed",
			slog.String("employee_id", emp.ID), slog.Any("error", err))
		empErrors = append(empErrors, payroll.RunError{
			EmployeeRef: emp.ID,
			Stage:       payroll.StagePayModel,
			Message:     err.Error(),
		})
		breakdown = payBreakdown{RegularHours: hours.Total}
	}

	item := payroll.LineItem{
		RunID:      run.ID,
		EmployeeID: emp.ID,
		Frequency:  frequency,

		WorkedHours:   hours.Total,
		RegularHours:  breakdown.RegularHours,
		OvertimeHours: breakdown.OvertimeHours,
		VacationHours: absences.VacationHours,
		LeaveHours:    absences.LeaveHours,
		HolidayHours:  absences.HolidayHours,

		BasePay:     breakdown.BasePay.Round(2),
		OvertimePay: breakdown.OvertimePay.Round(2),
		VacationPay: absences.VacationPay.Round(2),
		LeavePay:    absences.LeavePay.Round(2),
		HolidayPay:  absences.HolidayPay.Round(2),
	}
	item.GrossPay = item.BasePay.
		Add(item.OvertimePay).
		Add(item.VacationPay).
		Add(item.LeavePay).
		Add(item.HolidayPay)

	deductions := CalculateDeductions(DeductionInput{
		Gross:        item.GrossPay,
		Age:          emp.AgeAt(run.PayDate),
		Frequency:    frequency,
		SocialExempt: emp.SocialExempt,
		HealthExempt: emp.HealthExempt,
	}, settings)
	item.SocialEmployee = deductions.SocialEmployee
	item.SocialEmployer = deductions.SocialEmployer
	item.HealthEmployee = deductions.HealthEmployee
	item.HealthEmployer = deductions.HealthEmployer
	item.IncomeLevy = deductions.IncomeLevy
	item.NetPay = item.GrossPay.Sub(deductions.EmployeeTotal())

	// Loan payments reference the item row, so it is inserted first and the
	// loan, net and YTD figures are written back once they are settled.
	created, err := s.payrolls.CreateLineItem(ctx, item)
	if err != nil {
		return payroll.LineItem{}, nil, err
	}

	loanTotals, err := s.processLoans(ctx, emp.ID, created.ID)
	if err != nil {
		return payroll.LineItem{}, nil, err
	}
	created.InternalLoanDeduction = loanTotals.Internal
	created.ThirdPartyLoanDeduction = loanTotals.ThirdParty

	// Net pay stays unclamped: deductions exceeding gross go negative.
	created.NetPay = created.GrossPay.
		Sub(created.StatutoryEmployeeTotal()).
		Sub(created.TotalLoanDeduction())

	if err := s.accumulateYTD(ctx, &created, run.PayDate.Year()); err != nil {
		return payroll.LineItem{}, nil, err
	}

	if err := s.payrolls.FinishLineItem(ctx, created); err != nil {
		return payroll.LineItem{}, nil, err
	}

	return created, empErrors, nil
}

// ApplyOverride implements payroll.Service. It corrects one line item's
// gross pay post hoc, recomputing statutory deductions from fresh settings
// while leaving already-posted loan payments untouched, and appends an
// audit record. Finalized runs reject the correction outright.
func (s *PayrollServiceImpl) ApplyOverride(ctx context.Context, lineItemID string, req payroll.ApplyOverrideRequest) (payroll.LineItemResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.LineItemResponse{}, err
	}

	var out payroll.LineItemResponse
	err := s.runner(ctx, func(ctx context.Context) error {
		item, err := s.payrolls.GetLineItemByID(ctx, lineItemID)
		if err != nil {
			return err
		}

		run, err := s.payrolls.GetRunByID(ctx, item.RunID)
		if err != nil {
			return err
		}
		if run.Status == payroll.RunStatusFinalized {
			return payroll.ErrRunFinalized
		}

		emp, err := s.employees.GetByID(ctx, item.EmployeeID)
		if err != nil {
			return err
		}

		settings, err := s.payrolls.GetStatutorySettings(ctx)
		if err != nil {
			return err
		}
		if err := settings.Validate(); err != nil {
			return err
		}

		newGross := req.NewGrossPay.Round(2)
		deductions := CalculateDeductions(DeductionInput{
			Gross:        newGross,
			Age:          emp.AgeAt(run.PayDate),
			Frequency:    item.Frequency,
			SocialExempt: emp.SocialExempt,
			HealthExempt: emp.HealthExempt,
		}, settings)

		oldGross := item.GrossPay
		oldNet := item.NetPay

		now := time.Now().UTC()
		reason := req.Reason
		item.GrossPay = newGross
		item.SocialEmployee = deductions.SocialEmployee
		item.SocialEmployer = deductions.SocialEmployer
		item.HealthEmployee = deductions.HealthEmployee
		item.HealthEmployer = deductions.HealthEmployer
		item.IncomeLevy = deductions.IncomeLevy
		item.NetPay = newGross.Sub(deductions.EmployeeTotal()).Sub(item.TotalLoanDeduction())
		item.Overridden = true
		item.OverrideReason = &reason
		item.OverriddenAt = &now

		audit := payroll.OverrideAudit{
			LineItemID: item.ID,
			OldGross:   oldGross,
			NewGross:   newGross,
			OldNet:     oldNet,
			NewNet:     item.NetPay,
			Reason:     reason,
		}
		if err := s.payrolls.ApplyOverride(ctx, item, audit); err != nil {
			return err
		}

		out = toLineItemResponse(item)
		return nil
	})
	if err != nil {
		return payroll.LineItemResponse{}, err
	}

	s.logger.InfoContext(ctx, "line item overridden",
		slog.String("line_item_id", lineItemID),
		slog.String("new_gross", req.NewGrossPay.StringFixed(2)),
	)

	return out, nil
}

// FinalizeRun implements payroll.Service. Only settled runs (completed or
// completed_with_errors) can be finalized; the transition is terminal.
func (s *PayrollServiceImpl) FinalizeRun(ctx context.Context, runID string) (payroll.RunResponse, error) {
	var out payroll.RunResponse
	err := s.runner(ctx, func(ctx context.Context) error {
		run, err := s.payrolls.GetRunByID(ctx, runID)
		if err != nil {
			return err
		}
		if run.Status == payroll.RunStatusFinalized {
			return payroll.ErrRunFinalized
		}

		now := time.Now().UTC()
		if err := s.payrolls.FinalizeRun(ctx, run.ID, now); err != nil {
			return err
		}

		run.Status = payroll.RunStatusFinalized
		run.FinalizedAt = &now
		out = toRunResponse(run)
		return nil
	})
	if err != nil {
		return payroll.RunResponse{}, err
	}

	return out, nil
}

// ========== READS ==========

func (s *PayrollServiceImpl) GetRun(ctx context.Context, runID string) (payroll.RunResponse, error) {
	run, err := s.payrolls.GetRunByID(ctx, runID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return toRunResponse(run), nil
}

func (s *PayrollServiceImpl) ListRunsByPeriod(ctx context.Context, periodID string) ([]payroll.RunResponse, error) {
	runs, err := s.payrolls.ListRunsByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	out := make([]payroll.RunResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, toRunResponse(run))
	}
	return out, nil
}

func (s *PayrollServiceImpl) GetLineItem(ctx context.Context, lineItemID string) (payroll.LineItemResponse, error) {
	item, err := s.payrolls.GetLineItemByID(ctx, lineItemID)
	if err != nil {
		return payroll.LineItemResponse{}, err
	}
	return toLineItemResponse(item), nil
}

func (s *PayrollServiceImpl) ListLineItemsByRun(ctx context.Context, runID string) ([]payroll.LineItemResponse, error) {
	if _, err := s.payrolls.GetRunByID(ctx, runID); err != nil {
		return nil, err
	}
	items, err := s.payrolls.ListLineItemsByRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	return toLineItemResponses(items), nil
}

func (s *PayrollServiceImpl) ListLineItemsByEmployee(ctx context.Context, employeeID string, year int) ([]payroll.LineItemResponse, error) {
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	items, err := s.payrolls.ListLineItemsByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}
	return toLineItemResponses(items), nil
}

func (s *PayrollServiceImpl) GetEmployeeYTD(ctx context.Context, employeeID string, year int) (payroll.YTDSummaryResponse, error) {
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return payroll.YTDSummaryResponse{}, err
	}
	summary, err := s.payrolls.GetYTDSummary(ctx, employeeID, year)
	if err != nil {
		return payroll.YTDSummaryResponse{}, err
	}
	return payroll.YTDSummaryResponse{
		EmployeeID: summary.EmployeeID,
		Year:       summary.Year,
		Gross:      summary.Totals.Gross,
		Social:     summary.Totals.Social,
		Health:     summary.Totals.Health,
		Levy:       summary.Totals.Levy,
		LoanRepaid: summary.Totals.LoanRepaid,
		Net:        summary.Totals.Net,
	}, nil
}

// ========== RESPONSE MAPPING ==========

func toRunResponse(run payroll.Run) payroll.RunResponse {
	resp := payroll.RunResponse{
		ID:                  run.ID,
		PeriodID:            run.PeriodID,
		PayDate:             run.PayDate.Format("2006-01-02"),
		Status:              string(run.Status),
		TotalGross:          run.TotalGross,
		TotalDeductions:     run.TotalDeductions,
		TotalLoanRepayments: run.TotalLoanRepayments,
		TotalNet:            run.TotalNet,
		EmployeeCount:       run.EmployeeCount,
	}
	if run.FinalizedAt != nil {
		finalized := run.FinalizedAt.Format(time.RFC3339)
		resp.FinalizedAt = &finalized
	}
	return resp
}

func toLineItemResponse(item payroll.LineItem) payroll.LineItemResponse {
	resp := payroll.LineItemResponse{
		ID:         item.ID,
		RunID:      item.RunID,
		EmployeeID: item.EmployeeID,
		Frequency:  string(item.Frequency),

		WorkedHours:   item.WorkedHours,
		RegularHours:  item.RegularHours,
		OvertimeHours: item.OvertimeHours,
		VacationHours: item.VacationHours,
		LeaveHours:    item.LeaveHours,
		HolidayHours:  item.HolidayHours,

		BasePay:     item.BasePay,
		OvertimePay: item.OvertimePay,
		VacationPay: item.VacationPay,
		LeavePay:    item.LeavePay,
		HolidayPay:  item.HolidayPay,
		GrossPay:    item.GrossPay,

		SocialEmployee: item.SocialEmployee,
		SocialEmployer: item.SocialEmployer,
		HealthEmployee: item.HealthEmployee,
		HealthEmployer: item.HealthEmployer,
		IncomeLevy:     item.IncomeLevy,

		InternalLoanDeduction:   item.InternalLoanDeduction,
		ThirdPartyLoanDeduction: item.ThirdPartyLoanDeduction,

		NetPay: item.NetPay,

		YTDGross:  item.YTDGross,
		YTDSocial: item.YTDSocial,
		YTDHealth: item.YTDHealth,
		YTDLevy:   item.YTDLevy,
		YTDNet:    item.YTDNet,

		Overridden:     item.Overridden,
		OverrideReason: item.OverrideReason,
	}
	if item.OverriddenAt != nil {
		at := item.OverriddenAt.Format(time.RFC3339)
		resp.OverriddenAt = &at
	}
	return resp
}

func toLineItemResponses(items []payroll.LineItem) []payroll.LineItemResponse {
	out := make([]payroll.LineItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toLineItemResponse(item))
	}
	return out
}

func toRunErrorResponses(errs []payroll.RunError) []payroll.RunErrorResponse {
	out := make([]payroll.RunErrorResponse, 0, len(errs))
	for _, e := range errs {
		out = append(out, payroll.RunErrorResponse{
			EmployeeRef: e.EmployeeRef,
			Stage:       e.Stage,
			Message:     e.Message,
		})
	}
	return out
}
