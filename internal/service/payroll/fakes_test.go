package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/absence"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/employee"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/loan"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/payroll"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

// passthroughRunner stands in for the pgx transaction runner in unit tests.
func passthroughRunner(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ========== PAYROLL REPOSITORY ==========

type fakePayrollRepo struct {
	settings    payroll.StatutorySettings
	settingsErr error

	runs      map[string]payroll.Run
	items     map[string]payroll.LineItem
	itemOrder []string
	summaries map[string]payroll.YTDSummary
	audits    []payroll.OverrideAudit
}

func newFakePayrollRepo(settings payroll.StatutorySettings) *fakePayrollRepo {
	return &fakePayrollRepo{
		settings:  settings,
		runs:      make(map[string]payroll.Run),
		items:     make(map[string]payroll.LineItem),
		summaries: make(map[string]payroll.YTDSummary),
	}
}

func (f *fakePayrollRepo) GetStatutorySettings(ctx context.Context) (payroll.StatutorySettings, error) {
	if f.settingsErr != nil {
		return payroll.StatutorySettings{}, f.settingsErr
	}
	return f.settings, nil
}

func (f *fakePayrollRepo) CreateRun(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	run.CreatedAt = time.Now()
	f.runs[run.ID] = run
	return run, nil
}

func (f *fakePayrollRepo) GetRunByID(ctx context.Context, id string) (payroll.Run, error) {
	run, ok := f.runs[id]
	if !ok {
		return payroll.Run{}, payroll.ErrRunNotFound
	}
	return run, nil
}

func (f *fakePayrollRepo) ListRunsByPeriod(ctx context.Context, periodID string) ([]payroll.Run, error) {
	var runs []payroll.Run
	for _, run := range f.runs {
		if run.PeriodID == periodID {
			runs = append(runs, run)
		}
	}
	return runs, nil
}

func (f *fakePayrollRepo) UpdateRunTotals(ctx context.Context, run payroll.Run) error {
	if _, ok := f.runs[run.ID]; !ok {
		return payroll.ErrRunNotFound
	}
	f.runs[run.ID] = run
	return nil
}

func (f *fakePayrollRepo) FinalizeRun(ctx context.Context, id string, finalizedAt time.Time) error {
	run, ok := f.runs[id]
	if !ok {
		return payroll.ErrRunNotSettled
	}
	if run.Status != payroll.RunStatusCompleted && run.Status != payroll.RunStatusCompletedWithErrors {
		return payroll.ErrRunNotSettled
	}
	run.Status = payroll.RunStatusFinalized
	run.FinalizedAt = &finalizedAt
	f.runs[id] = run
	return nil
}

func (f *fakePayrollRepo) CreateLineItem(ctx context.Context, item payroll.LineItem) (payroll.LineItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	f.items[item.ID] = item
	f.itemOrder = append(f.itemOrder, item.ID)
	return item, nil
}

func (f *fakePayrollRepo) FinishLineItem(ctx context.Context, item payroll.LineItem) error {
	if _, ok := f.items[item.ID]; !ok {
		return payroll.ErrLineItemNotFound
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakePayrollRepo) GetLineItemByID(ctx context.Context, id string) (payroll.LineItem, error) {
	item, ok := f.items[id]
	if !ok {
		return payroll.LineItem{}, payroll.ErrLineItemNotFound
	}
	return item, nil
}

func (f *fakePayrollRepo) ListLineItemsByRun(ctx context.Context, runID string) ([]payroll.LineItem, error) {
	var items []payroll.LineItem
	for _, id := range f.itemOrder {
		if f.items[id].RunID == runID {
			items = append(items, f.items[id])
		}
	}
	return items, nil
}

func (f *fakePayrollRepo) ListLineItemsByEmployeeYear(ctx context.Context, employeeID string, year int) ([]payroll.LineItem, error) {
	var items []payroll.LineItem
	for _, id := range f.itemOrder {
		item := f.items[id]
		run := f.runs[item.RunID]
		if item.EmployeeID == employeeID && run.PayDate.Year() == year {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakePayrollRepo) ApplyOverride(ctx context.Context, item payroll.LineItem, audit payroll.OverrideAudit) error {
	if _, ok := f.items[item.ID]; !ok {
		return payroll.ErrLineItemNotFound
	}
	f.items[item.ID] = item
	f.audits = append(f.audits, audit)
	return nil
}

func (f *fakePayrollRepo) SumPostedYTD(ctx context.Context, employeeID string, year int, excludeRunID string) (payroll.YTDTotals, error) {
	var totals payroll.YTDTotals
	for _, id := range f.itemOrder {
		item := f.items[id]
		run := f.runs[item.RunID]
		if item.EmployeeID != employeeID || item.RunID == excludeRunID {
			continue
		}
		if run.Status == payroll.RunStatusProcessing || run.PayDate.Year() != year {
			continue
		}
		totals = totals.Add(payroll.YTDTotals{
			Gross:      item.GrossPay,
			Social:     item.SocialEmployee,
			Health:     item.HealthEmployee,
			Levy:       item.IncomeLevy,
			LoanRepaid: item.TotalLoanDeduction(),
			Net:        item.NetPay,
		})
	}
	return totals, nil
}

func (f *fakePayrollRepo) UpsertYTDSummary(ctx context.Context, summary payroll.YTDSummary) error {
	f.summaries[fmt.Sprintf("%s|%d", summary.EmployeeID, summary.Year)] = summary
	return nil
}

func (f *fakePayrollRepo) GetYTDSummary(ctx context.Context, employeeID string, year int) (payroll.YTDSummary, error) {
	summary, ok := f.summaries[fmt.Sprintf("%s|%d", employeeID, year)]
	if !ok {
		return payroll.YTDSummary{}, payroll.ErrYTDSummaryNotFound
	}
	return summary, nil
}

// ========== EMPLOYEE REPOSITORY ==========

type fakeEmployeeRepo struct {
	workforce []employee.Employee
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return f.workforce, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.workforce {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// ========== TIMESHEET REPOSITORY ==========

type fakeTimesheetRepo struct {
	period  timesheet.Period
	entries []timesheet.Entry
}

func (f *fakeTimesheetRepo) GetPeriodByID(ctx context.Context, id string) (timesheet.Period, error) {
	if f.period.ID != id {
		return timesheet.Period{}, timesheet.ErrPeriodNotFound
	}
	return f.period, nil
}

func (f *fakeTimesheetRepo) ListEntriesByPeriod(ctx context.Context, periodID string) ([]timesheet.Entry, error) {
	return f.entries, nil
}

// ========== ABSENCE REPOSITORY ==========

type fakeAbsenceRepo struct {
	vacations []absence.VacationEntry
	leaves    []absence.LeaveEntry
	holidays  []absence.PublicHoliday
	err       error
}

func (f *fakeAbsenceRepo) ListApprovedVacations(ctx context.Context, employeeID string, start, end time.Time) ([]absence.VacationEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	var entries []absence.VacationEntry
	for _, e := range f.vacations {
		if e.EmployeeID == employeeID && absence.Overlaps(e.StartDate, e.EndDate, start, end) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (f *fakeAbsenceRepo) ListApprovedLeaves(ctx context.Context, employeeID string, start, end time.Time) ([]absence.LeaveEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	var entries []absence.LeaveEntry
	for _, e := range f.leaves {
		if e.EmployeeID == employeeID && absence.Overlaps(e.StartDate, e.EndDate, start, end) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (f *fakeAbsenceRepo) ListHolidays(ctx context.Context, start, end time.Time) ([]absence.PublicHoliday, error) {
	if f.err != nil {
		return nil, f.err
	}
	var holidays []absence.PublicHoliday
	for _, h := range f.holidays {
		if !h.Date.Before(start) && !h.Date.After(end) {
			holidays = append(holidays, h)
		}
	}
	return holidays, nil
}

// ========== LOAN REPOSITORY ==========

type fakeLoanRepo struct {
	loans    []loan.Loan
	payments []loan.Payment
}

func (f *fakeLoanRepo) ListActiveByEmployee(ctx context.Context, employeeID string) ([]loan.Loan, error) {
	var active []loan.Loan
	for _, l := range f.loans {
		if l.EmployeeID == employeeID && l.Status == loan.StatusActive {
			active = append(active, l)
		}
	}
	return active, nil
}

func (f *fakeLoanRepo) HasPayment(ctx context.Context, loanID, payrollItemID string) (bool, error) {
	for _, p := range f.payments {
		if p.LoanID == loanID && p.PayrollItemID == payrollItemID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLoanRepo) CreatePayment(ctx context.Context, payment loan.Payment) (loan.Payment, error) {
	for _, p := range f.payments {
		if p.LoanID == payment.LoanID && p.PayrollItemID == payment.PayrollItemID {
			return loan.Payment{}, loan.ErrDuplicateLoanPayment
		}
	}
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	payment.CreatedAt = time.Now()
	f.payments = append(f.payments, payment)
	return payment, nil
}

func (f *fakeLoanRepo) UpdateBalanceStatus(ctx context.Context, loanID string, balance decimal.Decimal, status loan.Status) error {
	for i, l := range f.loans {
		if l.ID == loanID {
			f.loans[i].RemainingBalance = balance
			f.loans[i].Status = status
			return nil
		}
	}
	return loan.ErrLoanNotFound
}
