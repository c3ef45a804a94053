package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/payroll"
	"github.com/paygrid-hq/payroll-engine-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

// ========== RUNS ==========

const runColumns = `
	id, period_id, pay_date, status, total_gross, total_deductions,
	total_loan_repayments, total_net, employee_count,
	created_at, updated_at, finalized_at
`

func scanRun(row pgx.Row) (payroll.Run, error) {
	var r payroll.Run
	err := row.Scan(
		&r.ID, &r.PeriodID, &r.PayDate, &r.Status, &r.TotalGross, &r.TotalDeductions,
		&r.TotalLoanRepayments, &r.TotalNet, &r.EmployeeCount,
		&r.CreatedAt, &r.UpdatedAt, &r.FinalizedAt,
	)
	return r, err
}

func (r *payrollRepository) CreateRun(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	query := `
		INSERT INTO payroll_runs (
			id, period_id, pay_date, status, total_gross, total_deductions,
			total_loan_repayments, total_net, employee_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + runColumns

	created, err := scanRun(q.QueryRow(ctx, query,
		run.ID, run.PeriodID, run.PayDate, run.Status, run.TotalGross, run.TotalDeductions,
		run.TotalLoanRepayments, run.TotalNet, run.EmployeeCount,
	))
	if err != nil {
		return payroll.Run{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetRunByID(ctx context.Context, id string) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE id = $1`

	run, err := scanRun(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return run, nil
}

func (r *payrollRepository) ListRunsByPeriod(ctx context.Context, periodID string) ([]payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE period_id = $1 ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, nil
}

func (r *payrollRepository) UpdateRunTotals(ctx context.Context, run payroll.Run) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET status = $1, total_gross = $2, total_deductions = $3,
			total_loan_repayments = $4, total_net = $5, employee_count = $6,
			updated_at = NOW()
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query,
		run.Status, run.TotalGross, run.TotalDeductions,
		run.TotalLoanRepayments, run.TotalNet, run.EmployeeCount,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll run totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}

	return nil
}

func (r *payrollRepository) FinalizeRun(ctx context.Context, id string, finalizedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET status = $1, finalized_at = $2, updated_at = NOW()
		WHERE id = $3 AND status IN ($4, $5)
	`

	tag, err := q.Exec(ctx, query,
		payroll.RunStatusFinalized, finalizedAt, id,
		payroll.RunStatusCompleted, payroll.RunStatusCompletedWithErrors,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize payroll run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotSettled
	}

	return nil
}

// ========== LINE ITEMS ==========

const lineItemColumns = `
	id, run_id, employee_id, pay_frequency,
	worked_hours, regular_hours, overtime_hours, vacation_hours, leave_hours, holiday_hours,
	base_pay, overtime_pay, vacation_pay, leave_pay, holiday_pay, gross_pay,
	social_employee, social_employer, health_employee, health_employer, income_levy,
	internal_loan_deduction, third_party_loan_deduction, net_pay,
	ytd_gross, ytd_social, ytd_health, ytd_levy, ytd_net,
	overridden, override_reason, overridden_at, created_at, updated_at
`

func scanLineItem(row pgx.Row) (payroll.LineItem, error) {
	var li payroll.LineItem
	err := row.Scan(
		&li.ID, &li.RunID, &li.EmployeeID, &li.Frequency,
		&li.WorkedHours, &li.RegularHours, &li.OvertimeHours, &li.VacationHours, &li.LeaveHours, &li.HolidayHours,
		&li.BasePay, &li.OvertimePay, &li.VacationPay, &li.LeavePay, &li.HolidayPay, &li.GrossPay,
		&li.SocialEmployee, &li.SocialEmployer, &li.HealthEmployee, &li.HealthEmployer, &li.IncomeLevy,
		&li.InternalLoanDeduction, &li.ThirdPartyLoanDeduction, &li.NetPay,
		&li.YTDGross, &li.YTDSocial, &li.YTDHealth, &li.YTDLevy, &li.YTDNet,
		&li.Overridden, &li.OverrideReason, &li.OverriddenAt, &li.CreatedAt, &li.UpdatedAt,
	)
	return li, err
}

func (r *payrollRepository) CreateLineItem(ctx context.Context, item payroll.LineItem) (payroll.LineItem, error) {
	q := GetQuerier(ctx, r.db)

	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	query := `
		INSERT INTO payroll_line_items (
			id, run_id, employee_id, pay_frequency,
			worked_hours, regular_hours, overtime_hours, vacation_hours, leave_hours, holiday_hours,
			base_pay, overtime_pay, vacation_pay, leave_pay, holiday_pay, gross_pay,
			social_employee, social_employer, health_employee, health_employer, income_levy,
			internal_loan_deduction, third_party_loan_deduction, net_pay,
			ytd_gross, ytd_social, ytd_health, ytd_levy, ytd_net
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29
		)
		RETURNING ` + lineItemColumns

	created, err := scanLineItem(q.QueryRow(ctx, query,
		item.ID, item.RunID, item.EmployeeID, item.Frequency,
		item.WorkedHours, item.RegularHours, item.OvertimeHours, item.VacationHours, item.LeaveHours, item.HolidayHours,
		item.BasePay, item.OvertimePay, item.VacationPay, item.LeavePay, item.HolidayPay, item.GrossPay,
		item.SocialEmployee, item.SocialEmployer, item.HealthEmployee, item.HealthEmployer, item.IncomeLevy,
		item.InternalLoanDeduction, item.ThirdPartyLoanDeduction, item.NetPay,
		item.YTDGross, item.YTDSocial, item.YTDHealth, item.YTDLevy, item.YTDNet,
	))
	if err != nil {
		return payroll.LineItem{}, fmt.Errorf("failed to create payroll line item: %w", err)
	}

	return created, nil
}

// FinishLineItem writes the loan, net and YTD figures settled after the
// item row was created (loan payments reference the item id).
func (r *payrollRepository) FinishLineItem(ctx context.Context, item payroll.LineItem) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_line_items
		SET internal_loan_deduction = $1, third_party_loan_deduction = $2, net_pay = $3,
			ytd_gross = $4, ytd_social = $5, ytd_health = $6, ytd_levy = $7, ytd_net = $8,
			updated_at = NOW()
		WHERE id = $9
	`

	tag, err := q.Exec(ctx, query,
		item.InternalLoanDeduction, item.ThirdPartyLoanDeduction, item.NetPay,
		item.YTDGross, item.YTDSocial, item.YTDHealth, item.YTDLevy, item.YTDNet,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish payroll line item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrLineItemNotFound
	}

	return nil
}

func (r *payrollRepository) GetLineItemByID(ctx context.Context, id string) (payroll.LineItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + lineItemColumns + ` FROM payroll_line_items WHERE id = $1`

	item, err := scanLineItem(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.LineItem{}, payroll.ErrLineItemNotFound
		}
		return payroll.LineItem{}, fmt.Errorf("failed to get payroll line item: %w", err)
	}

	return item, nil
}

func (r *payrollRepository) ListLineItemsByRun(ctx context.Context, runID string) ([]payroll.LineItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + lineItemColumns + ` FROM payroll_line_items WHERE run_id = $1 ORDER BY created_at`

	return r.queryLineItems(ctx, q, query, runID)
}

func (r *payrollRepository) ListLineItemsByEmployeeYear(ctx context.Context, employeeID string, year int) ([]payroll.LineItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + lineItemColumns + `
		FROM payroll_line_items li
		WHERE li.employee_id = $1
		  AND li.run_id IN (
			SELECT id FROM payroll_runs WHERE date_part('year', pay_date) = $2
		  )
		ORDER BY li.created_at
	`

	return r.queryLineItems(ctx, q, query, employeeID, year)
}

func (r *payrollRepository) queryLineItems(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]payroll.LineItem, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll line items: %w", err)
	}
	defer rows.Close()

	var items []payroll.LineItem
	for rows.Next() {
		item, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll line item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *payrollRepository) ApplyOverride(ctx context.Context, item payroll.LineItem, audit payroll.OverrideAudit) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_line_items
		SET gross_pay = $1,
			social_employee = $2, social_employer = $3,
			health_employee = $4, health_employer = $5, income_levy = $6,
			net_pay = $7, overridden = true, override_reason = $8, overridden_at = $9,
			updated_at = NOW()
		WHERE id = $10
	`

	tag, err := q.Exec(ctx, query,
		item.GrossPay,
		item.SocialEmployee, item.SocialEmployer,
		item.HealthEmployee, item.HealthEmployer, item.IncomeLevy,
		item.NetPay, item.OverrideReason, item.OverriddenAt,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to apply line item override: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrLineItemNotFound
	}

	if audit.ID == "" {
		audit.ID = uuid.NewString()
	}
	_, err = q.Exec(ctx, `
		INSERT INTO payroll_overrides (id, line_item_id, old_gross, new_gross, old_net, new_net, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, audit.ID, audit.LineItemID, audit.OldGross, audit.NewGross, audit.OldNet, audit.NewNet, audit.Reason)
	if err != nil {
		return fmt.Errorf("failed to record override audit: %w", err)
	}

	return nil
}

// ========== YTD ==========

// SumPostedYTD aggregates every posted line item for the employee in the
// given calendar year, excluding the run being calculated. Runs never rest
// in processing, so all persisted items count as posted.
func (r *payrollRepository) SumPostedYTD(ctx context.Context, employeeID string, year int, excludeRunID string) (payroll.YTDTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(li.gross_pay), 0),
			   COALESCE(SUM(li.social_employee), 0),
			   COALESCE(SUM(li.health_employee), 0),
			   COALESCE(SUM(li.income_levy), 0),
			   COALESCE(SUM(li.internal_loan_deduction + li.third_party_loan_deduction), 0),
			   COALESCE(SUM(li.net_pay), 0)
		FROM payroll_line_items li
		JOIN payroll_runs r ON li.run_id = r.id
		WHERE li.employee_id = $1
		  AND r.id <> $2
		  AND r.status <> $3
		  AND date_part('year', r.pay_date) = $4
	`

	var t payroll.YTDTotals
	err := q.QueryRow(ctx, query, employeeID, excludeRunID, payroll.RunStatusProcessing, year).Scan(
		&t.Gross, &t.Social, &t.Health, &t.Levy, &t.LoanRepaid, &t.Net,
	)
	if err != nil {
		return payroll.YTDTotals{}, fmt.Errorf("failed to sum year-to-date totals: %w", err)
	}

	return t, nil
}

func (r *payrollRepository) UpsertYTDSummary(ctx context.Context, summary payroll.YTDSummary) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_ytd_summaries (
			employee_id, year, gross, social, health, levy, loan_repaid, net
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_id, year) DO UPDATE SET
			gross = EXCLUDED.gross,
			social = EXCLUDED.social,
			health = EXCLUDED.health,
			levy = EXCLUDED.levy,
			loan_repaid = EXCLUDED.loan_repaid,
			net = EXCLUDED.net,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query,
		summary.EmployeeID, summary.Year,
		summary.Totals.Gross, summary.Totals.Social, summary.Totals.Health,
		summary.Totals.Levy, summary.Totals.LoanRepaid, summary.Totals.Net,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert year-to-date summary: %w", err)
	}

	return nil
}

func (r *payrollRepository) GetYTDSummary(ctx context.Context, employeeID string, year int) (payroll.YTDSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, year, gross, social, health, levy, loan_repaid, net, updated_at
		FROM payroll_ytd_summaries
		WHERE employee_id = $1 AND year = $2
	`

	var s payroll.YTDSummary
	err := q.QueryRow(ctx, query, employeeID, year).Scan(
		&s.EmployeeID, &s.Year,
		&s.Totals.Gross, &s.Totals.Social, &s.Totals.Health,
		&s.Totals.Levy, &s.Totals.LoanRepaid, &s.Totals.Net,
		&s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.YTDSummary{}, payroll.ErrYTDSummaryNotFound
		}
		return payroll.YTDSummary{}, fmt.Errorf("failed to get year-to-date summary: %w", err)
	}

	return s, nil
}
