package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/loan"
	"github.com/paygrid-hq/payroll-engine-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type loanRepository struct {
	db *database.DB
}

func NewLoanRepository(db *database.DB) loan.Repository {
	return &loanRepository{db: db}
}

func (r *loanRepository) ListActiveByEmployee(ctx context.Context, employeeID string) ([]loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, principal, interest_rate, installment_amount,
			   remaining_balance, status, loan_class, created_at, updated_at
		FROM loans
		WHERE employee_id = $1 AND status = $2
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, employeeID, loan.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active loans: %w", err)
	}
	defer rows.Close()

	var loans []loan.Loan
	for rows.Next() {
		var l loan.Loan
		if err := rows.Scan(
			&l.ID, &l.EmployeeID, &l.Principal, &l.InterestRate, &l.InstallmentAmount,
			&l.RemainingBalance, &l.Status, &l.Class, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, l)
	}

	return loans, nil
}

func (r *loanRepository) HasPayment(ctx context.Context, loanID, payrollItemID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM loan_payments WHERE loan_id = $1 AND payroll_item_id = $2)`,
		loanID, payrollItemID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check loan payment: %w", err)
	}

	return exists, nil
}

func (r *loanRepository) CreatePayment(ctx context.Context, payment loan.Payment) (loan.Payment, error) {
	q := GetQuerier(ctx, r.db)

	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}

	// The unique (loan_id, payroll_item_id) index is the last line of
	// defense against paying one loan twice for the same line item.
	query := `
		INSERT INTO loan_payments (
			id, loan_id, payroll_item_id, amount,
			principal_portion, interest_portion, resulting_balance
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (loan_id, payroll_item_id) DO NOTHING
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		payment.ID, payment.LoanID, payment.PayrollItemID, payment.Amount,
		payment.PrincipalPortion, payment.InterestPortion, payment.ResultingBalance,
	).Scan(&payment.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			// ON CONFLICT DO NOTHING returned no row: the pair exists.
			return loan.Payment{}, loan.ErrDuplicateLoanPayment
		}
		return loan.Payment{}, fmt.Errorf("failed to create loan payment: %w", err)
	}

	return payment, nil
}

func (r *loanRepository) UpdateBalanceStatus(ctx context.Context, loanID string, balance decimal.Decimal, status loan.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE loans SET remaining_balance = $1, status = $2, updated_at = NOW() WHERE id = $3`,
		balance, status, loanID,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return loan.ErrLoanNotFound
	}

	return nil
}
