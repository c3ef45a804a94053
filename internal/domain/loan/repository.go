package loan

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	// ListActiveByEmployee returns active loans oldest first, the order in
	// which installments are deducted.
	ListActiveByEmployee(ctx context.Context, employeeID string) ([]Loan, error)
	HasPayment(ctx context.Context, loanID, payrollItemID string) (bool, error)
	CreatePayment(ctx context.Context, payment Payment) (Payment, error)
	UpdateBalanceStatus(ctx context.Context, loanID string, balance decimal.Decimal, status Status) error
}
