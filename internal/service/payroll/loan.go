package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/paygrid-hq/payroll-engine-go/internal/domain/loan"
	"github.com/shopspring/decimal"
)

type loanDeductions struct {
	Internal   decimal.Decimal
	ThirdParty decimal.Decimal
}

func (d loanDeductions) Total() decimal.Decimal {
	return d.Internal.Add(d.ThirdParty)
}

// processLoans applies one scheduled installment per active loan, oldest
// first, against the given line item. Each payment is capped at the
// remaining balance, split into principal and interest by the loan's fixed
// ratio, and guarded against double-processing of the same (loan, item)
// pair. A balance reaching zero completes the loan.
func (s *PayrollServiceImpl) processLoans(ctx context.Context, employeeID, lineItemID string) (loanDeductions, error) {
	var d loanDeductions

	loans, err := s.loans.ListActiveByEmployee(ctx, employeeID)
	if err != nil {
		return loanDeductions{}, fmt.Errorf("failed to list loans: %w", err)
	}

	for _, l := range loans {
		paid, err := s.payLoan(ctx, l, lineItemID)
		if err != nil {
			return loanDeductions{}, err
		}
		switch l.Class {
		case loan.ClassThirdParty:
			d.ThirdParty = d.ThirdParty.Add(paid)
		default:
			d.Internal = d.Internal.Add(paid)
		}
	}

	return d, nil
}

func (s *PayrollServiceImpl) payLoan(ctx context.Context, l loan.Loan, lineItemID string) (decimal.Decimal, error) {
	exists, err := s.loans.HasPayment(ctx, l.ID, lineItemID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to check loan payment: %w", err)
	}
	if exists {
		return decimal.Zero, nil
	}

	amount := l.InstallmentAmount
	if amount.GreaterThan(l.RemainingBalance) {
		amount = l.RemainingBalance
	}
	if !amount.IsPositive() {
		return decimal.Zero, nil
	}
	amount = amount.Round(2)

	principal := amount.Mul(l.PrincipalRatio()).Round(2)
	interest := amount.Sub(principal)

	balance := l.RemainingBalance.Sub(amount)
	status := l.Status
	if !balance.IsPositive() {
		balance = decimal.Zero
		status = loan.StatusCompleted
	}

	_, err = s.loans.CreatePayment(ctx, loan.Payment{
		LoanID:           l.ID,
		PayrollItemID:    lineItemID,
		Amount:           amount,
		PrincipalPortion: principal,
		InterestPortion:  interest,
		ResultingBalance: balance,
	})
	if err != nil {
		if errors.Is(err, loan.ErrDuplicateLoanPayment) {
			// Raced with another writer for the same pair; nothing to apply.
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	if err := s.loans.UpdateBalanceStatus(ctx, l.ID, balance, status); err != nil {
		return decimal.Zero, err
	}

	return amount, nil
}
