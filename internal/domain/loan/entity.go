package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusPaused    Status = "paused"
)

type Class string

const (
	ClassInternal   Class = "internal"
	ClassThirdParty Class = "third_party"
)

// Loan carries a flat-interest schedule: the total owed is principal plus
// principal * interest_rate, repaid in fixed installments. RemainingBalance
// and Status are mutated only by the amortization processor.
type Loan struct {
	ID                string
	EmployeeID        string
	Principal         decimal.Decimal
	InterestRate      decimal.Decimal // e.g. 0.06 for 6% flat
	InstallmentAmount decimal.Decimal
	RemainingBalance  decimal.Decimal
	Status            Status
	Class             Class
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (l Loan) TotalRepayable() decimal.Decimal {
	return l.Principal.Mul(decimal.NewFromInt(1).Add(l.InterestRate))
}

// PrincipalRatio is the fixed principal share of every payment. A
// balance-capped final payment splits pro rata through the same ratio.
func (l Loan) PrincipalRatio() decimal.Decimal {
	total := l.TotalRepayable()
	if !total.IsPositive() {
		return decimal.Zero
	}
	return l.Principal.Div(total)
}

// Payment is append-only; the (LoanID, PayrollItemID) pair is unique so a
// reprocessed line item cannot pay the same loan twice.
type Payment struct {
	ID               string
	LoanID           string
	PayrollItemID    string
	Amount           decimal.Decimal
	PrincipalPortion decimal.Decimal
	InterestPortion  decimal.Decimal
	ResultingBalance decimal.Decimal
	CreatedAt        time.Time
}
