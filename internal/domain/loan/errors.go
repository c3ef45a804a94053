package loan

import "errors"

var (
	ErrLoanNotFound         = errors.New("loan not found")
	ErrDuplicateLoanPayment = errors.New("loan payment already recorded for this line item")
)
