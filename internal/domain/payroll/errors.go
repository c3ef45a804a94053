package payroll

import "errors"

var (
	ErrRunNotFound               = errors.New("payroll run not found")
	ErrLineItemNotFound          = errors.New("payroll line item not found")
	ErrRunFinalized              = errors.New("payroll run is finalized, cannot modify")
	ErrRunNotSettled             = errors.New("payroll run has not settled, cannot finalize")
	ErrStatutorySettingsNotFound = errors.New("statutory settings not found")
	ErrInvalidStatutorySettings  = errors.New("invalid statutory settings")
	ErrYTDSummaryNotFound        = errors.New("year-to-date summary not found")
)
