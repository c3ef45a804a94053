package timesheet

import "errors"

var (
	ErrPeriodNotFound = errors.New("timesheet period not found")
)
